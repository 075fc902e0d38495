package bc

// DirichletOptions is the option block of a strong Dirichlet command as it
// appears in a case file
type DirichletOptions struct {
	Symmetry      string   `json:"Symmetry"`
	ScaleDiagonal float64  `json:"ScaleDiagonal"` // zero selects DefaultScaleDiagonal
	Vars          []string `json:"Vars"`
	Def           []string `json:"Def"`
	ApplyEqs      []int    `json:"ApplyEqs"` // empty applies to every equation
	Implicit      bool     `json:"Implicit"`
}

const DefaultScaleDiagonal = 1.e20

// ProjectionOptions is the option block of a super inlet projection
type ProjectionOptions struct {
	Vars              []string `json:"Vars"`
	Def               []string `json:"Def"`
	InputAdimensional bool     `json:"InputAdimensionalValues"`
	ProjectionIDs     []int    `json:"ProjectionIDs"`
	// PhysicalData reflects the physical quantities of the variable set
	// instead of the solution variables, Def then gives physical values
	PhysicalData bool `json:"PhysicalData"`
	// InitialSolutionIDs are the equations restored from the initial
	// solution snapshot of every face
	InitialSolutionIDs []int `json:"InitialSolutionIDs"`
	// VarIDs are the variables read from the nodal field, averaged per face
	VarIDs         []int          `json:"VarIDs"`
	NodalFieldFile string         `json:"NodalFieldFile"`
	InletCoronalBC bool           `json:"InletCoronalBC"`
	Coronal        CoronalOptions `json:"Coronal"`
}

// CoronalOptions selects one strategy per field by name. The integer
// switches are the older form of the same choices and are folded into the
// names when the command is configured.
type CoronalOptions struct {
	Density  string `json:"Density"`
	BField   string `json:"BField"`
	Velocity string `json:"Velocity"`
	Pressure string `json:"Pressure"`
	Phi      string `json:"Phi"`

	JensRhoIni                 int `json:"JensRhoIni"`
	JonLinkersBfieldSuggestion int `json:"JonLinkersBfieldSuggestion"`
	JensBfieldBC               int `json:"JensBfieldBC"`
	DanasBfieldBC              int `json:"DanasBfieldBC"`
	JensVelocityBC             int `json:"JensVelocityBC"`
	BarbarasVelocityBC         int `json:"BarbarasVelocityBC"`
	HydrodynamicLimit          int `json:"hydrodynamic_limit"`
	DanasVelocityBC            int `json:"DanasVelocityBC"`
	DifferentialRotation       int `json:"DifferentialRotation"`
	PressureFixed              int `json:"pressure_fixed"`
	PressureNeumann            int `json:"pressure_Neumann"`
	JensPIni                   int `json:"JensPIni"`
	PhiDivBZero                int `json:"Phi_divB_zero"`
	PhiDivBExtrapolated        int `json:"Phi_divB_extrapolated"`
}
