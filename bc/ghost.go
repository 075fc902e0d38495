package bc

import (
	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/mesh"
	"github.com/notargets/gocfdbc/physics"
	"github.com/notargets/gocfdbc/vfunc"
)

// SuperInletProjection sets the ghost state of a supersonic inlet face so
// the face value equals an imposed boundary state: ghost = 2*b - inner.
// The projection variables are copied from the inner state. In coronal
// mode b is built field by field from the strategies of CoronalOptions.
type SuperInletProjection struct {
	name    string
	opts    ProjectionOptions
	fn      *vfunc.VectorialFunction
	coronal *coronalInlet
	model   physics.ModelConfig
	varSet  physics.VarSet
	trsList []*mesh.TRS
	initial map[string][]float64
	nodal   *mesh.NodalField
	// scratch
	vars, dimState, bState, fileVals []float64
	dataInner, dataGhost             []float64
}

func NewSuperInletProjection(name string) *SuperInletProjection {
	return &SuperInletProjection{
		name:    name,
		initial: make(map[string][]float64),
	}
}

func (sip *SuperInletProjection) Name() string { return sip.name }

func (sip *SuperInletProjection) TrsList() []*mesh.TRS { return sip.trsList }

func (sip *SuperInletProjection) Configure(opts ProjectionOptions) (err error) {
	sip.opts = opts
	if opts.InletCoronalBC {
		var ci coronalInlet
		if ci, err = newCoronalInlet(opts.Coronal); err != nil {
			return errors.Annotatef(err, "%s", sip.name)
		}
		sip.coronal = &ci
		logger.Debugf("%s: coronal inlet %s", sip.name, ci)
	} else {
		if len(opts.Def) == 0 {
			return errors.NotValidf("%s: no Def given", sip.name)
		}
		if sip.fn, err = vfunc.New(opts.Vars, opts.Def); err != nil {
			return errors.Annotatef(err, "%s", sip.name)
		}
	}
	if opts.NodalFieldFile != "" {
		if sip.nodal, err = mesh.ReadNodalField(opts.NodalFieldFile); err != nil {
			return errors.Annotatef(err, "%s", sip.name)
		}
	}
	return
}

// Setup checks the options against the model. varSet may be nil when the
// function values are already adimensional.
func (sip *SuperInletProjection) Setup(model physics.ModelConfig, varSet physics.VarSet, trsList []*mesh.TRS) (err error) {
	nbEqs := model.NbEqs
	for _, ids := range [][]int{sip.opts.ProjectionIDs, sip.opts.InitialSolutionIDs} {
		for _, id := range ids {
			if id < 0 || id >= nbEqs {
				return errors.NotValidf("%s: variable id %d for %d equations", sip.name, id, nbEqs)
			}
		}
	}
	if sip.coronal != nil {
		if model.Dim != 3 {
			return errors.NotImplementedf("%s: coronal inlet in %d dimensions", sip.name, model.Dim)
		}
		if nbEqs < 9 {
			return errors.NotValidf("%s: coronal inlet needs the 9 MHD variables, model %q has %d",
				sip.name, model.Name, nbEqs)
		}
		if sip.coronal.needsPFSS() && len(sip.opts.InitialSolutionIDs) < 3 {
			return errors.NotValidf("%s: %s needs the three field components in InitialSolutionIDs",
				sip.name, sip.coronal)
		}
		if sip.coronal.bField.NeedsBrFromFile() && len(sip.opts.VarIDs) == 0 {
			return errors.NotValidf("%s: B field strategy %s needs VarIDs", sip.name, sip.coronal.bField)
		}
	} else {
		if sip.fn == nil {
			return errors.NotValidf("%s: setup before configure", sip.name)
		}
		if nf := sip.fn.NbFuncs(); nf != nbEqs {
			return errors.NotValidf("%s: %d functions in Def for %d equations", sip.name, nf, nbEqs)
		}
		if nv := sip.fn.NbVars(); nv > model.NbVariables() {
			return errors.NotValidf("%s: %d variables in Vars, model %q provides %d",
				sip.name, nv, model.Name, model.NbVariables())
		}
		if sip.opts.PhysicalData && sip.opts.InputAdimensional {
			return errors.NotValidf("%s: physical data are dimensional, InputAdimensionalValues is set", sip.name)
		}
		if !sip.opts.InputAdimensional {
			if varSet == nil {
				return errors.NotValidf("%s: dimensional input without a variable set", sip.name)
			}
			if varSet.NbEqs() != nbEqs {
				return errors.NotValidf("%s: variable set of %d equations for %d", sip.name,
					varSet.NbEqs(), nbEqs)
			}
		}
	}
	sip.model, sip.varSet, sip.trsList = model, varSet, trsList
	sip.vars = make([]float64, model.NbVariables())
	sip.dimState = make([]float64, nbEqs)
	sip.bState = make([]float64, nbEqs)
	sip.fileVals = make([]float64, len(sip.opts.VarIDs))
	sip.dataInner = make([]float64, nbEqs)
	sip.dataGhost = make([]float64, nbEqs)
	return
}

// SetInitialSolution stores the snapshot of region trs, the values of the
// InitialSolutionIDs variables of face f at f*len(InitialSolutionIDs)+i
func (sip *SuperInletProjection) SetInitialSolution(trs string, values []float64) {
	sip.initial[trs] = append([]float64(nil), values...)
}

// CaptureInitialSolution snapshots the current face values, the mean of
// the inner and ghost states, of every region
func (sip *SuperInletProjection) CaptureInitialSolution(s *Sockets) (err error) {
	if err = s.checkGhost(); err != nil {
		return errors.Annotatef(err, "%s", sip.name)
	}
	ids := sip.opts.InitialSolutionIDs
	for _, trs := range sip.trsList {
		values := make([]float64, len(trs.Faces)*len(ids))
		for _, face := range trs.Faces {
			inner, ghost := s.States.State(face.Inner), s.Ghosts.State(face.Ghost)
			for i, id := range ids {
				values[face.IdxInTrs*len(ids)+i] = 0.5 * (inner[id] + ghost[id])
			}
		}
		sip.initial[trs.Name] = values
	}
	return
}

func (sip *SuperInletProjection) SetNodalField(nf *mesh.NodalField) { sip.nodal = nf }

func (sip *SuperInletProjection) SetGhostState(s *Sockets, trs *mesh.TRS, face mesh.Face) (err error) {
	if sip.vars == nil {
		return errors.NotValidf("%s: execute before setup", sip.name)
	}
	if err = s.checkGhost(); err != nil {
		return errors.Annotatef(err, "%s", sip.name)
	}
	var (
		inner = s.States.State(face.Inner)
		ghost = s.Ghosts.State(face.Ghost)
		pfss  [3]float64
		br    float64
	)
	if ids := sip.opts.InitialSolutionIDs; len(ids) > 0 {
		values, ok := sip.initial[trs.Name]
		if !ok {
			return errors.Annotatef(PreconditionViolated, "%s: no initial solution for %q", sip.name, trs.Name)
		}
		start := face.IdxInTrs * len(ids)
		if start+len(ids) > len(values) {
			return errors.Annotatef(PreconditionViolated, "%s: initial solution of %q has %d values, face %d needs %d",
				sip.name, trs.Name, len(values), face.IdxInTrs, start+len(ids))
		}
		for i, id := range ids {
			if i < 3 {
				pfss[i] = values[start+i]
			}
			ghost[id] = reflect(values[start+i], inner[id])
		}
	}
	if len(sip.opts.VarIDs) > 0 {
		if sip.nodal == nil {
			return errors.Annotatef(PreconditionViolated, "%s: VarIDs given without a nodal field", sip.name)
		}
		if err = sip.nodal.FaceAverage(trs.Name, face.Nodes, sip.opts.VarIDs, sip.fileVals); err != nil {
			return errors.Annotatef(PreconditionViolated, "%s: face %d: %v", sip.name, face.ID, err)
		}
		br = sip.fileVals[0]
	}
	if sip.coronal != nil {
		err = sip.coronal.apply(
			vecOf(s.States.Coordinates(face.Inner)), vecOf(s.Ghosts.Coordinates(face.Ghost)),
			inner, ghost, vecOf(pfss[:]), br)
		if err != nil {
			return errors.Annotatef(err, "%s: face %d", sip.name, face.ID)
		}
		return
	}
	var (
		xi  = s.States.Coordinates(face.Inner)
		xg  = s.Ghosts.Coordinates(face.Ghost)
		dim = sip.model.Dim
		mid = make([]float64, dim)
	)
	for d := 0; d < dim; d++ {
		mid[d] = 0.5 * (xi[d] + xg[d])
	}
	s.Model.LoadVariables(sip.vars, mid, inner)
	if err = sip.fn.Evaluate(sip.vars, sip.dimState); err != nil {
		return errors.Annotatef(err, "%s: face %d", sip.name, face.ID)
	}
	if sip.opts.PhysicalData {
		sip.reflectPhysical(inner, ghost)
		return
	}
	if sip.opts.InputAdimensional {
		copy(sip.bState, sip.dimState)
	} else {
		sip.varSet.SetAdimensionalValues(sip.dimState, sip.bState)
	}
	for i := range ghost {
		ghost[i] = reflect(sip.bState[i], inner[i])
	}
	for _, id := range sip.opts.ProjectionIDs {
		ghost[id] = inner[id]
	}
	return
}

// reflectPhysical mirrors the physical data of the inner state about the
// imposed values in dimState and converts the result back to a state
func (sip *SuperInletProjection) reflectPhysical(inner, ghost []float64) {
	sip.varSet.ComputePhysicalData(inner, sip.dataInner)
	for i, b := range sip.dimState {
		sip.dataGhost[i] = reflect(b, sip.dataInner[i])
	}
	for _, id := range sip.opts.ProjectionIDs {
		sip.dataGhost[id] = sip.dataInner[id]
	}
	sip.varSet.ComputeStateFromPhysicalData(sip.dataGhost, ghost)
}
