package bc

import (
	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/lss"
	"github.com/notargets/gocfdbc/mesh"
	"github.com/notargets/gocfdbc/physics"
	"github.com/notargets/gocfdbc/types"
	"github.com/notargets/gocfdbc/utils"
	"github.com/notargets/gocfdbc/vfunc"
)

// DirichletBC imposes u[eq] = f(x, t, u) strongly on the states of its
// regions by replacing their rows in the system matrix
type DirichletBC struct {
	name     string
	opts     DirichletOptions
	symmetry types.SymmetryStrategy
	scale    float64
	implicit float64
	fn       *vfunc.VectorialFunction
	trsList  []*mesh.TRS
	model    physics.ModelConfig
	applyEqs utils.Index
	perEq    bool // Def has one entry per model equation
	// scratch
	vars, values, eff []float64
}

func NewDirichletBC(name string) *DirichletBC {
	return &DirichletBC{name: name}
}

func (bc *DirichletBC) Name() string { return bc.name }

func (bc *DirichletBC) TrsList() []*mesh.TRS { return bc.trsList }

func (bc *DirichletBC) Symmetry() types.SymmetryStrategy { return bc.symmetry }

func (bc *DirichletBC) Scale() float64 { return bc.scale }

func (bc *DirichletBC) ApplyEqs() utils.Index { return bc.applyEqs }

// Configure resolves the options that do not depend on the model
func (bc *DirichletBC) Configure(opts DirichletOptions) (err error) {
	bc.opts = opts
	bc.symmetry = types.NewSymmetryStrategy(opts.Symmetry)
	bc.scale = 1.
	if bc.symmetry == types.ScaleDiagonal {
		bc.scale = opts.ScaleDiagonal
		if bc.scale == 0 {
			bc.scale = DefaultScaleDiagonal
		}
	}
	bc.implicit = 0
	if opts.Implicit {
		bc.implicit = 1
	}
	if len(opts.Def) == 0 {
		return errors.NotValidf("%s: no Def given", bc.name)
	}
	if bc.fn, err = vfunc.New(opts.Vars, opts.Def); err != nil {
		return errors.Annotatef(err, "%s", bc.name)
	}
	logger.Debugf("%s: symmetry %s, scale %g, implicit %t", bc.name, bc.symmetry, bc.scale, opts.Implicit)
	return
}

// Setup validates the options against the model and marks the constrained
// equations of every state of trsList in flags
func (bc *DirichletBC) Setup(model physics.ModelConfig, flags *FlagRegistry, trsList []*mesh.TRS) (err error) {
	if bc.fn == nil {
		return errors.NotValidf("%s: setup before configure", bc.name)
	}
	nbEqs := model.NbEqs
	bc.model = model
	if len(bc.opts.ApplyEqs) == 0 {
		bc.applyEqs = utils.NewUnitRange(nbEqs)
	} else {
		bc.applyEqs = append(utils.Index(nil), bc.opts.ApplyEqs...)
		if len(bc.applyEqs.Unique()) != len(bc.applyEqs) {
			return errors.NotValidf("%s: repeated equation in ApplyEqs %v", bc.name, bc.opts.ApplyEqs)
		}
		for _, eq := range bc.applyEqs {
			if eq < 0 || eq >= nbEqs {
				return errors.NotValidf("%s: ApplyEqs entry %d for %d equations", bc.name, eq, nbEqs)
			}
		}
	}
	switch nf := bc.fn.NbFuncs(); {
	case nf == nbEqs:
		bc.perEq = true
	case nf == len(bc.applyEqs):
		bc.perEq = false
	default:
		return errors.NotValidf("%s: %d functions in Def, need %d (one per equation) or %d (one per applied equation)",
			bc.name, nf, nbEqs, len(bc.applyEqs))
	}
	if nv := bc.fn.NbVars(); nv > model.NbVariables() {
		return errors.NotValidf("%s: %d variables in Vars, model %q provides %d",
			bc.name, nv, model.Name, model.NbVariables())
	}
	bc.trsList = trsList
	for _, trs := range trsList {
		for _, id := range trs.StateIDs {
			flags.MarkApplicable(id, bc.applyEqs)
		}
	}
	bc.vars = make([]float64, model.NbVariables())
	bc.values = make([]float64, bc.fn.NbFuncs())
	bc.eff = make([]float64, len(bc.applyEqs))
	return
}

// target is the imposed value of the j-th applied equation
func (bc *DirichletBC) target(j int) float64 {
	if bc.perEq {
		return bc.values[bc.applyEqs[j]]
	}
	return bc.values[j]
}

// ExecuteOnTrs enforces the condition on the states of one region. The
// region is bracketed by flush fences since the interior assembly adds
// values while this command sets them.
func (bc *DirichletBC) ExecuteOnTrs(s *Sockets, trs *mesh.TRS) (err error) {
	if bc.vars == nil {
		return errors.NotValidf("%s: execute before setup", bc.name)
	}
	if err = s.checkStrong(); err != nil {
		return errors.Annotatef(err, "%s on %q", bc.name, trs.Name)
	}
	var (
		nbEqs = s.Model.NbEqs
		sys   = s.System
		zeros []float64
	)
	if err = sys.FlushAssembly(); err != nil {
		return errors.Annotatef(err, "%s on %q", bc.name, trs.Name)
	}
	logger.Debugf("%s: enforcing %d states of %q at t=%g", bc.name, len(trs.StateIDs), trs.Name, s.Model.Time)
	for _, id := range trs.StateIDs {
		if s.Flags.IsLocked(id) {
			logger.Tracef("%s: state %d already enforced", bc.name, id)
			continue
		}
		if !s.States.IsParUpdatable(id) {
			continue
		}
		nbrs := s.Adjacency.Of(id)
		if len(nbrs) == 0 {
			return errors.Annotatef(PreconditionViolated, "%s: state %d of %q has no neighbors",
				bc.name, id, trs.Name)
		}
		var (
			rowBase = s.Mapping.ColID(id) * nbEqs
			state   = s.States.State(id)
		)
		s.Model.LoadVariables(bc.vars, s.States.Coordinates(id), state)
		if err = bc.fn.Evaluate(bc.vars, bc.values); err != nil {
			return errors.Annotatef(err, "%s: state %d", bc.name, id)
		}
		for j, eq := range bc.applyEqs {
			bc.eff[j] = bc.target(j) - bc.implicit*state[eq]
		}
		if bc.symmetry != types.ScaleDiagonal {
			for _, nb := range nbrs {
				colBase := s.Mapping.ColID(nb) * nbEqs
				for _, eq := range bc.applyEqs {
					for e := 0; e < nbEqs; e++ {
						sys.SetValue(rowBase+eq, colBase+e, 0)
					}
				}
			}
			if bc.symmetry == types.AdjustColumn {
				if err = bc.adjustColumn(s, id, nbrs, &zeros); err != nil {
					return
				}
			}
		}
		for j, eq := range bc.applyEqs {
			sys.SetValue(rowBase+eq, rowBase+eq, bc.scale)
			s.RHS[id*nbEqs+eq] = bc.eff[j] * bc.scale
			if bc.symmetry != types.ScaleDiagonal {
				s.Flags.MarkIdentityRow(id, eq)
			}
		}
		s.Flags.Lock(id)
		logger.Tracef("%s: state %d set to %v", bc.name, id, bc.eff)
	}
	if err = sys.FlushAssembly(); err != nil {
		return errors.Annotatef(err, "%s on %q", bc.name, trs.Name)
	}
	return
}

// adjustColumn moves the coupling of the neighbor rows with the enforced
// columns to the neighbor right hand side, then removes it from the matrix
func (bc *DirichletBC) adjustColumn(s *Sockets, id int, nbrs []int, zeros *[]float64) (err error) {
	var (
		nbEqs  = s.Model.NbEqs
		nApply = len(bc.applyEqs)
		m      = nApply * len(nbrs)
		rows   = make([]int, 0, m)
		cols   = lss.ScalarRows(s.Mapping, id, nbEqs, bc.applyEqs)
		block  = make([]float64, m*nApply)
	)
	for _, nb := range nbrs {
		rows = append(rows, lss.ScalarRows(s.Mapping, nb, nbEqs, bc.applyEqs)...)
	}
	if err = s.System.FinalAssembly(); err != nil {
		return errors.Annotatef(err, "%s: state %d", bc.name, id)
	}
	if err = s.System.GetValues(rows, cols, block); err != nil {
		return errors.Annotatef(err, "%s: state %d", bc.name, id)
	}
	for i, nb := range nbrs {
		for j, eq := range bc.applyEqs {
			r := (i*nApply + j) * nApply
			for k := 0; k < nApply; k++ {
				s.RHS[nb*nbEqs+eq] -= block[r+k] * bc.eff[k]
			}
		}
	}
	if len(*zeros) < len(block) {
		*zeros = make([]float64, len(block))
	}
	s.System.SetValues(rows, cols, (*zeros)[:len(block)])
	return
}
