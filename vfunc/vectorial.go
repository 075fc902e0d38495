package vfunc

import (
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("gocfdbc.vfunc")

// VectorialFunction evaluates one scalar expression per component over a
// fixed list of named variables
type VectorialFunction struct {
	vars     []string
	defs     []string
	programs []*vm.Program
	env      map[string]any
}

func New(vars, defs []string) (vf *VectorialFunction, err error) {
	vf = &VectorialFunction{
		vars: make([]string, len(vars)),
		defs: make([]string, len(defs)),
		env:  make(map[string]any, len(vars)+1),
	}
	vf.env["pi"] = math.Pi
	for i, v := range vars {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, errors.NotValidf("empty variable name at position %d", i)
		}
		if _, dup := vf.env[v]; dup {
			return nil, errors.NotValidf("variable %q declared twice", v)
		}
		vf.vars[i] = v
		vf.env[v] = 0.
	}
	opts := append([]expr.Option{expr.Env(vf.env), expr.AsFloat64()}, mathFunctions()...)
	for i, d := range defs {
		vf.defs[i] = strings.TrimSpace(d)
		var prg *vm.Program
		if prg, err = expr.Compile(vf.defs[i], opts...); err != nil {
			return nil, errors.NewNotValid(err, "parsing function "+vf.defs[i])
		}
		vf.programs = append(vf.programs, prg)
	}
	logger.Debugf("compiled %d functions of %v", len(defs), vf.vars)
	return
}

func (vf *VectorialFunction) NbVars() int { return len(vf.vars) }

func (vf *VectorialFunction) NbFuncs() int { return len(vf.programs) }

func (vf *VectorialFunction) Vars() []string { return vf.vars }

func (vf *VectorialFunction) Defs() []string { return vf.defs }

// Evaluate computes every component at vars. Extra trailing values beyond
// NbVars are ignored, so callers may pass the full variable vector.
func (vf *VectorialFunction) Evaluate(vars, out []float64) (err error) {
	if len(vars) < len(vf.vars) {
		return errors.NotValidf("%d values for %d variables", len(vars), len(vf.vars))
	}
	if len(out) < len(vf.programs) {
		return errors.NotValidf("output of length %d for %d functions", len(out), len(vf.programs))
	}
	for i, name := range vf.vars {
		vf.env[name] = vars[i]
	}
	for i, prg := range vf.programs {
		var res any
		if res, err = expr.Run(prg, vf.env); err != nil {
			return errors.Annotatef(err, "evaluating %q", vf.defs[i])
		}
		out[i] = res.(float64)
	}
	return
}

func toFloat(a any) (f float64, err error) {
	switch v := a.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		err = errors.Errorf("non numeric argument %v", a)
	}
	return
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, errors.Errorf("%s takes one argument, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, errors.Annotate(err, name)
		}
		return fn(x), nil
	})
}

func binary(name string, fn func(float64, float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, errors.Errorf("%s takes two arguments, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, errors.Annotate(err, name)
		}
		y, err := toFloat(params[1])
		if err != nil {
			return nil, errors.Annotate(err, name)
		}
		return fn(x, y), nil
	})
}

func mathFunctions() []expr.Option {
	return []expr.Option{
		unary("sin", math.Sin), unary("cos", math.Cos), unary("tan", math.Tan),
		unary("asin", math.Asin), unary("acos", math.Acos), unary("atan", math.Atan),
		unary("sinh", math.Sinh), unary("cosh", math.Cosh), unary("tanh", math.Tanh),
		unary("exp", math.Exp), unary("log", math.Log), unary("log10", math.Log10),
		unary("sqrt", math.Sqrt),
		binary("atan2", math.Atan2), binary("pow", math.Pow),
	}
}
