package InputParameters

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/bc"
	"github.com/notargets/gocfdbc/types"
	"gopkg.in/yaml.v3"
)

// CaseParameters are read from the YAML case file
type CaseParameters struct {
	Title     string             `json:"Title"`
	Problem   string             `json:"Problem"` // Laplace2D or Diffusion1D
	Nx        int                `json:"Nx"`
	Ny        int                `json:"Ny"`
	XMin      float64            `json:"XMin"`
	XMax      float64            `json:"XMax"`
	YMin      float64            `json:"YMin"`
	YMax      float64            `json:"YMax"`
	Source    string             `json:"Source"`
	Solver    string             `json:"Solver"`
	Nu        float64            `json:"Nu"`
	CFL       float64            `json:"CFL"`
	FinalTime float64            `json:"FinalTime"`
	Tolerance float64            `json:"Tolerance"`
	BCs       map[string]BCBlock `json:"BCs"` // keyed by boundary region name
}

// BCBlock is the boundary command of one region. Options are decoded by
// the command family named in Type, the region name is used when Type is
// empty.
type BCBlock struct {
	Type    string          `json:"Type"`
	Options json.RawMessage `json:"Options"`
}

// Parse reads a YAML 1.2 case file. Bare scalars like y, n or on stay
// strings, they are common variable names in Vars.
func (cp *CaseParameters) Parse(data []byte) (err error) {
	var (
		doc interface{}
		js  []byte
	)
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return errors.NewNotValid(err, "case file")
	}
	if js, err = json.Marshal(jsonTree(doc)); err != nil {
		return errors.NewNotValid(err, "case file")
	}
	if err = json.Unmarshal(js, cp); err != nil {
		return errors.NewNotValid(err, "case file")
	}
	if cp.XMax == 0 && cp.XMin == 0 {
		cp.XMax = 1
	}
	if cp.YMax == 0 && cp.YMin == 0 {
		cp.YMax = 1
	}
	return
}

// jsonTree gives the string keys encoding/json needs to mappings decoded
// with non string keys
func jsonTree(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = jsonTree(val)
		}
		return t
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonTree(val)
		}
		return m
	case []interface{}:
		for i, val := range t {
			t[i] = jsonTree(val)
		}
		return t
	}
	return v
}

func ReadCaseParameters(path string) (cp *CaseParameters, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(path); err != nil {
		return nil, errors.Annotatef(err, "reading case file")
	}
	cp = &CaseParameters{}
	if err = cp.Parse(data); err != nil {
		return nil, errors.Annotatef(err, "file %s", path)
	}
	return
}

// Regions returns the region names in a stable order
func (cp *CaseParameters) Regions() (names []string) {
	for k := range cp.BCs {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

func (b BCBlock) Flag(region string) types.BCFLAG {
	if b.Type != "" {
		return types.NewBCFLAG(b.Type)
	}
	return types.NewBCFLAG(region)
}

func (b BCBlock) Dirichlet() (opts bc.DirichletOptions, err error) {
	if len(b.Options) != 0 {
		if err = json.Unmarshal(b.Options, &opts); err != nil {
			err = errors.NewNotValid(err, "Dirichlet options")
		}
	}
	return
}

func (b BCBlock) Projection() (opts bc.ProjectionOptions, err error) {
	if len(b.Options) != 0 {
		if err = json.Unmarshal(b.Options, &opts); err != nil {
			err = errors.NewNotValid(err, "projection options")
		}
	}
	return
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%s]\t\t= Problem\n", cp.Problem)
	fmt.Printf("[%d x %d]\t\t\t= Cells\n", cp.Nx, cp.Ny)
	fmt.Printf("[%g, %g] x [%g, %g]\t= Domain\n", cp.XMin, cp.XMax, cp.YMin, cp.YMax)
	if cp.Problem == "Diffusion1D" {
		fmt.Printf("%8.5f\t\t= Nu\n", cp.Nu)
		fmt.Printf("%8.5f\t\t= CFL\n", cp.CFL)
		fmt.Printf("%8.5f\t\t= FinalTime\n", cp.FinalTime)
	}
	for _, key := range cp.Regions() {
		b := cp.BCs[key]
		fmt.Printf("BCs[%s] = %s %s\n", key, b.Flag(key), string(b.Options))
	}
}
