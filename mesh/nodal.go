package mesh

import (
	"io/ioutil"
	"os"

	"github.com/ghodss/yaml"
	"github.com/juju/errors"
)

// NodalField holds per node values read from a file, grouped by boundary
// region. Values[trs][nodeID] has one entry per field variable.
//
//	Name: Br
//	Regions:
//	  Inlet:
//	    "0": [1.5]
//	    "1": [1.7]
type NodalField struct {
	Name    string                       `json:"Name"`
	Regions map[string]map[int][]float64 `json:"Regions"`
}

func ParseNodalField(data []byte) (nf *NodalField, err error) {
	nf = &NodalField{}
	if err = yaml.Unmarshal(data, nf); err != nil {
		return nil, errors.NewNotValid(err, "nodal field")
	}
	return
}

func ReadNodalField(path string) (nf *NodalField, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(err, "nodal field")
		}
		return nil, errors.Annotatef(err, "reading nodal field")
	}
	if nf, err = ParseNodalField(data); err != nil {
		return nil, errors.Annotatef(err, "file %s", path)
	}
	return
}

// FaceAverage averages the variables varIDs over the nodes of a face of
// region trs into out
func (nf *NodalField) FaceAverage(trs string, nodes, varIDs []int, out []float64) (err error) {
	region, ok := nf.Regions[trs]
	if !ok {
		return errors.NotFoundf("region %q in nodal field %q", trs, nf.Name)
	}
	if len(nodes) == 0 {
		return errors.NotValidf("face without nodes")
	}
	for iv := range varIDs {
		out[iv] = 0
	}
	for _, n := range nodes {
		vals, ok := region[n]
		if !ok {
			return errors.NotFoundf("node %d of region %q in nodal field %q", n, trs, nf.Name)
		}
		for iv, v := range varIDs {
			if v < 0 || v >= len(vals) {
				return errors.NotValidf("variable %d of node %d, field has %d", v, n, len(vals))
			}
			out[iv] += vals[v]
		}
	}
	for iv := range varIDs {
		out[iv] /= float64(len(nodes))
	}
	return
}
