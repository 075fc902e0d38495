package mesh

import (
	"sort"

	"github.com/notargets/gocfdbc/types"
)

// Adjacency is the state to state coupling graph of a partition stored as
// one arena: the neighbors of state i are Neighbors[Offsets[i]:Offsets[i+1]].
// A state couples with itself, as in a finite element stencil.
type Adjacency struct {
	Offsets   []int
	Neighbors []int
}

// BuildAdjacency couples every pair of states sharing an element
func BuildAdjacency(nStates int, elements [][]int) (adj *Adjacency) {
	var (
		seen = make(map[types.EdgeKey]struct{})
		nbrs = make([][]int, nStates)
	)
	for _, elem := range elements {
		for i, a := range elem {
			for _, b := range elem[i:] {
				seen[types.NewEdgeKey([2]int{a, b})] = struct{}{}
			}
		}
	}
	for ek := range seen {
		v := ek.GetVertices(false)
		nbrs[v[0]] = append(nbrs[v[0]], v[1])
		if v[0] != v[1] {
			nbrs[v[1]] = append(nbrs[v[1]], v[0])
		}
	}
	adj = &Adjacency{Offsets: make([]int, nStates+1)}
	for i, nb := range nbrs {
		sort.Ints(nb)
		adj.Neighbors = append(adj.Neighbors, nb...)
		adj.Offsets[i+1] = len(adj.Neighbors)
	}
	return
}

func (adj *Adjacency) Of(id int) []int {
	return adj.Neighbors[adj.Offsets[id]:adj.Offsets[id+1]]
}

func (adj *Adjacency) NbStates() int { return len(adj.Offsets) - 1 }
