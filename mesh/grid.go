package mesh

import (
	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/utils"
)

// TriGrid is a structured triangulation of a rectangle, vertex centered.
// Node (i,j) has id i + j*(Nx+1).
type TriGrid struct {
	Nx, Ny   int
	States   *States
	Elements [][]int
	Adj      *Adjacency
	TRS      []*TRS
}

// NewTriGrid splits every cell of an Nx x Ny grid into two triangles. With
// a partition map, states owned by other ranks are marked not updatable.
// The boundary regions Bottom, Right, Top and Left share their corners.
func NewTriGrid(nx, ny int, xmin, xmax, ymin, ymax float64, nbEqs int,
	pm *utils.PartitionMap, rank int) (g *TriGrid, err error) {
	if nx < 1 || ny < 1 {
		err = errors.NotValidf("grid of %dx%d cells", nx, ny)
		return
	}
	var (
		np = (nx + 1) * (ny + 1)
		id = func(i, j int) int { return i + j*(nx+1) }
	)
	g = &TriGrid{Nx: nx, Ny: ny, States: NewStates(2, nbEqs, np)}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x := g.States.Coordinates(id(i, j))
			x[0] = xmin + (xmax-xmin)*float64(i)/float64(nx)
			x[1] = ymin + (ymax-ymin)*float64(j)/float64(ny)
		}
	}
	if pm != nil {
		for k := 0; k < np; k++ {
			g.States.ParUpdatable[k] = pm.Owner(k) == rank
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			g.Elements = append(g.Elements,
				[]int{id(i, j), id(i+1, j), id(i+1, j+1)},
				[]int{id(i, j), id(i+1, j+1), id(i, j+1)})
		}
	}
	g.Adj = BuildAdjacency(np, g.Elements)
	var bottom, right, top, left []int
	for i := 0; i <= nx; i++ {
		bottom = append(bottom, id(i, 0))
		top = append(top, id(i, ny))
	}
	for j := 0; j <= ny; j++ {
		right = append(right, id(nx, j))
		left = append(left, id(0, j))
	}
	g.TRS = []*TRS{
		NewTRS("Bottom", bottom),
		NewTRS("Right", right),
		NewTRS("Top", top),
		NewTRS("Left", left),
	}
	return
}

// Line1D is a cell centered grid on [xmin,xmax] with one ghost state per
// boundary face. Cell k is centered at xmin+(k+1/2)*h.
type Line1D struct {
	N      int
	H      float64
	States *States
	Ghosts *States
	TRS    []*TRS
}

func NewLine1D(n int, xmin, xmax float64, nbEqs int) (g *Line1D, err error) {
	if n < 2 {
		err = errors.NotValidf("line of %d cells", n)
		return
	}
	g = &Line1D{
		N:      n,
		H:      (xmax - xmin) / float64(n),
		States: NewStates(1, nbEqs, n),
		Ghosts: NewStates(1, nbEqs, 2),
	}
	for k := 0; k < n; k++ {
		g.States.Coordinates(k)[0] = xmin + (float64(k)+0.5)*g.H
	}
	// ghosts are mirrored through the boundary face
	g.Ghosts.Coordinates(0)[0] = xmin - 0.5*g.H
	g.Ghosts.Coordinates(1)[0] = xmax + 0.5*g.H
	g.Ghosts.GlobalIDs[0], g.Ghosts.GlobalIDs[1] = n, n+1
	left, right := NewTRS("Left", []int{0}), NewTRS("Right", []int{n - 1})
	left.AddFace(Face{ID: 0, Inner: 0, Ghost: 0, Nodes: []int{0}})
	right.AddFace(Face{ID: n, Inner: n - 1, Ghost: 1, Nodes: []int{n}})
	g.TRS = []*TRS{left, right}
	return
}
