package utils

import (
	"sort"
)

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size <= 0 {
		return Index{}
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// NewUnitRange is [0, N), the full equation range of an N equation model
func NewUnitRange(N int) (r Index) {
	return NewRange(0, N-1)
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

// Unique returns the sorted set of values in I
func (I Index) Unique() (r Index) {
	if len(I) == 0 {
		return Index{}
	}
	s := I.Copy()
	sort.Ints(s)
	r = Index{s[0]}
	for _, val := range s[1:] {
		if val != r[len(r)-1] {
			r = append(r, val)
		}
	}
	return
}
