//go:build cgo && netlib

package utils

/*
#cgo CFLAGS: -march=native -mavx -mavx2
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	"github.com/juju/loggo"
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Dense solves in the model problems go through blas64, so swapping the
// implementation here accelerates them without any other change.
func init() {
	blas64.Use(netblas.Implementation{})
	loggo.GetLogger("gocfdbc.utils").Infof("using netlib to accelerate BLAS")
}
