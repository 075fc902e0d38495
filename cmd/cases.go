/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/InputParameters"
	"github.com/notargets/gocfdbc/model_problems/Diffusion1D"
	"github.com/notargets/gocfdbc/model_problems/Laplace2D"
	"github.com/notargets/gocfdbc/types"
)

// BuildFE creates the finite element problem of a case and attaches its
// strong boundary commands, one per region
func BuildFE(cp *InputParameters.CaseParameters) (lp *Laplace2D.Laplace2D, err error) {
	if lp, err = Laplace2D.NewLaplace2D(cp.Nx, cp.Ny, cp.XMin, cp.XMax, cp.YMin, cp.YMax); err != nil {
		return
	}
	if cp.Solver != "" {
		lp.Solver = cp.Solver
	}
	if cp.Tolerance > 0 {
		lp.Tol = cp.Tolerance
	}
	if cp.Source != "" {
		if err = lp.SetSource(cp.Source); err != nil {
			return nil, errors.Annotatef(err, "Source")
		}
	}
	for _, region := range cp.Regions() {
		b := cp.BCs[region]
		flag := b.Flag(region)
		if !flag.IsStrong() {
			return nil, errors.NotImplementedf("region %q: %s boundary on the finite element problem", region, flag)
		}
		opts, err := b.Dirichlet()
		if err != nil {
			return nil, errors.Annotatef(err, "region %q", region)
		}
		if err = lp.AddDirichlet(region, opts, region); err != nil {
			return nil, errors.Annotatef(err, "region %q", region)
		}
	}
	return
}

// BuildFV creates the finite volume problem of a case and attaches its
// ghost state commands
func BuildFV(cp *InputParameters.CaseParameters) (d *Diffusion1D.Diffusion1D, err error) {
	nu, cfl := cp.Nu, cp.CFL
	if nu == 0 {
		nu = 1
	}
	if cfl == 0 {
		cfl = 0.4
	}
	if d, err = Diffusion1D.NewDiffusion1D(cp.Nx, cp.XMin, cp.XMax, nu, cfl); err != nil {
		return
	}
	for _, region := range cp.Regions() {
		b := cp.BCs[region]
		switch flag := b.Flag(region); flag {
		case types.BC_SuperInlet, types.BC_SuperInletCoronal:
			opts, err := b.Projection()
			if err != nil {
				return nil, errors.Annotatef(err, "region %q", region)
			}
			opts.InletCoronalBC = opts.InletCoronalBC || flag == types.BC_SuperInletCoronal
			if err = d.AddInlet(region, opts, region); err != nil {
				return nil, errors.Annotatef(err, "region %q", region)
			}
		default:
			return nil, errors.NotImplementedf("region %q: %s boundary on the finite volume problem", region, flag)
		}
	}
	return
}

// BuildCase checks a case by building its problem without solving it
func BuildCase(cp *InputParameters.CaseParameters) (err error) {
	switch cp.Problem {
	case "Laplace2D", "":
		_, err = BuildFE(cp)
	case "Diffusion1D":
		_, err = BuildFV(cp)
	default:
		err = errors.NotValidf("problem %q", cp.Problem)
	}
	return
}
