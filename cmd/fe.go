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
	"fmt"
	"os"

	"github.com/notargets/gocfdbc/InputParameters"
	"github.com/spf13/cobra"
)

var exampleFE = `
########################################
Title: "Test Case"
Problem: Laplace2D
Nx: 8
Ny: 8
BCs:
  Left:
    Type: Dirichlet
    Options:
      Symmetry: AdjustColumn
      Vars: [x, y]
      Def: ["1 + x*y"]
########################################
`

// FECmd represents the fe command
var FECmd = &cobra.Command{
	Use:   "fe",
	Short: "Finite element Laplace solve with strong Dirichlet boundaries",
	Long: `Assembles a P1 Laplace problem on a structured triangulation, enforces the
Dirichlet blocks of the case file strongly on the system matrix and solves it.`,
	Run: func(cmd *cobra.Command, args []string) {
		cp := processInput(cmd)
		lp, err := BuildFE(cp)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		if err = lp.Run(); err != nil {
			panic(err)
		}
		if show, _ := cmd.Flags().GetBool("print"); show {
			lp.Print()
		}
		fmt.Printf("%s\n", lp.System)
	},
}

func processInput(cmd *cobra.Command) (cp *InputParameters.CaseParameters) {
	var (
		err  error
		file string
	)
	if file, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		panic(err)
	}
	if len(file) == 0 {
		fmt.Printf("error: must supply a case file (-I, --inputConditionsFile)\n")
		fmt.Printf("Example File:%s\n", exampleFE)
		os.Exit(1)
	}
	if cp, err = InputParameters.ReadCaseParameters(file); err != nil {
		panic(err)
	}
	cp.Print()
	return
}

func init() {
	rootCmd.AddCommand(FECmd)
	FECmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file")
	FECmd.Flags().BoolP("print", "p", false, "print the nodal solution")
}
