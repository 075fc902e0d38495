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

	"github.com/spf13/cobra"
)

// FVCmd represents the fv command
var FVCmd = &cobra.Command{
	Use:   "fv",
	Short: "Finite volume diffusion to steady state with ghost state boundaries",
	Long: `Marches a cell centered diffusion problem in time, the boundary faces see the
ghost states set by the super inlet blocks of the case file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cp := processInput(cmd)
		d, err := BuildFV(cp)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		finalTime, tol := cp.FinalTime, cp.Tolerance
		if finalTime == 0 {
			finalTime = 10
		}
		if tol == 0 {
			tol = 1.e-10
		}
		steps, rate, err := d.Run(finalTime, tol)
		if err != nil {
			panic(err)
		}
		if show, _ := cmd.Flags().GetBool("print"); show {
			d.Print()
		}
		fmt.Printf("%d steps, rate = %g\n", steps, rate)
	},
}

func init() {
	rootCmd.AddCommand(FVCmd)
	FVCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file")
	FVCmd.Flags().BoolP("print", "p", false, "print the cell solution")
}
