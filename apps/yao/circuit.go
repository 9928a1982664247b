//
// circuit.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"

	"github.com/markkurossi/yao"
	"github.com/markkurossi/yao/circuit"
	"github.com/spf13/cobra"
)

var (
	compute      bool
	computeInput [2]uint64
)

var circuitCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Print the circuit definition and its compiled program",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition()
		if err != nil {
			return err
		}
		if err := def.Marshal(os.Stdout); err != nil {
			return err
		}
		prog, err := def.Compile()
		if err != nil {
			return err
		}
		fmt.Println()
		prog.Dump(os.Stdout)

		if !compute {
			return nil
		}
		inputs, err := circuit.Bits(def.Garbler, computeInput[0])
		if err != nil {
			return err
		}
		eb, err := circuit.Bits(def.Evaluator, computeInput[1])
		if err != nil {
			return err
		}
		for k, v := range eb {
			inputs[k] = v
		}
		result, err := prog.Compute(inputs)
		if err != nil {
			return err
		}
		fmt.Println()
		yao.PrintResult(os.Stdout, def, result)
		return nil
	},
}

func init() {
	flags := circuitCmd.Flags()
	flags.BoolVar(&compute, "compute", false,
		"Evaluate the circuit in plaintext with the inputs")
	flags.Uint64Var(&computeInput[0], "garbler", 0, "Garbler's input value")
	flags.Uint64Var(&computeInput[1], "evaluator", 0,
		"Evaluator's input value")
	rootCmd.AddCommand(circuitCmd)
}
