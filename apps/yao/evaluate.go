//
// evaluate.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"net"
	"os"

	"github.com/markkurossi/yao"
	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/p2p"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var evaluatorInput uint64

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate the garbler's circuit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition()
		if err != nil {
			return err
		}
		fmt.Printf("Circuit: %s\n", def.Name)
		fmt.Printf("Input:   %d\n", evaluatorInput)

		timing := circuit.NewTiming()
		e, err := yao.NewEvaluator(newConfig(), def, evaluatorInput)
		if err != nil {
			return err
		}
		timing.Sample("Compile", []string{
			fmt.Sprintf("%d", len(e.Program().Gates)),
		})

		dir, err := exchangeDir()
		if err != nil {
			return err
		}
		ctx, cancel := timeoutContext()
		defer cancel()

		var result bool
		var stats p2p.IOStats
		if dir != nil {
			result, stats, err = yao.EvaluateDir(ctx, dir, e, timing)
			if err != nil {
				return err
			}
		} else {
			var d net.Dialer
			nc, err := d.DialContext(ctx, "tcp", addr())
			if err != nil {
				return err
			}
			if deadline, ok := ctx.Deadline(); ok {
				nc.SetDeadline(deadline)
			}
			conn := p2p.NewConn(nc)
			result, err = yao.RunEvaluator(conn, e, timing)
			conn.Close()
			if err != nil {
				return err
			}
			stats = conn.Stats
		}
		timing.Print(os.Stdout, stats)
		yao.PrintResult(os.Stdout, def, result)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().Uint64VarP(&evaluatorInput, "input", "i", 0,
		"Evaluator's input value")
	rootCmd.AddCommand(evaluateCmd)
}

func addr() string {
	return viper.GetString("addr")
}
