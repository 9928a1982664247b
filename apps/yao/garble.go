//
// garble.go
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
	jww "github.com/spf13/jwalterweatherman"
)

var garblerInput uint64

var garbleCmd = &cobra.Command{
	Use:   "garble",
	Short: "Garble the circuit and serve one evaluator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition()
		if err != nil {
			return err
		}
		fmt.Printf("Circuit: %s\n", def.Name)
		fmt.Printf("Input:   %d\n", garblerInput)

		timing := circuit.NewTiming()
		g, err := yao.NewGarbler(newConfig(), def, garblerInput)
		if err != nil {
			return err
		}
		timing.Sample("Garble", []string{
			fmt.Sprintf("%d", len(g.Program().Gates)),
		})

		dir, err := exchangeDir()
		if err != nil {
			return err
		}
		ctx, cancel := timeoutContext()
		defer cancel()

		var stats p2p.IOStats
		if dir != nil {
			stats, err = yao.GarbleDir(ctx, dir, g, timing)
			if err != nil {
				return err
			}
		} else {
			ln, err := net.Listen("tcp", addr())
			if err != nil {
				return err
			}
			fmt.Printf("Listening for connections at %s\n", ln.Addr())
			go func() {
				<-ctx.Done()
				ln.Close()
			}()
			nc, err := ln.Accept()
			ln.Close()
			if err != nil {
				return err
			}
			jww.INFO.Printf("New connection from %s", nc.RemoteAddr())
			if deadline, ok := ctx.Deadline(); ok {
				nc.SetDeadline(deadline)
			}
			conn := p2p.NewConn(nc)
			err = yao.RunGarbler(conn, g, timing)
			if cerr := conn.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			stats = conn.Stats
		}
		timing.Print(os.Stdout, stats)
		return nil
	},
}

func init() {
	garbleCmd.Flags().Uint64VarP(&garblerInput, "input", "i", 0,
		"Garbler's input value")
	rootCmd.AddCommand(garbleCmd)
}
