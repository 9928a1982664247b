//
// garbler.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// Garbler implements the garbling party.
type Garbler struct {
	config  *env.Config
	def     *circuit.Definition
	prog    *circuit.Program
	input   map[string]bool
	garbled *circuit.Garbled
	sender  *ot.Sender
	replied bool
}

// NewGarbler compiles the definition and garbles its circuit for the
// garbler's input value.
func NewGarbler(config *env.Config, def *circuit.Definition, input uint64) (
	*Garbler, error) {

	if config == nil {
		config = new(env.Config)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	prog, err := def.Compile()
	if err != nil {
		return nil, err
	}
	bits, err := circuit.Bits(def.Garbler, input)
	if err != nil {
		return nil, errors.Wrap(err, "garbler input")
	}
	garbled, err := prog.Garble(config)
	if err != nil {
		return nil, err
	}
	jww.INFO.Printf("Garbler: circuit %s", prog)

	if config.Verbose {
		for i, w := range garbled.Wires {
			jww.DEBUG.Printf("Garbler: w%d\t%s", i, w)
		}
	}

	return &Garbler{
		config:  config,
		def:     def,
		prog:    prog,
		input:   bits,
		garbled: garbled,
		sender:  ot.NewSender(config.GetRandom()),
	}, nil
}

// Program returns the garbler's compiled program.
func (g *Garbler) Program() *circuit.Program {
	return g.prog
}

// Reply answers the evaluator's OT requests. The requests are matched
// with the evaluator's input wires in definition order. Any invalid
// key pair fails the whole reply with ot.ErrInvalidKeyPair and the
// garbler refuses to reply again.
func (g *Garbler) Reply(requests []ot.Request) ([]ot.Reply, error) {
	if g.replied {
		return nil, errors.New("OT requests already answered")
	}
	g.replied = true

	if len(requests) != len(g.def.Evaluator) {
		return nil, errors.Errorf("got %d OT requests, expected %d",
			len(requests), len(g.def.Evaluator))
	}
	var wires []ot.Wire
	for _, name := range g.def.Evaluator {
		w, ok := g.prog.Input(name)
		if !ok {
			return nil, errors.Errorf("unknown evaluator input %s", name)
		}
		wires = append(wires, g.garbled.Wires[w])
	}
	replies, err := g.sender.Send(requests, wires)
	if err != nil {
		return nil, err
	}
	jww.INFO.Printf("Garbler: answered %d OT requests", len(replies))
	return replies, nil
}

// Bundle returns the circuit bundle with the labels of the garbler's
// input bits.
func (g *Garbler) Bundle() *Bundle {
	bundle := &Bundle{
		Tokens: append([]string(nil), g.prog.Tokens...),
		Inputs: make(map[string]ot.Label),
		Gates:  g.garbled.Gates,
	}
	for _, name := range g.def.Garbler {
		w, _ := g.prog.Input(name)
		bundle.Inputs[name] = g.garbled.Wires[w].Select(g.input[name])
	}
	return bundle
}
