//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements postfix boolean circuits and their
// garbling and evaluation.
package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/text/superscript"
	"github.com/pkg/errors"
)

// Circuit errors. They are terminal for the protocol run.
var (
	ErrMalformedCircuit  = errors.New("malformed circuit")
	ErrInvalidTruthTable = errors.New("invalid truth table")
	ErrUnknownRow        = errors.New("unknown garbled row")
	ErrDuplicateRow      = errors.New("duplicate garbled row")
	ErrInvalidOutput     = errors.New("invalid output label")
)

// Wire specifies a wire ID.
type Wire uint32

// ID returns the wire ID as integer.
func (w Wire) ID() int {
	return int(w)
}

func (w Wire) String() string {
	return fmt.Sprintf("w%d", w)
}

// Gate specifies a two-input gate of the program.
type Gate struct {
	ID       int
	Position int
	Op       string
	Table    TruthTable
	Left     Wire
	Right    Wire
	Output   Wire
	Terminal bool
}

// Name returns the gate's display name derived from its truth table
// and token position.
func (g Gate) Name() string {
	return fmt.Sprintf("%s_%d", g.Table, g.Position)
}

func (g Gate) String() string {
	return fmt.Sprintf("%v %v %s %v", g.Left, g.Right, g.Op, g.Output)
}

// Step is one token of the program. Input steps reference an input
// wire and have Gate -1.
type Step struct {
	Token string
	Wire  Wire
	Gate  int
}

// IsGate tests if the step applies a gate.
func (s Step) IsGate() bool {
	return s.Gate >= 0
}

// Program is a compiled postfix circuit. Wires and gates are
// allocated from arenas and referenced by index.
type Program struct {
	Tokens   []string
	Steps    []Step
	Inputs   []string
	Gates    []Gate
	NumWires int

	inputs map[string]Wire
}

// Input returns the wire of the named input.
func (p *Program) Input(name string) (Wire, bool) {
	w, ok := p.inputs[name]
	return w, ok
}

// Terminal returns the program's terminal gate.
func (p *Program) Terminal() Gate {
	return p.Gates[len(p.Gates)-1]
}

func (p *Program) String() string {
	return fmt.Sprintf("#gates=%d #inputs=%d #w=%d",
		len(p.Gates), len(p.Inputs), p.NumWires)
}

// Dump prints a debug dump of the program.
func (p *Program) Dump(w io.Writer) {
	fmt.Fprintf(w, "program %s\n", p)
	for _, name := range p.Inputs {
		fmt.Fprintf(w, "in\t%s\t%v\n", name, p.inputs[name])
	}
	for _, g := range p.Gates {
		var term string
		if g.Terminal {
			term = "\tterminal"
		}
		fmt.Fprintf(w, "g%s\t%s\t%v%s\n", superscript.Itoa(g.ID), g.Name(),
			g, term)
	}
}
