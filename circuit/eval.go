//
// eval.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/markkurossi/yao/ot"
	"github.com/pkg/errors"
)

// Eval evaluates the garbled gates with the resolved input labels.
// The program steps are processed as a stack machine: inputs push
// their labels and gates pop the right and then the left operand and
// push the decrypted output label. The terminal gate's output is
// decoded against ot.TerminalWire.
func (p *Program) Eval(gates []GarbledGate, inputs map[string]ot.Label) (
	bool, error) {

	if len(gates) != len(p.Gates) {
		return false, errors.Wrapf(ErrMalformedCircuit,
			"got %d garbled gates, expected %d", len(gates), len(p.Gates))
	}

	var stack []ot.Label

	for _, step := range p.Steps {
		if !step.IsGate() {
			l, ok := inputs[step.Token]
			if !ok {
				return false, errors.Errorf("no label for input %s",
					step.Token)
			}
			stack = append(stack, l)
			continue
		}
		if len(stack) < 2 {
			return false, errors.Wrapf(ErrMalformedCircuit,
				"operator %s: stack underflow", step.Token)
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		gate := p.Gates[step.Gate]
		out, err := decrypt(&gates[gate.ID], left, right)
		if err != nil {
			return false, errors.Wrapf(err, "gate %s", gate.Name())
		}
		if !gate.Terminal {
			stack = append(stack, out)
			continue
		}
		if len(stack) != 0 {
			return false, errors.Wrapf(ErrMalformedCircuit,
				"%d labels left on stack", len(stack))
		}
		result, err := ot.TerminalWire.Decode(out)
		if err != nil {
			return false, errors.Wrap(ErrInvalidOutput, err.Error())
		}
		return result, nil
	}
	return false, errors.Wrap(ErrMalformedCircuit, "no terminal gate")
}

// EvalGate evaluates a single garbled gate.
func EvalGate(g *GarbledGate, left, right ot.Label) (ot.Label, error) {
	return decrypt(g, left, right)
}
