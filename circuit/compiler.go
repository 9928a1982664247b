//
// compiler.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/pkg/errors"
)

// Compile compiles the postfix token sequence into a program. Tokens
// found in the alphabet are gate operators, all other tokens are
// input references. Each operator pops its right operand first and
// then its left operand. The last token must be an operator; it is
// the terminal gate and its output is not pushed.
func Compile(tokens []string, alphabet Alphabet) (*Program, error) {
	if len(tokens) == 0 {
		return nil, errors.Wrap(ErrMalformedCircuit, "empty circuit")
	}
	prog := &Program{
		Tokens: append([]string(nil), tokens...),
		inputs: make(map[string]Wire),
	}

	var stack []Wire

	for pos, token := range tokens {
		if len(token) == 0 {
			return nil, errors.Wrapf(ErrMalformedCircuit,
				"empty token at %d", pos)
		}
		terminal := pos == len(tokens)-1

		table, ok := alphabet.Lookup(token)
		if !ok {
			if terminal {
				return nil, errors.Wrapf(ErrMalformedCircuit,
					"last token %s is not an operator", token)
			}
			w, ok := prog.inputs[token]
			if !ok {
				w = prog.newWire()
				prog.inputs[token] = w
				prog.Inputs = append(prog.Inputs, token)
			}
			prog.Steps = append(prog.Steps, Step{
				Token: token,
				Wire:  w,
				Gate:  -1,
			})
			stack = append(stack, w)
			continue
		}

		if len(stack) < 2 {
			return nil, errors.Wrapf(ErrMalformedCircuit,
				"operator %s at %d: stack underflow", token, pos)
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		gate := Gate{
			ID:       len(prog.Gates),
			Position: pos,
			Op:       token,
			Table:    table,
			Left:     left,
			Right:    right,
			Output:   prog.newWire(),
			Terminal: terminal,
		}
		prog.Gates = append(prog.Gates, gate)
		prog.Steps = append(prog.Steps, Step{
			Token: token,
			Wire:  gate.Output,
			Gate:  gate.ID,
		})
		if !terminal {
			stack = append(stack, gate.Output)
		}
	}
	if len(stack) != 0 {
		return nil, errors.Wrapf(ErrMalformedCircuit,
			"%d values left on stack", len(stack))
	}

	return prog, nil
}

func (p *Program) newWire() Wire {
	w := Wire(p.NumWires)
	p.NumWires++
	return w
}

// Compute evaluates the program in plaintext with the input values.
func (p *Program) Compute(inputs map[string]bool) (bool, error) {
	var stack []bool

	for _, step := range p.Steps {
		if !step.IsGate() {
			v, ok := inputs[step.Token]
			if !ok {
				return false, errors.Errorf("no value for input %s",
					step.Token)
			}
			stack = append(stack, v)
			continue
		}
		if len(stack) < 2 {
			return false, errors.Wrapf(ErrMalformedCircuit,
				"operator %s: stack underflow", step.Token)
		}
		gate := p.Gates[step.Gate]
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		result := gate.Table.Output(left, right)
		if gate.Terminal {
			if len(stack) != 0 {
				return false, errors.Wrapf(ErrMalformedCircuit,
					"%d values left on stack", len(stack))
			}
			return result, nil
		}
		stack = append(stack, result)
	}
	return false, errors.Wrap(ErrMalformedCircuit, "no terminal gate")
}
