//
// evaluator.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"reflect"

	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// Evaluator implements the evaluating party.
type Evaluator struct {
	config    *env.Config
	def       *circuit.Definition
	prog      *circuit.Program
	input     map[string]bool
	xfers     []*ot.ReceiverXfer
	requested bool
}

// NewEvaluator creates an evaluator for the definition and the
// evaluator's input value.
func NewEvaluator(config *env.Config, def *circuit.Definition,
	input uint64) (*Evaluator, error) {

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
	bits, err := circuit.Bits(def.Evaluator, input)
	if err != nil {
		return nil, errors.Wrap(err, "evaluator input")
	}
	return &Evaluator{
		config: config,
		def:    def,
		prog:   prog,
		input:  bits,
	}, nil
}

// Program returns the evaluator's compiled program.
func (e *Evaluator) Program() *circuit.Program {
	return e.prog
}

// Requests creates the OT requests for the evaluator's input bits.
// Requests can be created only once: a new request for the same bits
// must come from a new Evaluator.
func (e *Evaluator) Requests() ([]ot.Request, error) {
	if e.requested {
		return nil, errors.New("OT requests already created")
	}
	e.requested = true

	receiver := ot.NewReceiver(e.config.GetRandom())

	var xfers []*ot.ReceiverXfer
	var requests []ot.Request
	for _, name := range e.def.Evaluator {
		xfer, err := receiver.NewTransfer(e.input[name])
		if err != nil {
			return nil, err
		}
		xfers = append(xfers, xfer)
		requests = append(requests, xfer.Request())
	}
	e.xfers = xfers
	jww.INFO.Printf("Evaluator: created %d OT requests", len(requests))

	return requests, nil
}

// Evaluate resolves the evaluator's input labels from the OT replies
// and evaluates the garbled circuit of the bundle.
func (e *Evaluator) Evaluate(replies []ot.Reply, bundle *Bundle) (
	bool, error) {

	if !e.requested {
		return false, errors.New("OT requests not created")
	}
	if len(replies) != len(e.xfers) {
		return false, errors.Errorf("got %d OT replies, expected %d",
			len(replies), len(e.xfers))
	}
	if !reflect.DeepEqual(bundle.Tokens, e.prog.Tokens) {
		return false, errors.Wrap(circuit.ErrMalformedCircuit,
			"bundle function does not match")
	}
	if len(bundle.Inputs) != len(e.def.Garbler) {
		return false, errors.Errorf("bundle has %d garbler inputs, expected %d",
			len(bundle.Inputs), len(e.def.Garbler))
	}

	labels := make(map[string]ot.Label)
	for _, name := range e.def.Garbler {
		l, ok := bundle.Inputs[name]
		if !ok {
			return false, errors.Errorf("bundle has no garbler input %s", name)
		}
		labels[name] = l
	}
	for i, name := range e.def.Evaluator {
		l, err := e.xfers[i].Resolve(replies[i])
		if err != nil {
			return false, errors.Wrapf(err, "input %s", name)
		}
		if e.config.Verbose {
			jww.DEBUG.Printf("Evaluator: %s\t%s", name, l)
		}
		labels[name] = l
	}

	result, err := e.prog.Eval(bundle.Gates, labels)
	if err != nil {
		return false, err
	}
	jww.INFO.Printf("Evaluator: result %v", result)

	return result, nil
}
