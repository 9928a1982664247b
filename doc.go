//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package yao implements two-party secure function evaluation with
// Yao's garbled circuits.
//
// The garbler compiles a postfix boolean function, assigns random
// labels to every wire, and garbles each gate into a table indexed by
// the hash of its input labels. The evaluator obtains the labels of
// its own input bits with oblivious transfer and evaluates the
// garbled gates to learn the single output bit.
//
// The protocol has three messages:
//
//	Evaluator -> Garbler: OT requests, one per evaluator input wire
//	Garbler -> Evaluator: OT replies, in request order
//	Garbler -> Evaluator: the circuit bundle
//
// Both parties expose their phases as separate methods so the
// messages can be carried over any reliable channel. RunGarbler and
// RunEvaluator drive a session over a p2p.Conn, GarbleDir and
// EvaluateDir over a directory shared by the parties.
package yao
