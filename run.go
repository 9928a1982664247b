//
// run.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"context"
	"fmt"

	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/ot"
	"github.com/markkurossi/yao/p2p"
	jww "github.com/spf13/jwalterweatherman"
)

// Message names of the directory exchange.
const (
	RequestFile = "request.bin"
	ReplyFile   = "reply.bin"
	BundleFile  = "bundle.bin"
)

func sample(timing *circuit.Timing, label string, cols ...string) {
	if timing != nil {
		timing.Sample(label, cols)
	}
}

// RunGarbler runs the garbler side of the protocol over the
// connection. The timing argument is optional.
func RunGarbler(conn *p2p.Conn, g *Garbler, timing *circuit.Timing) error {
	requests, err := ReadRequests(conn)
	if err != nil {
		return err
	}
	sample(timing, "Recv", fmt.Sprintf("%d", len(requests)))

	replies, err := g.Reply(requests)
	if err != nil {
		return err
	}
	sample(timing, "OT")

	if err := WriteReplies(conn, replies); err != nil {
		return err
	}
	if err := WriteBundle(conn, g.Bundle()); err != nil {
		return err
	}
	sample(timing, "Send")

	return nil
}

// RunEvaluator runs the evaluator side of the protocol over the
// connection and returns the circuit result. The timing argument is
// optional.
func RunEvaluator(conn *p2p.Conn, e *Evaluator, timing *circuit.Timing) (
	bool, error) {

	requests, err := e.Requests()
	if err != nil {
		return false, err
	}
	if err := WriteRequests(conn, requests); err != nil {
		return false, err
	}
	sample(timing, "OT", fmt.Sprintf("%d", len(requests)))

	replies, err := ReadReplies(conn)
	if err != nil {
		return false, err
	}
	bundle, err := ReadBundle(conn)
	if err != nil {
		return false, err
	}
	sample(timing, "Recv", fmt.Sprintf("%d", len(bundle.Gates)))

	result, err := e.Evaluate(replies, bundle)
	if err != nil {
		return false, err
	}
	sample(timing, "Eval")

	return result, nil
}

// GarbleDir runs the garbler side of the protocol over the directory
// exchange. It waits for the evaluator's request and publishes the
// reply and the bundle.
func GarbleDir(ctx context.Context, dir *p2p.Dir, g *Garbler,
	timing *circuit.Timing) (p2p.IOStats, error) {

	stats := p2p.NewIOStats()

	jww.INFO.Printf("Garbler: waiting for %s", RequestFile)
	if err := dir.Await(ctx, RequestFile); err != nil {
		return stats, err
	}
	conn, err := dir.Open(RequestFile)
	if err != nil {
		return stats, err
	}
	requests, err := ReadRequests(conn)
	conn.Close()
	stats = stats.Add(conn.Stats)
	if err != nil {
		return stats, err
	}
	// The request is consumed so the next run waits for a fresh one.
	if err := dir.Remove(RequestFile); err != nil {
		return stats, err
	}
	sample(timing, "Recv", fmt.Sprintf("%d", len(requests)))

	replies, err := g.Reply(requests)
	if err != nil {
		return stats, err
	}
	sample(timing, "OT")

	s, err := dir.Publish(ReplyFile, func(conn *p2p.Conn) error {
		return WriteReplies(conn, replies)
	})
	stats = stats.Add(s)
	if err != nil {
		return stats, err
	}
	s, err = dir.Publish(BundleFile, func(conn *p2p.Conn) error {
		return WriteBundle(conn, g.Bundle())
	})
	stats = stats.Add(s)
	if err != nil {
		return stats, err
	}
	sample(timing, "Send")

	return stats, nil
}

// EvaluateDir runs the evaluator side of the protocol over the
// directory exchange. It publishes the OT requests, waits for the
// garbler's bundle, and evaluates the circuit.
func EvaluateDir(ctx context.Context, dir *p2p.Dir, e *Evaluator,
	timing *circuit.Timing) (bool, p2p.IOStats, error) {

	stats := p2p.NewIOStats()

	// Stale messages from an earlier run would not match our keys.
	for _, name := range []string{ReplyFile, BundleFile} {
		if err := dir.Remove(name); err != nil {
			return false, stats, err
		}
	}

	requests, err := e.Requests()
	if err != nil {
		return false, stats, err
	}
	s, err := dir.Publish(RequestFile, func(conn *p2p.Conn) error {
		return WriteRequests(conn, requests)
	})
	stats = stats.Add(s)
	if err != nil {
		return false, stats, err
	}
	sample(timing, "OT", fmt.Sprintf("%d", len(requests)))

	jww.INFO.Printf("Evaluator: waiting for %s", BundleFile)
	if err := dir.Await(ctx, BundleFile); err != nil {
		return false, stats, err
	}

	var replies []ot.Reply
	var bundle *Bundle

	conn, err := dir.Open(ReplyFile)
	if err != nil {
		return false, stats, err
	}
	replies, err = ReadReplies(conn)
	conn.Close()
	stats = stats.Add(conn.Stats)
	if err != nil {
		return false, stats, err
	}

	conn, err = dir.Open(BundleFile)
	if err != nil {
		return false, stats, err
	}
	bundle, err = ReadBundle(conn)
	conn.Close()
	stats = stats.Add(conn.Stats)
	if err != nil {
		return false, stats, err
	}
	if err := dir.Remove(RequestFile); err != nil {
		return false, stats, err
	}
	sample(timing, "Recv", fmt.Sprintf("%d", len(bundle.Gates)))

	result, err := e.Evaluate(replies, bundle)
	if err != nil {
		return false, stats, err
	}
	sample(timing, "Eval")

	return result, stats, nil
}
