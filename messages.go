//
// messages.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"fmt"
	"sort"

	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/ot"
	"github.com/markkurossi/yao/p2p"
	"github.com/pkg/errors"
)

const (
	// Magic is the protocol message magic number and version.
	Magic = 0x79616f01 // yao\x01

	maxTokens = 1 << 20
)

// MsgType specifies protocol message types.
type MsgType byte

// Protocol messages in the order they are exchanged.
const (
	MsgRequests MsgType = iota + 1
	MsgReplies
	MsgBundle
)

var msgTypes = map[MsgType]string{
	MsgRequests: "requests",
	MsgReplies:  "replies",
	MsgBundle:   "bundle",
}

func (t MsgType) String() string {
	name, ok := msgTypes[t]
	if ok {
		return name
	}
	return fmt.Sprintf("{MsgType %d}", t)
}

// Bundle is the garbler's published circuit: the function tokens, the
// garbler's resolved input labels, and the garbled gates in gate
// order.
type Bundle struct {
	Tokens []string
	Inputs map[string]ot.Label
	Gates  []circuit.GarbledGate
}

func writeHeader(conn *p2p.Conn, t MsgType) error {
	if err := conn.SendUint32(Magic); err != nil {
		return err
	}
	return conn.SendByte(byte(t))
}

func readHeader(conn *p2p.Conn, expected MsgType) error {
	magic, err := conn.ReceiveUint32()
	if err != nil {
		return err
	}
	if magic != Magic {
		return errors.Errorf("invalid message magic 0x%08x", magic)
	}
	b, err := conn.ReceiveByte()
	if err != nil {
		return err
	}
	if MsgType(b) != expected {
		return errors.Errorf("unexpected message %s, expected %s",
			MsgType(b), expected)
	}
	return nil
}

func receiveCount(conn *p2p.Conn, what string) (int, error) {
	count, err := conn.ReceiveUint32()
	if err != nil {
		return 0, err
	}
	if count > maxTokens {
		return 0, errors.Errorf("too many %s: %d", what, count)
	}
	return count, nil
}

// WriteRequests writes the evaluator's OT requests and flushes the
// connection.
func WriteRequests(conn *p2p.Conn, requests []ot.Request) error {
	if err := writeHeader(conn, MsgRequests); err != nil {
		return err
	}
	if err := ot.SendRequests(conn, requests); err != nil {
		return err
	}
	return conn.Flush()
}

// ReadRequests reads the evaluator's OT requests.
func ReadRequests(conn *p2p.Conn) ([]ot.Request, error) {
	if err := readHeader(conn, MsgRequests); err != nil {
		return nil, err
	}
	return ot.ReceiveRequests(conn)
}

// WriteReplies writes the garbler's OT replies. It does not flush the
// connection since the bundle follows the replies.
func WriteReplies(conn *p2p.Conn, replies []ot.Reply) error {
	if err := writeHeader(conn, MsgReplies); err != nil {
		return err
	}
	return ot.SendReplies(conn, replies)
}

// ReadReplies reads the garbler's OT replies.
func ReadReplies(conn *p2p.Conn) ([]ot.Reply, error) {
	if err := readHeader(conn, MsgReplies); err != nil {
		return nil, err
	}
	return ot.ReceiveReplies(conn)
}

// WriteBundle writes the circuit bundle and flushes the connection.
func WriteBundle(conn *p2p.Conn, bundle *Bundle) error {
	if err := writeHeader(conn, MsgBundle); err != nil {
		return err
	}
	if err := conn.SendUint32(len(bundle.Tokens)); err != nil {
		return err
	}
	for _, token := range bundle.Tokens {
		if err := conn.SendString(token); err != nil {
			return err
		}
	}

	var names []string
	for name := range bundle.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := conn.SendUint32(len(names)); err != nil {
		return err
	}
	for _, name := range names {
		if err := conn.SendString(name); err != nil {
			return err
		}
		if err := conn.SendLabel(bundle.Inputs[name]); err != nil {
			return err
		}
	}

	if err := conn.SendUint32(len(bundle.Gates)); err != nil {
		return err
	}
	for _, gate := range bundle.Gates {
		for _, row := range gate.Rows {
			if err := conn.SendData(row.Key[:]); err != nil {
				return err
			}
			if err := conn.SendData(row.Data[:]); err != nil {
				return err
			}
		}
	}
	return conn.Flush()
}

// ReadBundle reads the circuit bundle. Gates with duplicate row keys
// are rejected with circuit.ErrDuplicateRow.
func ReadBundle(conn *p2p.Conn) (*Bundle, error) {
	if err := readHeader(conn, MsgBundle); err != nil {
		return nil, err
	}
	count, err := receiveCount(conn, "tokens")
	if err != nil {
		return nil, err
	}
	bundle := &Bundle{
		Inputs: make(map[string]ot.Label),
	}
	for i := 0; i < count; i++ {
		token, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		bundle.Tokens = append(bundle.Tokens, token)
	}

	count, err = receiveCount(conn, "inputs")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		name, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		label, err := conn.ReceiveLabel()
		if err != nil {
			return nil, err
		}
		if _, ok := bundle.Inputs[name]; ok {
			return nil, errors.Errorf("duplicate input %s", name)
		}
		bundle.Inputs[name] = label
	}

	count, err = receiveCount(conn, "gates")
	if err != nil {
		return nil, err
	}
	bundle.Gates = make([]circuit.GarbledGate, count)
	for i := range bundle.Gates {
		gate := &bundle.Gates[i]
		for j := range gate.Rows {
			if err := receiveFixed(conn, gate.Rows[j].Key[:]); err != nil {
				return nil, errors.Wrapf(err, "gate %d", i)
			}
			if err := receiveFixed(conn, gate.Rows[j].Data[:]); err != nil {
				return nil, errors.Wrapf(err, "gate %d", i)
			}
		}
		if err := gate.Verify(); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	return bundle, nil
}

func receiveFixed(conn *p2p.Conn, buf []byte) error {
	data, err := conn.ReceiveData()
	if err != nil {
		return err
	}
	if len(data) != len(buf) {
		return errors.Errorf("invalid field size %d, expected %d",
			len(data), len(buf))
	}
	copy(buf, data)
	return nil
}
