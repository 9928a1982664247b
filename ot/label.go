//
// label.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

var bo = binary.BigEndian

// LabelSize is the label length in bytes.
const LabelSize = 16

// Wire implements a wire with 0 and 1 labels.
type Wire struct {
	L0 Label
	L1 Label
}

// TerminalWire holds the publicly known output labels of the
// circuit's terminal gate. Anyone holding the resolved terminal label
// can map it to a boolean.
var TerminalWire = Wire{
	L0: Label{},
	L1: Label{
		D0: 0xffffffffffffffff,
		D1: 0xffffffffffffffff,
	},
}

func (w Wire) String() string {
	return fmt.Sprintf("%s/%s", w.L0, w.L1)
}

// Select returns the label for the bit value.
func (w Wire) Select(bit bool) Label {
	if bit {
		return w.L1
	}
	return w.L0
}

// Decode maps the label back to its bit value.
func (w Wire) Decode(l Label) (bool, error) {
	switch {
	case l.Equal(w.L0):
		return false, nil
	case l.Equal(w.L1):
		return true, nil
	default:
		return false, errors.Errorf("label %s does not belong to wire %s",
			l, w)
	}
}

// Label implements a 128 bit wire label.
type Label struct {
	D0 uint64
	D1 uint64
}

// LabelData contains label data as byte array.
type LabelData [LabelSize]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal tests if the labels are equal.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// NewLabel creates a new random label.
func NewLabel(rand io.Reader) (Label, error) {
	var buf LabelData
	var label Label

	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return label, errors.Wrap(err, "label entropy")
	}
	label.SetData(&buf)
	return label, nil
}

// NewWire creates a wire with two independent random labels.
func NewWire(rand io.Reader) (Wire, error) {
	l0, err := NewLabel(rand)
	if err != nil {
		return Wire{}, err
	}
	l1, err := NewLabel(rand)
	if err != nil {
		return Wire{}, err
	}
	return Wire{
		L0: l0,
		L1: l1,
	}, nil
}

// Xor xors the label with the argument label.
func (l *Label) Xor(o Label) {
	l.D0 ^= o.D0
	l.D1 ^= o.D1
}

// GetData gets the labels as label data.
func (l Label) GetData(buf *LabelData) {
	bo.PutUint64(buf[0:8], l.D0)
	bo.PutUint64(buf[8:16], l.D1)
}

// SetData sets the labels from label data.
func (l *Label) SetData(data *LabelData) {
	l.D0 = bo.Uint64((*data)[0:8])
	l.D1 = bo.Uint64((*data)[8:16])
}

// Bytes returns the label data as bytes.
func (l Label) Bytes(buf *LabelData) []byte {
	l.GetData(buf)
	return buf[:]
}

// SetBytes sets the label data from bytes. The data must be at least
// LabelSize bytes long.
func (l *Label) SetBytes(data []byte) error {
	if len(data) < LabelSize {
		return errors.Errorf("label data too short: %d < %d",
			len(data), LabelSize)
	}
	l.D0 = bo.Uint64(data[0:8])
	l.D1 = bo.Uint64(data[8:16])
	return nil
}

// LabelFromData creates a label from the data bytes.
func LabelFromData(data []byte) (Label, error) {
	var l Label
	err := l.SetBytes(data)
	return l, err
}
