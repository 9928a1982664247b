//
// pipe.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.

package ot

import (
	"io"

	"github.com/pkg/errors"
)

var (
	_ IO = &Pipe{}
)

const maxPipeData = 64 * 1024

// Pipe implements the IO interface with in-memory io.Pipe.
type Pipe struct {
	r *io.PipeReader
	w *io.PipeWriter
}

// NewPipe creates a new in-memory pipe.
func NewPipe() (*Pipe, *Pipe) {
	ar, aw := io.Pipe()
	br, bw := io.Pipe()

	return &Pipe{
			r: ar,
			w: bw,
		}, &Pipe{
			r: br,
			w: aw,
		}
}

// SendData sends binary data.
func (p *Pipe) SendData(val []byte) error {
	if len(val) > maxPipeData {
		return errors.Errorf("pipe data too long: %d > %d",
			len(val), maxPipeData)
	}
	buf := make([]byte, 4+len(val))
	bo.PutUint32(buf, uint32(len(val)))
	copy(buf[4:], val)
	_, err := p.w.Write(buf)
	return err
}

// SendUint32 sends an uint32 value.
func (p *Pipe) SendUint32(val int) error {
	var buf [4]byte
	bo.PutUint32(buf[:], uint32(val))
	_, err := p.w.Write(buf[:])
	return err
}

// Flush flushed any pending data in the connection.
func (p *Pipe) Flush() error {
	return nil
}

// Close closes the pipe.
func (p *Pipe) Close() error {
	return p.w.Close()
}

// ReceiveData receives binary data.
func (p *Pipe) ReceiveData() ([]byte, error) {
	l, err := p.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if l > maxPipeData {
		return nil, errors.Errorf("pipe data too long: %d > %d",
			l, maxPipeData)
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(p.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReceiveUint32 receives an uint32 value.
func (p *Pipe) ReceiveUint32() (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(p.r, buf[:]); err != nil {
		return 0, err
	}
	return int(bo.Uint32(buf[:])), nil
}
