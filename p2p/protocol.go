//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package p2p implements the message transport between the garbler
// and the evaluator.
package p2p

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"

	"github.com/markkurossi/yao/ot"
	"github.com/pkg/errors"
)

var (
	_  ot.IO = &Conn{}
	bo       = binary.BigEndian
)

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 1024 * 1024
)

// Conn implements a protocol connection.
type Conn struct {
	conn      io.ReadWriter
	WriteBuf  []byte
	WritePos  int
	ReadBuf   []byte
	ReadStart int
	ReadEnd   int
	Stats     IOStats

	fromWriter chan []byte
	toWriter   chan []byte

	m         sync.Mutex
	writerErr error
}

// IOStats implements I/O statistics.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a new I/O statistics object.
func NewIOStats() IOStats {
	return IOStats{
		Sent:    new(atomic.Uint64),
		Recvd:   new(atomic.Uint64),
		Flushed: new(atomic.Uint64),
	}
}

// Add adds the argument stats to this IOStats and returns the sum.
func (stats IOStats) Add(o IOStats) IOStats {
	result := NewIOStats()
	result.Sent.Store(stats.Sent.Load() + o.Sent.Load())
	result.Recvd.Store(stats.Recvd.Load() + o.Recvd.Load())
	result.Flushed.Store(stats.Flushed.Load() + o.Flushed.Load())
	return result
}

// Sum returns sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return stats.Sent.Load() + stats.Recvd.Load()
}

// NewConn creates a new connection around the argument connection.
func NewConn(conn io.ReadWriter) *Conn {
	c := &Conn{
		conn:       conn,
		ReadBuf:    make([]byte, readBufSize),
		fromWriter: make(chan []byte, numBuffers),
		toWriter:   make(chan []byte, numBuffers),
		Stats:      NewIOStats(),
	}

	go c.writer()

	c.WriteBuf = <-c.fromWriter

	return c
}

func (c *Conn) writer() {
	for i := 0; i < numBuffers; i++ {
		c.fromWriter <- make([]byte, writeBufSize)
	}

	for buf := range c.toWriter {
		if c.err() == nil {
			_, err := c.conn.Write(buf)
			if err != nil {
				c.m.Lock()
				c.writerErr = err
				c.m.Unlock()
			}
		}
		c.fromWriter <- buf[0:cap(buf)]
	}
	close(c.fromWriter)
}

func (c *Conn) err() error {
	c.m.Lock()
	defer c.m.Unlock()
	return c.writerErr
}

// Flush flushed any pending data in the connection.
func (c *Conn) Flush() error {
	if c.WritePos > 0 {
		c.Stats.Sent.Add(uint64(c.WritePos))
		c.toWriter <- c.WriteBuf[0:c.WritePos]

		next := <-c.fromWriter
		if err := c.err(); err != nil {
			return err
		}

		c.WriteBuf = next
		c.WritePos = 0
		c.Stats.Flushed.Add(1)
	}
	return nil
}

// Fill fills the input buffer from the connection. Any unused data in
// the buffer is moved to the beginning of the buffer.
func (c *Conn) Fill(n int) error {
	if n > len(c.ReadBuf) {
		return errors.Errorf("read too large: %d > %d", n, len(c.ReadBuf))
	}
	if c.ReadStart < c.ReadEnd {
		copy(c.ReadBuf[0:], c.ReadBuf[c.ReadStart:c.ReadEnd])
		c.ReadEnd -= c.ReadStart
		c.ReadStart = 0
	} else {
		c.ReadStart = 0
		c.ReadEnd = 0
	}
	for c.ReadStart+n > c.ReadEnd {
		got, err := c.conn.Read(c.ReadBuf[c.ReadEnd:])
		c.Stats.Recvd.Add(uint64(got))
		c.ReadEnd += got
		if err != nil {
			if c.ReadStart+n <= c.ReadEnd {
				break
			}
			if err == io.EOF && c.ReadEnd > 0 {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// Close flushes any pending data and closes the connection.
func (c *Conn) Close() error {
	c.Flush()

	// Wait that the writer completes.
	close(c.toWriter)
	for range c.fromWriter {
	}
	err := c.err()

	closer, ok := c.conn.(io.Closer)
	if ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// SendByte sends a byte value.
func (c *Conn) SendByte(val byte) error {
	if c.WritePos+1 > len(c.WriteBuf) {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	c.WriteBuf[c.WritePos] = val
	c.WritePos++
	return nil
}

// SendUint32 sends an uint32 value.
func (c *Conn) SendUint32(val int) error {
	if c.WritePos+4 > len(c.WriteBuf) {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	bo.PutUint32(c.WriteBuf[c.WritePos:], uint32(val))
	c.WritePos += 4
	return nil
}

// SendData sends binary data.
func (c *Conn) SendData(val []byte) error {
	if 4+len(val) > readBufSize {
		return errors.Errorf("data too large: %d", len(val))
	}
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	for len(val) > 0 {
		if c.WritePos == len(c.WriteBuf) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := copy(c.WriteBuf[c.WritePos:], val)
		c.WritePos += n
		val = val[n:]
	}
	return nil
}

// SendString sends a string value.
func (c *Conn) SendString(val string) error {
	return c.SendData([]byte(val))
}

// SendLabel sends an OT label.
func (c *Conn) SendLabel(val ot.Label) error {
	var data ot.LabelData
	bytes := val.Bytes(&data)
	if c.WritePos+len(bytes) > len(c.WriteBuf) {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	copy(c.WriteBuf[c.WritePos:], bytes)
	c.WritePos += len(bytes)

	return nil
}

// ReceiveByte receives a byte value.
func (c *Conn) ReceiveByte() (byte, error) {
	if c.ReadStart+1 > c.ReadEnd {
		if err := c.Fill(1); err != nil {
			return 0, err
		}
	}
	val := c.ReadBuf[c.ReadStart]
	c.ReadStart++
	return val, nil
}

// ReceiveUint32 receives an uint32 value.
func (c *Conn) ReceiveUint32() (int, error) {
	if c.ReadStart+4 > c.ReadEnd {
		if err := c.Fill(4); err != nil {
			return 0, err
		}
	}
	val := bo.Uint32(c.ReadBuf[c.ReadStart:])
	c.ReadStart += 4

	return int(val), nil
}

// ReceiveData receives binary data.
func (c *Conn) ReceiveData() ([]byte, error) {
	len, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if c.ReadStart+len > c.ReadEnd {
		if err := c.Fill(len); err != nil {
			return nil, err
		}
	}

	result := make([]byte, len)
	copy(result, c.ReadBuf[c.ReadStart:c.ReadStart+len])
	c.ReadStart += len

	return result, nil
}

// ReceiveString receives a string value.
func (c *Conn) ReceiveString() (string, error) {
	data, err := c.ReceiveData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReceiveLabel receives an OT label.
func (c *Conn) ReceiveLabel() (ot.Label, error) {
	var data ot.LabelData
	if c.ReadStart+len(data) > c.ReadEnd {
		if err := c.Fill(len(data)); err != nil {
			return ot.Label{}, err
		}
	}
	copy(data[:], c.ReadBuf[c.ReadStart:c.ReadStart+len(data)])
	c.ReadStart += len(data)

	var l ot.Label
	l.SetData(&data)
	return l, nil
}
