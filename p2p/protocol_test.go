//
// protocol_test.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/markkurossi/yao/ot"
)

var tests = []interface{}{
	byte(42),
	uint32(44),
	"Hello, world!",
	ot.Label{D0: 1, D1: 2},
	make([]byte, 1024),
	bytes.Repeat([]byte{0x5a}, 200*1024),
	make([]byte, 1000*1024),
}

func writer(t *testing.T, c *Conn, done chan<- error) {
	for _, test := range tests {
		var err error
		switch d := test.(type) {
		case byte:
			err = c.SendByte(d)
		case uint32:
			err = c.SendUint32(int(d))
		case string:
			err = c.SendString(d)
		case ot.Label:
			err = c.SendLabel(d)
		case []byte:
			err = c.SendData(d)
		default:
			t.Errorf("writer: invalid data: %v(%T)", test, test)
		}
		if err != nil {
			done <- err
			return
		}
	}
	done <- c.Flush()
}

func TestProtocol(t *testing.T) {
	cw, c := Pipe()
	done := make(chan error, 1)

	go writer(t, cw, done)

	for _, test := range tests {
		switch d := test.(type) {
		case byte:
			v, err := c.ReceiveByte()
			if err != nil {
				t.Fatalf("ReceiveByte: %v", err)
			}
			if v != d {
				t.Errorf("ReceiveByte: got %v, expected %v", v, d)
			}

		case uint32:
			v, err := c.ReceiveUint32()
			if err != nil {
				t.Fatalf("ReceiveUint32: %v", err)
			}
			if v != int(d) {
				t.Errorf("ReceiveUint32: got %v, expected %v", v, d)
			}

		case string:
			v, err := c.ReceiveString()
			if err != nil {
				t.Fatalf("ReceiveString: %v", err)
			}
			if v != d {
				t.Errorf("ReceiveString: got %v, expected %v", v, d)
			}

		case ot.Label:
			v, err := c.ReceiveLabel()
			if err != nil {
				t.Fatalf("ReceiveLabel: %v", err)
			}
			if !v.Equal(d) {
				t.Errorf("ReceiveLabel: got %v, expected %v", v, d)
			}

		case []byte:
			v, err := c.ReceiveData()
			if err != nil {
				t.Fatalf("ReceiveData: %v", err)
			}
			if !bytes.Equal(v, d) {
				t.Errorf("ReceiveData: [%v]byte mismatch", len(d))
			}
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("writer: %v", err)
	}
	if cw.Stats.Sent.Load() != c.Stats.Recvd.Load() {
		t.Errorf("sent %d bytes, received %d",
			cw.Stats.Sent.Load(), c.Stats.Recvd.Load())
	}
	sum := cw.Stats.Add(c.Stats)
	if sum.Sum() != 2*cw.Stats.Sent.Load() {
		t.Errorf("IOStats.Add: got %d", sum.Sum())
	}
}

func TestSendDataTooLarge(t *testing.T) {
	c, _ := Pipe()
	if err := c.SendData(make([]byte, readBufSize)); err == nil {
		t.Errorf("SendData accepted %d bytes", readBufSize)
	}
}

type failingWriter struct {
	closed bool
}

var errWrite = errors.New("write failed")

func (w *failingWriter) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func (w *failingWriter) Close() error {
	w.closed = true
	return nil
}

func TestWriterError(t *testing.T) {
	w := new(failingWriter)
	c := NewConn(w)

	for i := 0; i < 4; i++ {
		if err := c.SendData(make([]byte, writeBufSize)); err != nil {
			if !errors.Is(err, errWrite) {
				t.Fatalf("SendData: unexpected error %v", err)
			}
			break
		}
	}
	if err := c.Close(); !errors.Is(err, errWrite) {
		t.Errorf("Close: got %v, expected %v", err, errWrite)
	}
	if !w.closed {
		t.Errorf("Close did not close the connection after write error")
	}
}
