//
// io.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.

package ot

import (
	"github.com/pkg/errors"
)

// MaxTransfers limits the number of OT instances in one message.
const MaxTransfers = 1 << 16

// IO defines an I/O interface to communicate between peers.
type IO interface {
	// SendData sends binary data.
	SendData(val []byte) error

	// SendUint32 sends an uint32 value.
	SendUint32(val int) error

	// Flush flushed any pending data in the connection.
	Flush() error

	// ReceiveData receives binary data.
	ReceiveData() ([]byte, error)

	// ReceiveUint32 receives an uint32 value.
	ReceiveUint32() (int, error)
}

// SendString sends a string value.
func SendString(io IO, str string) error {
	return io.SendData([]byte(str))
}

// ReceiveString receives a string value.
func ReceiveString(io IO) (string, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func receiveCount(io IO) (int, error) {
	count, err := io.ReceiveUint32()
	if err != nil {
		return 0, err
	}
	if count > MaxTransfers {
		return 0, errors.Errorf("too many OT transfers: %d > %d",
			count, MaxTransfers)
	}
	return count, nil
}

func receiveFixed(io IO, buf []byte) error {
	data, err := io.ReceiveData()
	if err != nil {
		return err
	}
	if len(data) != len(buf) {
		return errors.Errorf("invalid OT element size %d, expected %d",
			len(data), len(buf))
	}
	copy(buf, data)
	return nil
}

// SendRequests sends the OT requests. It does not flush the
// connection.
func SendRequests(io IO, requests []Request) error {
	if err := io.SendUint32(len(requests)); err != nil {
		return err
	}
	for _, req := range requests {
		for _, key := range req.Keys {
			if err := io.SendData(key[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReceiveRequests receives OT requests.
func ReceiveRequests(io IO) ([]Request, error) {
	count, err := receiveCount(io)
	if err != nil {
		return nil, err
	}
	result := make([]Request, count)
	for i := 0; i < count; i++ {
		for j := 0; j < 2; j++ {
			if err := receiveFixed(io, result[i].Keys[j][:]); err != nil {
				return nil, errors.Wrapf(err, "OT request %d", i)
			}
		}
	}
	return result, nil
}

// SendReplies sends the OT replies. It does not flush the connection.
func SendReplies(io IO, replies []Reply) error {
	if err := io.SendUint32(len(replies)); err != nil {
		return err
	}
	for _, reply := range replies {
		for _, ct := range reply.Ciphertexts {
			if err := io.SendData(ct[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReceiveReplies receives OT replies.
func ReceiveReplies(io IO) ([]Reply, error) {
	count, err := receiveCount(io)
	if err != nil {
		return nil, err
	}
	result := make([]Reply, count)
	for i := 0; i < count; i++ {
		for j := 0; j < 2; j++ {
			err := receiveFixed(io, result[i].Ciphertexts[j][:])
			if err != nil {
				return nil, errors.Wrapf(err, "OT reply %d", i)
			}
		}
	}
	return result, nil
}

// Send answers all requests with the wires' labels. The requests and
// wires are matched by index.
func (s *Sender) Send(requests []Request, wires []Wire) ([]Reply, error) {
	if len(requests) != len(wires) {
		return nil, errors.Errorf("OT request count mismatch: got %d, want %d",
			len(requests), len(wires))
	}
	replies := make([]Reply, len(requests))
	for i, req := range requests {
		reply, err := s.Reply(req, wires[i])
		if err != nil {
			return nil, errors.Wrapf(err, "OT request %d", i)
		}
		replies[i] = reply
	}
	return replies, nil
}
