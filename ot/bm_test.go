//
// bm_test.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"crypto/rand"
	"testing"

	"github.com/gtank/ristretto255"
	"github.com/pkg/errors"
)

func transfer(t *testing.T, wire Wire, bit bool) (*ReceiverXfer, Reply) {
	t.Helper()

	receiver := NewReceiver(rand.Reader)
	sender := NewSender(rand.Reader)

	xfer, err := receiver.NewTransfer(bit)
	if err != nil {
		t.Fatalf("NewTransfer: %v", err)
	}
	reply, err := sender.Reply(xfer.Request(), wire)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	return xfer, reply
}

func TestBM(t *testing.T) {
	for i := 0; i < 64; i++ {
		wire, err := NewWire(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		for _, bit := range []bool{false, true} {
			xfer, reply := transfer(t, wire, bit)
			label, err := xfer.Resolve(reply)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !label.Equal(wire.Select(bit)) {
				t.Fatalf("bit %v: got %s, expected %s",
					bit, label, wire.Select(bit))
			}
			if label.Equal(wire.Select(!bit)) {
				t.Fatalf("bit %v: resolved the unselected label", bit)
			}
		}
	}
}

func TestBMUnselected(t *testing.T) {
	wire, err := NewWire(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	for _, bit := range []bool{false, true} {
		xfer, reply := transfer(t, wire, bit)

		// Decrypting the other ciphertext with the receiver's only
		// secret key must not produce the other label.
		cheat := &ReceiverXfer{
			bit: !bit,
			sk:  xfer.sk,
		}
		label, err := cheat.Resolve(reply)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if label.Equal(wire.L0) || label.Equal(wire.L1) {
			t.Fatalf("bit %v: unselected ciphertext decrypted", bit)
		}
	}
}

func TestBMRequestKeys(t *testing.T) {
	receiver := NewReceiver(rand.Reader)
	for _, bit := range []bool{false, true} {
		xfer, err := receiver.NewTransfer(bit)
		if err != nil {
			t.Fatal(err)
		}
		req := xfer.Request()
		if req.Keys[0] == req.Keys[1] {
			t.Fatalf("request keys are equal")
		}
		var idx int
		if bit {
			idx = 1
		}
		pk := encode(ristretto255.NewElement().ScalarBaseMult(xfer.sk))
		if req.Keys[idx] != pk {
			t.Errorf("bit %v: real key not at index %d", bit, idx)
		}
		if _, err := VerifyRequest(req); err != nil {
			t.Errorf("VerifyRequest: %v", err)
		}
	}
}

func TestBMInvalidKeyPair(t *testing.T) {
	receiver := NewReceiver(rand.Reader)
	sender := NewSender(rand.Reader)
	wire, err := NewWire(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	x0, err := receiver.NewTransfer(false)
	if err != nil {
		t.Fatal(err)
	}
	x1, err := receiver.NewTransfer(true)
	if err != nil {
		t.Fatal(err)
	}

	// Two real keys from independent transfers.
	mixed := x0.Request()
	mixed.Keys[1] = x1.Request().Keys[1]

	// Perturbed encoding.
	perturbed := x0.Request()
	perturbed.Keys[1][0]++

	// Both keys equal.
	same := x0.Request()
	same.Keys[1] = same.Keys[0]

	// Identity key.
	identity := x0.Request()
	identity.Keys[0] = PublicKey{}

	tests := map[string]Request{
		"mixed":     mixed,
		"perturbed": perturbed,
		"same":      same,
		"identity":  identity,
	}
	for name, req := range tests {
		_, err := sender.Reply(req, wire)
		if !errors.Is(err, ErrInvalidKeyPair) {
			t.Errorf("%s: expected ErrInvalidKeyPair, got %v", name, err)
		}
	}
}

func TestSenderSendMismatch(t *testing.T) {
	sender := NewSender(rand.Reader)
	_, err := sender.Send(make([]Request, 2), make([]Wire, 1))
	if err == nil {
		t.Fatalf("Send accepted mismatching counts")
	}
}
