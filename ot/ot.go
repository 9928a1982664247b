//
// ot.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.

// Package ot implements the 1-out-of-2 oblivious transfer used to
// deliver the evaluator's input labels. The receiver publishes a
// Request with two public keys, the sender answers with a Reply
// holding one ciphertext per key, and the receiver resolves the label
// matching its selection bit. The sender never learns the bit and the
// receiver can decrypt only one of the ciphertexts.
package ot

import (
	"github.com/pkg/errors"
)

// ErrInvalidKeyPair is returned when an OT request's public keys do
// not satisfy the public relation. The run must halt: retrying with
// the same key pair would expose the selection bit again.
var ErrInvalidKeyPair = errors.New("invalid OT key pair")

const (
	// KeySize is the size of an encoded OT public key.
	KeySize = 32

	// CiphertextSize is the size of one OT reply ciphertext: the
	// ephemeral public value followed by the masked label.
	CiphertextSize = KeySize + LabelSize
)

// PublicKey is an encoded OT public key.
type PublicKey [KeySize]byte

// Ciphertext is an encrypted label.
type Ciphertext [CiphertextSize]byte

// Request is the receiver's OT message for one wire. The key whose
// secret the receiver holds is at the index of its selection bit.
type Request struct {
	Keys [2]PublicKey
}

// Reply is the sender's OT message for one wire. Ciphertexts[i]
// encrypts the wire's i-label under Request.Keys[i].
type Reply struct {
	Ciphertexts [2]Ciphertext
}
