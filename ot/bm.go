//
// bm.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//
// Bellare-Micali OT over ristretto255.
//  - M. Bellare, S. Micali: Non-Interactive Oblivious Transfer and
//    Applications. CRYPTO '89.

package ot

import (
	"crypto/sha256"
	"crypto/sha512"
	"io"

	"github.com/gtank/ristretto255"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	relationDomain = "github.com/markkurossi/yao/ot relation v1"
	maskDomain     = "github.com/markkurossi/yao/ot mask v1"
)

// relation is the public point C. The request keys must sum to C and
// since nobody knows log_G(C), the receiver knows the secret key of
// at most one of them.
var relation = hashToElement([]byte(relationDomain))

func hashToElement(data []byte) *ristretto255.Element {
	digest := sha512.Sum512(data)
	return ristretto255.NewElement().FromUniformBytes(digest[:])
}

func randomScalar(rand io.Reader) (*ristretto255.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return nil, errors.Wrap(err, "OT entropy")
	}
	return ristretto255.NewScalar().FromUniformBytes(buf[:]), nil
}

func encode(e *ristretto255.Element) PublicKey {
	var pk PublicKey
	copy(pk[:], e.Encode(nil))
	return pk
}

func decode(pk PublicKey) (*ristretto255.Element, error) {
	if pk == (PublicKey{}) {
		return nil, errors.Wrap(ErrInvalidKeyPair, "identity key")
	}
	e := ristretto255.NewElement()
	if err := e.Decode(pk[:]); err != nil {
		return nil, errors.Wrapf(ErrInvalidKeyPair, "decode key: %v", err)
	}
	return e, nil
}

func mask(shared *ristretto255.Element, ephemeral PublicKey, idx int) (
	Label, error) {

	info := append([]byte(maskDomain), byte(idx))
	kdf := hkdf.New(sha256.New, shared.Encode(nil), ephemeral[:], info)

	var data LabelData
	if _, err := io.ReadFull(kdf, data[:]); err != nil {
		return Label{}, errors.Wrap(err, "OT mask")
	}
	var l Label
	l.SetData(&data)
	return l, nil
}

// Receiver implements the OT receiver (the evaluator).
type Receiver struct {
	rand io.Reader
}

// NewReceiver creates a new OT receiver.
func NewReceiver(rand io.Reader) *Receiver {
	return &Receiver{
		rand: rand,
	}
}

// ReceiverXfer holds the receiver state of one OT instance between
// the request and the reply.
type ReceiverXfer struct {
	bit     bool
	sk      *ristretto255.Scalar
	request Request
}

// NewTransfer creates a new OT transfer for the selection bit. It
// samples a fresh key pair (pk, sk) and sets the second key to C-pk.
func (r *Receiver) NewTransfer(bit bool) (*ReceiverXfer, error) {
	sk, err := randomScalar(r.rand)
	if err != nil {
		return nil, err
	}
	pk := ristretto255.NewElement().ScalarBaseMult(sk)
	other := ristretto255.NewElement().Subtract(relation, pk)

	xfer := &ReceiverXfer{
		bit: bit,
		sk:  sk,
	}
	if bit {
		xfer.request.Keys[0] = encode(other)
		xfer.request.Keys[1] = encode(pk)
	} else {
		xfer.request.Keys[0] = encode(pk)
		xfer.request.Keys[1] = encode(other)
	}
	return xfer, nil
}

// Bit returns the transfer's selection bit.
func (x *ReceiverXfer) Bit() bool {
	return x.bit
}

// Request returns the request to publish to the sender.
func (x *ReceiverXfer) Request() Request {
	return x.request
}

// Resolve decrypts the ciphertext at the selection bit index.
func (x *ReceiverXfer) Resolve(reply Reply) (Label, error) {
	var idx int
	if x.bit {
		idx = 1
	}
	ct := reply.Ciphertexts[idx]

	var ephemeral PublicKey
	copy(ephemeral[:], ct[:KeySize])

	R := ristretto255.NewElement()
	if err := R.Decode(ephemeral[:]); err != nil {
		return Label{}, errors.Wrapf(err, "OT reply %d", idx)
	}
	shared := ristretto255.NewElement().ScalarMult(x.sk, R)

	label, err := mask(shared, ephemeral, idx)
	if err != nil {
		return Label{}, err
	}
	var masked Label
	if err := masked.SetBytes(ct[KeySize:]); err != nil {
		return Label{}, err
	}
	label.Xor(masked)

	return label, nil
}

// Sender implements the OT sender (the garbler).
type Sender struct {
	rand io.Reader
}

// NewSender creates a new OT sender.
func NewSender(rand io.Reader) *Sender {
	return &Sender{
		rand: rand,
	}
}

// VerifyRequest checks that the request keys are valid group elements
// and that they satisfy the public relation K0+K1 = C.
func VerifyRequest(req Request) ([2]*ristretto255.Element, error) {
	var keys [2]*ristretto255.Element
	for i, pk := range req.Keys {
		e, err := decode(pk)
		if err != nil {
			return keys, err
		}
		keys[i] = e
	}
	sum := ristretto255.NewElement().Add(keys[0], keys[1])
	if sum.Equal(relation) != 1 {
		return keys, errors.Wrap(ErrInvalidKeyPair, "relation check failed")
	}
	return keys, nil
}

// Reply encrypts the wire's 0-label under Keys[0] and its 1-label
// under Keys[1].
func (s *Sender) Reply(req Request, wire Wire) (Reply, error) {
	var reply Reply

	keys, err := VerifyRequest(req)
	if err != nil {
		return reply, err
	}
	labels := [2]Label{wire.L0, wire.L1}

	for i, key := range keys {
		r, err := randomScalar(s.rand)
		if err != nil {
			return reply, err
		}
		ephemeral := encode(ristretto255.NewElement().ScalarBaseMult(r))
		shared := ristretto255.NewElement().ScalarMult(r, key)

		m, err := mask(shared, ephemeral, i)
		if err != nil {
			return reply, err
		}
		m.Xor(labels[i])

		var data LabelData
		m.GetData(&data)

		copy(reply.Ciphertexts[i][:KeySize], ephemeral[:])
		copy(reply.Ciphertexts[i][KeySize:], data[:])
	}
	return reply, nil
}
