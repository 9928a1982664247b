//
// garble.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"crypto/sha256"
	"io"
	"sort"
	"sync"

	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"github.com/pkg/errors"
	"golang.org/x/crypto/salsa20"
)

const nonceSize = 8

// RowKey indexes a garbled gate row. It is the hash of the
// concatenated input labels.
type RowKey [sha256.Size]byte

// Row is one garbled gate row: the output label encrypted under the
// row's input labels.
type Row struct {
	Key  RowKey
	Data ot.LabelData
}

// GarbledGate holds the four rows of a garbled gate sorted by row
// key.
type GarbledGate struct {
	Rows [4]Row
}

// Lookup returns the ciphertext for the row key.
func (g *GarbledGate) Lookup(key RowKey) (ot.LabelData, error) {
	var result ot.LabelData
	var found int

	for _, row := range g.Rows {
		if row.Key == key {
			result = row.Data
			found++
		}
	}
	switch found {
	case 0:
		return result, errors.Wrapf(ErrUnknownRow, "%x", key[:8])
	case 1:
		return result, nil
	default:
		return result, errors.Wrapf(ErrDuplicateRow, "%x", key[:8])
	}
}

// Verify checks that the gate's row keys are pairwise distinct.
func (g *GarbledGate) Verify() error {
	for i := 0; i < len(g.Rows); i++ {
		for j := i + 1; j < len(g.Rows); j++ {
			if g.Rows[i].Key == g.Rows[j].Key {
				return errors.Wrapf(ErrDuplicateRow, "rows %d and %d", i, j)
			}
		}
	}
	return nil
}

// rowKeys derives the cipher key, row key, and nonce for the input
// labels. The cipher key is the concatenated labels and the nonce is
// the truncated row key.
func rowKeys(left, right ot.Label) (key [32]byte, rk RowKey, nonce []byte) {
	var data ot.LabelData

	left.GetData(&data)
	copy(key[0:ot.LabelSize], data[:])
	right.GetData(&data)
	copy(key[ot.LabelSize:], data[:])

	rk = sha256.Sum256(key[:])
	nonce = rk[:nonceSize]
	return
}

func encrypt(left, right, out ot.Label) Row {
	key, rk, nonce := rowKeys(left, right)

	var plain ot.LabelData
	out.GetData(&plain)

	row := Row{
		Key: rk,
	}
	salsa20.XORKeyStream(row.Data[:], plain[:], nonce, &key)
	return row
}

func decrypt(g *GarbledGate, left, right ot.Label) (ot.Label, error) {
	key, rk, nonce := rowKeys(left, right)

	data, err := g.Lookup(rk)
	if err != nil {
		return ot.Label{}, err
	}
	var plain ot.LabelData
	salsa20.XORKeyStream(plain[:], data[:], nonce, &key)

	var result ot.Label
	result.SetData(&plain)
	return result, nil
}

// GarbleGate garbles a gate with the truth table. The rows are
// enumerated over the label indices of the input wires and then
// sorted by row key so the row order does not reveal the table.
func GarbleGate(table TruthTable, left, right, out ot.Wire) (
	GarbledGate, error) {

	var g GarbledGate

	for i := 0; i < 4; i++ {
		l := i&2 != 0
		r := i&1 != 0
		g.Rows[i] = encrypt(left.Select(l), right.Select(r),
			out.Select(table.Output(l, r)))
	}
	sort.Slice(g.Rows[:], func(i, j int) bool {
		return bytes.Compare(g.Rows[i].Key[:], g.Rows[j].Key[:]) < 0
	})
	if err := g.Verify(); err != nil {
		return g, err
	}
	return g, nil
}

// NewLabels creates the label pairs for all program wires. The
// terminal gate's output wire gets the public ot.TerminalWire
// sentinels.
func (p *Program) NewLabels(rand io.Reader) ([]ot.Wire, error) {
	wires := make([]ot.Wire, p.NumWires)
	terminal := p.Terminal().Output

	for i := range wires {
		if Wire(i) == terminal {
			wires[i] = ot.TerminalWire
			continue
		}
		w, err := ot.NewWire(rand)
		if err != nil {
			return nil, err
		}
		wires[i] = w
	}
	return wires, nil
}

// Garbled contains the garbler's wire labels and the garbled gates
// indexed by gate ID.
type Garbled struct {
	Wires []ot.Wire
	Gates []GarbledGate
}

// Garble assigns labels to the program wires and garbles all gates.
// Gates are garbled in parallel by config.GetWorkers() goroutines.
func (p *Program) Garble(config *env.Config) (*Garbled, error) {
	wires, err := p.NewLabels(config.GetRandom())
	if err != nil {
		return nil, err
	}
	gates, err := p.GarbleGates(wires, config.GetWorkers())
	if err != nil {
		return nil, err
	}
	return &Garbled{
		Wires: wires,
		Gates: gates,
	}, nil
}

// GarbleGates garbles the program gates with the wire labels.
func (p *Program) GarbleGates(wires []ot.Wire, workers int) (
	[]GarbledGate, error) {

	if len(wires) != p.NumWires {
		return nil, errors.Errorf("got %d wires, expected %d",
			len(wires), p.NumWires)
	}
	if workers < 1 {
		workers = 1
	}
	result := make([]GarbledGate, len(p.Gates))
	errs := make([]error, len(p.Gates))

	var wg sync.WaitGroup
	ch := make(chan int)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ch {
				g := p.Gates[id]
				result[id], errs[id] = GarbleGate(g.Table, wires[g.Left],
					wires[g.Right], wires[g.Output])
			}
		}()
	}
	for id := range p.Gates {
		ch <- id
	}
	close(ch)
	wg.Wait()

	for id, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "gate %s", p.Gates[id].Name())
		}
	}
	return result, nil
}
