//
// compiler_test.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCompile(t *testing.T) {
	prog, err := Compile(Millionaire.Function, DefaultAlphabet)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(prog.Gates) != 5 {
		t.Fatalf("got %d gates, expected 5", len(prog.Gates))
	}
	if len(prog.Inputs) != 4 {
		t.Fatalf("got %d inputs, expected 4", len(prog.Inputs))
	}
	if prog.NumWires != 9 {
		t.Errorf("got %d wires, expected 9", prog.NumWires)
	}
	if len(prog.Steps) != len(Millionaire.Function) {
		t.Errorf("got %d steps, expected %d", len(prog.Steps),
			len(Millionaire.Function))
	}

	positions := []int{2, 5, 8, 9, 10}
	for i, g := range prog.Gates {
		if g.Position != positions[i] {
			t.Errorf("gate %d: position %d, expected %d",
				i, g.Position, positions[i])
		}
		if g.Terminal != (i == len(prog.Gates)-1) {
			t.Errorf("gate %d: terminal=%v", i, g.Terminal)
		}
	}

	a1, _ := prog.Input("a1")
	b1, _ := prog.Input("b1")
	gt := prog.Gates[0]
	if gt.Left != a1 || gt.Right != b1 {
		t.Errorf("gate >: operands %v %v, expected %v %v",
			gt.Left, gt.Right, a1, b1)
	}
	eq := prog.Gates[1]
	if eq.Left != a1 || eq.Right != b1 {
		t.Errorf("a1 and b1 fan-out must reuse the input wires")
	}
	and := prog.Gates[3]
	if and.Left != prog.Gates[1].Output || and.Right != prog.Gates[2].Output {
		t.Errorf("and: operands %v %v", and.Left, and.Right)
	}
	if got := gt.Name(); got != "0010_2" {
		t.Errorf("gate name %q, expected 0010_2", got)
	}
}

func TestCompileSameTable(t *testing.T) {
	// != and xor share a truth table but must get separate gates.
	prog, err := Compile([]string{"a", "b", "!=", "a", "b", "xor", "and"},
		DefaultAlphabet)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.Gates[0].Name() == prog.Gates[1].Name() {
		t.Errorf("gates share name %s", prog.Gates[0].Name())
	}
	if prog.Gates[0].Output == prog.Gates[1].Output {
		t.Errorf("gates share output wire")
	}
}

func TestCompileMalformed(t *testing.T) {
	tests := [][]string{
		nil,
		{"a"},
		{"a", "b"},
		{"and"},
		{"a", "and"},
		{"a", "b", "c", "and"},
		{"a", "b", "and", "c"},
		{"a", "b", "and", "and"},
		{"a", "", "and"},
	}
	for _, test := range tests {
		_, err := Compile(test, DefaultAlphabet)
		if !errors.Is(err, ErrMalformedCircuit) {
			t.Errorf("%q: expected ErrMalformedCircuit, got %v", test, err)
		}
	}
}

func TestCompute(t *testing.T) {
	prog, err := Millionaire.Compile()
	if err != nil {
		t.Fatal(err)
	}
	for a := uint64(0); a < 4; a++ {
		for b := uint64(0); b < 4; b++ {
			inputs := bits(t, a, b)
			result, err := prog.Compute(inputs)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if result != (a >= b) {
				t.Errorf("%d >= %d: got %v", a, b, result)
			}
		}
	}
	if _, err := prog.Compute(map[string]bool{"a1": true}); err == nil {
		t.Errorf("Compute accepted missing inputs")
	}
}

func TestDump(t *testing.T) {
	prog, err := Millionaire.Compile()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	prog.Dump(&buf)
	out := buf.String()
	for _, s := range []string{"0010_2", "0111_10", "terminal"} {
		if !strings.Contains(out, s) {
			t.Errorf("Dump output does not contain %q:\n%s", s, out)
		}
	}
}

func TestTruthTable(t *testing.T) {
	for _, s := range []string{"", "001", "00100", "00x0"} {
		_, err := ParseTruthTable(s)
		if !errors.Is(err, ErrInvalidTruthTable) {
			t.Errorf("%q: expected ErrInvalidTruthTable, got %v", s, err)
		}
	}
	tt, err := ParseTruthTable("0010")
	if err != nil {
		t.Fatal(err)
	}
	expected := []bool{false, false, true, false}
	for i, e := range expected {
		if tt.Output(i&2 != 0, i&1 != 0) != e {
			t.Errorf("Output(%02b) != %v", i, e)
		}
	}

	alphabet, err := DefaultAlphabet.Extend(map[string]string{
		"imp": "1101",
	})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if _, ok := alphabet.Lookup("imp"); !ok {
		t.Errorf("extended alphabet does not have imp")
	}
	if _, ok := DefaultAlphabet.Lookup("imp"); ok {
		t.Errorf("Extend modified the default alphabet")
	}
	if _, err := DefaultAlphabet.Extend(map[string]string{"x": "2"}); err == nil {
		t.Errorf("Extend accepted an invalid table")
	}
}

func bits(t *testing.T, a, b uint64) map[string]bool {
	t.Helper()

	ga, err := Bits(Millionaire.Garbler, a)
	if err != nil {
		t.Fatal(err)
	}
	eb, err := Bits(Millionaire.Evaluator, b)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range eb {
		ga[k] = v
	}
	return ga
}
