//
// definition_test.go
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
)

const equality = `name: equality
gates:
  eq: "1001"
function: [a1, b1, eq, a0, b0, eq, and]
garbler: [a1, a0]
evaluator: [b1, b0]
`

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition(strings.NewReader(equality))
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if def.Name != "equality" {
		t.Errorf("name %q", def.Name)
	}
	prog, err := def.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for a := uint64(0); a < 4; a++ {
		for b := uint64(0); b < 4; b++ {
			inputs, err := Bits(def.Garbler, a)
			if err != nil {
				t.Fatal(err)
			}
			eb, err := Bits(def.Evaluator, b)
			if err != nil {
				t.Fatal(err)
			}
			for k, v := range eb {
				inputs[k] = v
			}
			result, err := prog.Compute(inputs)
			if err != nil {
				t.Fatal(err)
			}
			if result != (a == b) {
				t.Errorf("%d == %d: got %v", a, b, result)
			}
		}
	}
}

func TestDefinitionMarshal(t *testing.T) {
	var buf bytes.Buffer
	if err := Millionaire.Marshal(&buf); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	def, err := ParseDefinition(&buf)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if !def.Equal(Millionaire) {
		t.Errorf("definition changed: %+v", def)
	}
}

func TestDefinitionInvalid(t *testing.T) {
	tests := []string{
		// Unknown field.
		"function: [a, b, and]\ngarbler: [a]\nevaluator: [b]\nfoo: 1\n",
		// Input without owner.
		"function: [a, b, and]\ngarbler: [a]\nevaluator: []\n",
		// Input owned by both parties.
		"function: [a, b, and]\ngarbler: [a, b]\nevaluator: [b]\n",
		// Unused input.
		"function: [a, b, and]\ngarbler: [a, c]\nevaluator: [b]\n",
		// Malformed function.
		"function: [a, b]\ngarbler: [a]\nevaluator: [b]\n",
		// Invalid gate.
		"gates: {x: \"12\"}\nfunction: [a, b, x]\ngarbler: [a]\nevaluator: [b]\n",
	}
	for _, test := range tests {
		if _, err := ParseDefinition(strings.NewReader(test)); err == nil {
			t.Errorf("ParseDefinition accepted:\n%s", test)
		}
	}
}

func TestBits(t *testing.T) {
	bits, err := Bits([]string{"a1", "a0"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if bits["a1"] || !bits["a0"] {
		t.Errorf("Bits(1) = %v", bits)
	}
	bits, err = Bits([]string{"b1", "b0"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bits["b1"] || bits["b0"] {
		t.Errorf("Bits(2) = %v", bits)
	}
	if _, err := Bits([]string{"a1", "a0"}, 4); err == nil {
		t.Errorf("Bits accepted a value too large")
	}
}
