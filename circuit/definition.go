//
// definition.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"io"
	"os"
	"reflect"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Definition describes a two-party circuit: the postfix function, any
// custom gate operators, and the input wires of each party listed
// most significant bit first.
type Definition struct {
	Name      string            `yaml:"name"`
	Gates     map[string]string `yaml:"gates,omitempty"`
	Function  []string          `yaml:"function"`
	Garbler   []string          `yaml:"garbler"`
	Evaluator []string          `yaml:"evaluator"`
}

// Millionaire compares two 2-bit values. The result is 1 if the
// garbler's value a is at least as large as the evaluator's value b.
var Millionaire = &Definition{
	Name: "millionaire",
	Function: []string{
		"a1", "b1", ">", "a1", "b1", "==", "a0", "b0", ">=", "and", "or",
	},
	Garbler:   []string{"a1", "a0"},
	Evaluator: []string{"b1", "b0"},
}

// ParseDefinition parses a YAML circuit definition.
func ParseDefinition(in io.Reader) (*Definition, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	def := new(Definition)
	if err := yaml.UnmarshalStrict(data, def); err != nil {
		return nil, errors.Wrap(err, "circuit definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadDefinition loads a YAML circuit definition from the file.
func LoadDefinition(file string) (*Definition, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := ParseDefinition(f)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return def, nil
}

// Marshal writes the definition as YAML.
func (def *Definition) Marshal(out io.Writer) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// Equal tests if the definitions describe the same circuit.
func (def *Definition) Equal(o *Definition) bool {
	return reflect.DeepEqual(def.Function, o.Function) &&
		reflect.DeepEqual(def.Garbler, o.Garbler) &&
		reflect.DeepEqual(def.Evaluator, o.Evaluator)
}

// Alphabet returns the default alphabet extended with the
// definition's custom gates.
func (def *Definition) Alphabet() (Alphabet, error) {
	return DefaultAlphabet.Extend(def.Gates)
}

// Compile compiles the definition's function.
func (def *Definition) Compile() (*Program, error) {
	alphabet, err := def.Alphabet()
	if err != nil {
		return nil, err
	}
	return Compile(def.Function, alphabet)
}

// Validate compiles the function and checks that every program input
// is owned by exactly one party.
func (def *Definition) Validate() error {
	prog, err := def.Compile()
	if err != nil {
		return err
	}
	owner := make(map[string]string)
	for _, p := range []struct {
		party string
		names []string
	}{
		{"garbler", def.Garbler},
		{"evaluator", def.Evaluator},
	} {
		for _, name := range p.names {
			if o, ok := owner[name]; ok {
				return errors.Errorf("input %s: owned by %s and %s",
					name, o, p.party)
			}
			if _, ok := prog.Input(name); !ok {
				return errors.Errorf("%s input %s not used by the function",
					p.party, name)
			}
			owner[name] = p.party
		}
	}
	for _, name := range prog.Inputs {
		if _, ok := owner[name]; !ok {
			return errors.Errorf("input %s has no owner", name)
		}
	}
	return nil
}

// Bits splits the value into the named input bits. The names are
// listed most significant bit first.
func Bits(names []string, value uint64) (map[string]bool, error) {
	if len(names) < 64 && value>>uint(len(names)) != 0 {
		return nil, errors.Errorf("input %d does not fit in %d bits",
			value, len(names))
	}
	result := make(map[string]bool)
	for i, name := range names {
		shift := uint(len(names) - 1 - i)
		result[name] = (value>>shift)&1 == 1
	}
	return result, nil
}
