//
// alphabet.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"sort"

	"github.com/pkg/errors"
)

// TruthTable specifies a two-input gate function as four '0'/'1'
// characters, giving the output for the inputs (left,right) in order
// 00, 01, 10, 11.
type TruthTable string

// ParseTruthTable parses and validates a truth table string.
func ParseTruthTable(s string) (TruthTable, error) {
	if len(s) != 4 {
		return "", errors.Wrapf(ErrInvalidTruthTable, "%q: length %d",
			s, len(s))
	}
	for _, ch := range s {
		if ch != '0' && ch != '1' {
			return "", errors.Wrapf(ErrInvalidTruthTable,
				"%q: invalid character %q", s, ch)
		}
	}
	return TruthTable(s), nil
}

// Output returns the table's output bit for the input bits.
func (t TruthTable) Output(left, right bool) bool {
	var idx int
	if left {
		idx |= 2
	}
	if right {
		idx |= 1
	}
	return t[idx] == '1'
}

// Alphabet maps operator symbols to their truth tables.
type Alphabet map[string]TruthTable

// DefaultAlphabet defines the built-in gate operators.
var DefaultAlphabet = Alphabet{
	">":    "0010",
	"==":   "1001",
	">=":   "1011",
	"and":  "0001",
	"or":   "0111",
	"xor":  "0110",
	"!=":   "0110",
	"<":    "0100",
	"<=":   "1101",
	"nand": "1110",
	"nor":  "1000",
}

// Lookup returns the truth table of the operator symbol.
func (a Alphabet) Lookup(symbol string) (TruthTable, bool) {
	t, ok := a[symbol]
	return t, ok
}

// Extend returns a new alphabet with the gates added to a. The gates
// override existing operators with the same symbol.
func (a Alphabet) Extend(gates map[string]string) (Alphabet, error) {
	result := make(Alphabet, len(a)+len(gates))
	for k, v := range a {
		result[k] = v
	}
	for symbol, table := range gates {
		if len(symbol) == 0 {
			return nil, errors.New("empty operator symbol")
		}
		t, err := ParseTruthTable(table)
		if err != nil {
			return nil, errors.Wrapf(err, "operator %s", symbol)
		}
		result[symbol] = t
	}
	return result, nil
}

// Symbols returns the alphabet's operator symbols in sorted order.
func (a Alphabet) Symbols() []string {
	var result []string
	for k := range a {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
