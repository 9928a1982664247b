//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"fmt"
	"io"

	"github.com/markkurossi/yao/circuit"
)

// Bit returns the result bit as an integer value.
func Bit(result bool) int {
	if result {
		return 1
	}
	return 0
}

// Describe returns a human readable interpretation of the circuit
// result. The comparison circuit is recognized by its function and
// inputs regardless of its name. Other definitions are described by
// their result bit.
func Describe(def *circuit.Definition, result bool) string {
	if def.Equal(circuit.Millionaire) {
		if result {
			return "Garbler's value is at least as large as Evaluator's"
		}
		return "Evaluator's value is larger than Garbler's"
	}
	return fmt.Sprintf("%s = %d", def.Name, Bit(result))
}

// PrintResult prints the result bit and its interpretation.
func PrintResult(out io.Writer, def *circuit.Definition, result bool) {
	fmt.Fprintf(out, "Result: %d\n", Bit(result))
	fmt.Fprintf(out, "%s\n", Describe(def, result))
}
