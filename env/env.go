//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the garbled circuit
// protocol.
package env

import (
	"crypto/rand"
	"io"
	"runtime"
)

// Config defines the global configuration shared by the garbler and
// evaluator. Config must not be modified after being passed to any
// module. It is safe for concurrent use as modules only read it.
type Config struct {
	// Rand is the entropy source for labels and OT. Defaults to
	// crypto/rand.Reader.
	Rand io.Reader

	// Workers is the number of goroutines garbling gates. Zero
	// selects runtime.NumCPU().
	Workers int

	// Verbose enables per-wire diagnostics.
	Verbose bool
}

// GetRandom returns the source of entropy for label generation, OT,
// and other cryptography operations.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetWorkers returns the number of worker goroutines to use.
func (config *Config) GetWorkers() int {
	if config != nil && config.Workers > 0 {
		return config.Workers
	}
	return runtime.NumCPU()
}
