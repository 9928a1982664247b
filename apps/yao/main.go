//
// main.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Command yao runs the garbler and the evaluator of a two-party
// garbled circuit computation.
package main

func main() {
	Execute()
}
