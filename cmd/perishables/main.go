// Package main is the entry point for the perishables report tool.
//
// Usage:
//
//	perishables report [--config config.yaml] [--input Duomenys.txt] [--store Maxima --store Iki]
//	perishables version
package main

import (
	"fmt"
	"os"

	"perishables/internal/core/apperror"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperror.GetExitCode(err))
	}
}
