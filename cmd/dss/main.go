// Package main is the house rent DSS command line
//
// Usage:
//
//	go run ./cmd/dss serve
//	go run ./cmd/dss seed data/seed.json
//	go run ./cmd/dss compare --ids 1,2,3 --amenities 1,4
package main

import (
	"os"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/cmd/dss/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
