// Package main is the entry point for the churn CLI.
package main

import (
	"os"

	"github.com/f3rmion/churn/cmd/churn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
