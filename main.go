// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Courseplanner.
//
// Usage:
//
//	go run . [flags]
//	./courseplanner [flags]
//
// This launches the Courseplanner CLI. See --help for options.
package main

import (
	"os"

	"github.com/abcu/courseplanner/internal/logging"
	"github.com/abcu/courseplanner/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("courseplanner: %v", err)
		os.Exit(1)
	}
}
