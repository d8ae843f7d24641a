// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Command courseplanner is the installable binary:
//
//	go install github.com/abcu/courseplanner/cmd/courseplanner@latest
package main

import (
	"os"

	"github.com/abcu/courseplanner/internal/logging"
	"github.com/abcu/courseplanner/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Cobra has already printed the error.
		logging.Debugf("exit: %v", err)
		os.Exit(1)
	}
}
