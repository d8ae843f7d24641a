// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Courseplanner using
// Cobra. It wires configuration and default services and provides commands
// that delegate to the `core` planner. CLI code should remain thin.
package cli
