// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/abcu/courseplanner/internal/model"
)

// AuditRecorder receives planner actions. *db.Store satisfies it.
type AuditRecorder interface {
	LogAction(ctx context.Context, action, details string) error
}

// AuditReader lists recorded actions, newest first.
type AuditReader interface {
	RecentActions(ctx context.Context, limit int) ([]model.AuditLogEntry, error)
}

// CatalogReader returns the full text of a catalog source. The default is
// source.ReadAllText.
type CatalogReader func(path string) (string, error)
