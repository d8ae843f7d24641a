// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"os/user"
	"time"

	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/util/slicest"
	"github.com/uptrace/bun"
)

// Audit actions recorded by the planner.
const (
	ActionLoadCatalog       = "LOAD_CATALOG"
	ActionLoadFailed        = "LOAD_CATALOG_FAILED"
	ActionListCourses       = "LIST_COURSES"
	ActionDescribeCourse    = "DESCRIBE_COURSE"
	ActionPrerequisiteChain = "PREREQUISITE_CHAIN"
)

// timestampLayout keeps entries sortable as plain strings.
const timestampLayout = "2006-01-02 15:04:05"

// AuditLogModel maps the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp,notnull"`
	Username      string `bun:"username,notnull"`
	Action        string `bun:"action,notnull"`
	Details       string `bun:"details"`
}

func (m AuditLogModel) toModel() model.AuditLogEntry {
	return model.AuditLogEntry{
		ID:        m.ID,
		Timestamp: m.Timestamp,
		Username:  m.Username,
		Action:    m.Action,
		Details:   m.Details,
	}
}

// now is swapped in tests.
var now = time.Now

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// LogAction appends an entry to the audit log.
func (s *Store) LogAction(ctx context.Context, action, details string) error {
	if err := s.usable(); err != nil {
		return err
	}
	entry := &AuditLogModel{
		Timestamp: now().UTC().Format(timestampLayout),
		Username:  currentUsername(),
		Action:    action,
		Details:   details,
	}
	if _, err := s.bun.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("failed to write audit entry %s: %w", action, err)
	}
	dbLogf("db: audit %s %q", action, details)
	return nil
}

// RecentActions returns up to limit entries, newest first. A limit of zero
// or less returns every entry.
func (s *Store) RecentActions(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	var rows []AuditLogModel
	q := s.bun.NewSelect().Model(&rows).OrderExpr("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return slicest.Map(rows, AuditLogModel.toModel), nil
}

// CountActions returns how many entries carry the given action.
func (s *Store) CountActions(ctx context.Context, action string) (int, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	n, err := s.bun.NewSelect().Model((*AuditLogModel)(nil)).Where("action = ?", action).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return n, nil
}
