// Package store persists versioned rule sets for tester-mode evaluation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"esbresolver/internal/policy/models"
	"esbresolver/internal/policy/ruleengine"
)

// PostgresRuleStore reads rule sets from the rule_sets table. The definition
// column holds the JSON rule set; name and version come from the key columns.
type PostgresRuleStore struct {
	db *sql.DB
}

var _ ruleengine.RuleStore = (*PostgresRuleStore)(nil)

// NewPostgres constructs a PostgreSQL-backed rule store.
func NewPostgres(db *sql.DB) *PostgresRuleStore {
	return &PostgresRuleStore{db: db}
}

// GetRuleSet returns nil and no error when the version does not exist.
func (s *PostgresRuleStore) GetRuleSet(ctx context.Context, name string, major, minor int) (*ruleengine.RuleSet, error) {
	query := `
		SELECT definition
		FROM rule_sets
		WHERE name = $1 AND major_version = $2 AND minor_version = $3
	`
	var raw []byte
	err := s.db.QueryRowContext(ctx, query, name, major, minor).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rule set: %w", err)
	}

	var rs ruleengine.RuleSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("decode rule set %s %d.%d: %w", name, major, minor, err)
	}
	rs.Name, rs.Major, rs.Minor = name, major, minor
	return &rs, nil
}

// SaveRuleSet inserts or replaces a rule set version.
func (s *PostgresRuleStore) SaveRuleSet(ctx context.Context, rs *ruleengine.RuleSet) error {
	if rs == nil {
		return fmt.Errorf("rule set is required")
	}
	definition, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encode rule set %s: %w", rs.ID(), err)
	}
	query := `
		INSERT INTO rule_sets (name, major_version, minor_version, definition)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (name, major_version, minor_version) DO UPDATE SET
			definition = EXCLUDED.definition,
			created_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, rs.Name, rs.Major, rs.Minor, string(definition)); err != nil {
		return fmt.Errorf("save rule set %s: %w", rs.ID(), err)
	}
	return nil
}

// Versions lists the stored versions of a rule set, newest first.
func (s *PostgresRuleStore) Versions(ctx context.Context, name string) ([]models.Version, error) {
	query := `
		SELECT major_version, minor_version
		FROM rule_sets
		WHERE name = $1
		ORDER BY major_version DESC, minor_version DESC
	`
	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("list rule set versions: %w", err)
	}
	defer rows.Close()

	var out []models.Version
	for rows.Next() {
		var v models.Version
		if err := rows.Scan(&v.Major, &v.Minor); err != nil {
			return nil, fmt.Errorf("scan rule set version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
