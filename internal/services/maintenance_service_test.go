package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/supplierctl/internal/mutate"
)

func TestTruncateTablesRejectsUnsafeNames(t *testing.T) {
	// Rejection happens before any transaction opens: a nil handle proves it.
	s := NewMaintenanceService(nil)

	for _, name := range []string{
		"users; DROP TABLE users",
		`sup"pliers`,
		"users suppliers",
		"public.users",
		"",
	} {
		err := s.TruncateTables(context.Background(), []string{name}, MutationOptions{Confirmed: true})
		require.Error(t, err, "name %q must be rejected", name)
		assert.Contains(t, err.Error(), "invalid table name")
	}
}

func TestTruncateTablesAcceptsPlainIdentifiers(t *testing.T) {
	for _, name := range []string{"users", "suppliers", "_staging", "audit_2024"} {
		assert.True(t, tableNamePattern.MatchString(name), "name %q must be accepted", name)
	}
}

func TestTruncateTablesRequiresConfirmation(t *testing.T) {
	s := NewMaintenanceService(nil)

	err := s.TruncateTables(context.Background(), []string{"users"}, MutationOptions{})
	assert.ErrorIs(t, err, mutate.ErrConfirmationRequired)
}

func TestTruncateTablesRequiresTargets(t *testing.T) {
	s := NewMaintenanceService(nil)

	err := s.TruncateTables(context.Background(), nil, MutationOptions{Confirmed: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tables")
}
