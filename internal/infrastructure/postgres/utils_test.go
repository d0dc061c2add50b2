package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "documents_sale_fiscal_number_idx"}
	wrapped := fmt.Errorf("insert document: %w", pgErr)

	assert.True(t, isUniqueViolation(wrapped))
	assert.Equal(t, "documents_sale_fiscal_number_idx", constraintName(wrapped))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.Empty(t, constraintName(errors.New("timeout")))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	s := nullString("B0100000001")
	require.NotNil(t, s)
	assert.Equal(t, "B0100000001", fromNullString(s))
	assert.Empty(t, fromNullString(nil))
}

func TestResolveIPv4_Literales(t *testing.T) {
	ip, err := resolveIPv4(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)

	_, err = resolveIPv4(context.Background(), "::1")
	assert.Error(t, err)
}

func TestMigracionesEmbebidas(t *testing.T) {
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	up, err := fs.ReadFile(sub, "000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS inventory_movements")
	assert.Contains(t, string(up), "fiscal_sequences_active_type_idx")

	_, err = fs.ReadFile(sub, "000001_init.down.sql")
	require.NoError(t, err)

	up, err = fs.ReadFile(sub, "000002_numbering_and_adjustment_lines.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS daily_counters")
	assert.Contains(t, string(up), "UNIQUE (kind, number)")
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS inventory_adjustment_lines")

	_, err = fs.ReadFile(sub, "000002_numbering_and_adjustment_lines.down.sql")
	require.NoError(t, err)
}

func TestRunMigrations_SinConexion(t *testing.T) {
	assert.Error(t, RunMigrations(nil))
}
