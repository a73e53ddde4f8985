package migration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	statements []string
	failOn     string
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	if r.failOn != "" && strings.Contains(sql, r.failOn) {
		return nil, errors.New("relation error")
	}
	r.statements = append(r.statements, sql)
	return pgconn.CommandTag("CREATE TABLE"), nil
}

func TestRunMigrationsInOrder(t *testing.T) {
	ex := &recordingExecer{}
	require.NoError(t, RunMigrations(context.Background(), ex, zerolog.Nop()))
	require.Len(t, ex.statements, len(Migrations))
	assert.Contains(t, ex.statements[0], "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, ex.statements[1], "REFERENCES users(id)")
	assert.Contains(t, ex.statements[2], "analytics_events")
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	ex := &recordingExecer{failOn: "resumes ("}
	err := RunMigrations(context.Background(), ex, zerolog.Nop())
	require.Error(t, err)
	assert.Len(t, ex.statements, 1)
}
