package authdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, "sqlite", dialectFor(BackendSQLite).driver)
	assert.Equal(t, "pgx", dialectFor(BackendPostgres).driver)
}

func TestDialect_Placeholders(t *testing.T) {
	assert.Equal(t, "?", sqliteDialect.placeholder(1))
	assert.Equal(t, "?", sqliteDialect.placeholder(7))
	assert.Equal(t, "$1", postgresDialect.placeholder(1))
	assert.Equal(t, "$7", postgresDialect.placeholder(7))

	assert.Equal(t, "?, ?, ?", sqliteDialect.placeholders(1, 3))
	assert.Equal(t, "$3, $4, $5", postgresDialect.placeholders(3, 3))
}
