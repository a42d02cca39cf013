package authdb

import (
	"fmt"
	"strings"
)

// dialect covers the two points where the backends diverge: parameter
// placeholder style and the table-existence probe. All other statement text is
// shared.
type dialect struct {
	driver string
	// placeholder renders the n-th bound parameter, 1-based.
	placeholder func(n int) string
	// tableExists takes the table name as its single bound parameter and
	// yields a row iff the table is present.
	tableExists string
}

var (
	sqliteDialect = dialect{
		driver:      "sqlite",
		placeholder: func(int) string { return "?" },
		tableExists: `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
	}

	postgresDialect = dialect{
		driver:      "pgx",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		tableExists: `SELECT table_name FROM information_schema.tables
		              WHERE table_schema = current_schema() AND table_name = $1`,
	}
)

func dialectFor(b Backend) dialect {
	if b == BackendPostgres {
		return postgresDialect
	}
	return sqliteDialect
}

// placeholders renders a comma-separated parameter list for positions
// start..start+count-1.
func (d dialect) placeholders(start, count int) string {
	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		parts = append(parts, d.placeholder(start+i))
	}
	return strings.Join(parts, ", ")
}
