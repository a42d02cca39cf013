package authdb

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"

	"github.com/mkhalturin/authdb/internal/logging"
)

// Backend selects the database engine a Store binds to.
type Backend int

const (
	// BackendSQLite is the embedded local-file engine (default).
	BackendSQLite Backend = iota
	// BackendPostgres is the networked client-server engine.
	BackendPostgres
)

func (b Backend) String() string {
	switch b {
	case BackendSQLite:
		return "sqlite"
	case BackendPostgres:
		return "postgres"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// DefaultTableName is used when Config.TableName is empty.
const DefaultTableName = "authentication"

// Config holds the construction parameters for a Store.
//
// Fields:
//   - Backend: database engine; BackendSQLite by default.
//   - DatabaseName: required. File path for the embedded backend, database
//     name for the networked backend.
//   - TableName: credential table; defaults to "authentication".
//   - CreateIfMissing: create the table when absent. When false and the table
//     does not exist, construction still succeeds and later operations fail
//     with the driver's error.
//   - User, Password, Host, Port: connection credentials and location, used
//     only by the networked backend. Host defaults to "localhost", Port to
//     5432.
//   - Logger: optional; a slog-backed logger is used when nil.
type Config struct {
	Backend         Backend
	DatabaseName    string
	TableName       string
	CreateIfMissing bool
	User            string
	Password        string
	Host            string
	Port            int
	Logger          logging.Logger
}

func (c Config) withDefaults() Config {
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
	if c.Backend == BackendPostgres {
		if c.Host == "" {
			c.Host = "localhost"
		}
		if c.Port == 0 {
			c.Port = 5432
		}
	}
	return c
}

// identRe matches the identifiers the store is willing to interpolate into
// statement text. Values never go through this path; they are always bound.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (c Config) validate() error {
	if c.DatabaseName == "" {
		return fmt.Errorf("%w: database name is required", ErrValidation)
	}
	if c.Backend != BackendSQLite && c.Backend != BackendPostgres {
		return fmt.Errorf("%w: unknown backend %q", ErrValidation, c.Backend)
	}
	if !identRe.MatchString(c.TableName) {
		return fmt.Errorf("%w: invalid table name %q", ErrValidation, c.TableName)
	}
	return nil
}

// dsn builds the driver-specific connection string.
func (c Config) dsn() string {
	switch c.Backend {
	case BackendPostgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:   "/" + c.DatabaseName,
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		return u.String()
	default:
		return c.DatabaseName
	}
}
