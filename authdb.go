package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mkhalturin/authdb/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib" // networked backend
	_ "modernc.org/sqlite"             // embedded backend
)

// Store owns one database connection and exposes all credential operations.
// Each operation issues one parameterized statement and waits synchronously
// for the result; the store adds no locking of its own around the connection
// and no retries — transient driver errors propagate to the caller.
type Store struct {
	db      *sql.DB
	cfg     Config
	dialect dialect
	log     logging.Logger

	mu      sync.Mutex
	lastErr string
}

// Open connects to the configured backend and ensures the credential table.
//
// A connection that cannot be established or pinged yields a *ConnectionError.
// When the table is absent and cfg.CreateIfMissing is set, the canonical
// schema is created (*SchemaError on failure). When the table is absent and
// the flag is unset, Open still succeeds; later operations surface the
// driver's missing-table error. The connection is closed on every failing
// path after it was opened.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewSlogLogger(slog.Default())
	}

	d := dialectFor(cfg.Backend)
	db, err := sql.Open(d.driver, cfg.dsn())
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Err: err}
	}

	s := &Store{
		db:      db,
		cfg:     cfg,
		dialect: d,
		log:     cfg.Logger.With("table", cfg.TableName, "backend", cfg.Backend.String()),
	}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the store's connection. The store must not be used after.
func (s *Store) Close() error {
	s.log.Debug(context.Background(), "closing store")
	return s.db.Close()
}

// TableName reports the credential table this store operates on.
func (s *Store) TableName() string { return s.cfg.TableName }

// BackendKind reports the engine this store is bound to.
func (s *Store) BackendKind() Backend { return s.cfg.Backend }

// LastError mirrors the text of the most recent driver error seen by this
// store, or "" if none occurred.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// fail records a driver error for LastError, logs it and returns it wrapped
// with the failing operation's name.
func (s *Store) fail(ctx context.Context, op string, err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.log.Error(ctx, "db error", "op", op, "err", err)
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return &SchemaError{Table: s.cfg.TableName, Err: err}
	}
	if exists {
		return nil
	}
	if !s.cfg.CreateIfMissing {
		s.log.Warn(ctx, "credential table absent, creation not requested")
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.createTableSQL()); err != nil {
		return &SchemaError{Table: s.cfg.TableName, Err: err}
	}
	s.log.Info(ctx, "credential table created")
	return nil
}

func (s *Store) tableExists(ctx context.Context) (bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx, s.dialect.tableExists, s.cfg.TableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// createTableSQL renders the canonical schema. The groop spelling dodges the
// reserved word GROUP; user is reserved in postgres and therefore quoted in
// every statement. created/modified hold epoch seconds as strings.
func (s *Store) createTableSQL() string {
	return fmt.Sprintf(`CREATE TABLE %s (
  groop VARCHAR(15), "user" VARCHAR(30), password VARCHAR(60),
  fullname VARCHAR(40), email VARCHAR(40), question VARCHAR(120),
  answer VARCHAR(80), created VARCHAR(12), modified VARCHAR(12),
  gukey VARCHAR(46) UNIQUE
)`, s.cfg.TableName)
}

func epochNow() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

func parseEpoch(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed epoch value %q: %w", v, err)
	}
	return n, nil
}
