package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/mkhalturin/authdb/internal/dbx"
)

// Authenticate verifies a plaintext password for (group, user). It returns
// true iff a record exists and the digest of the supplied password matches
// the stored digest exactly. A missing record or an invalid name is an
// authentication failure, not an error; the plaintext is never logged.
func (s *Store) Authenticate(ctx context.Context, group, user, password string) (bool, error) {
	if err := validateKeyPair(group, user); err != nil {
		// Such a pair cannot have been stored.
		return false, nil
	}
	query := fmt.Sprintf("SELECT password FROM %s WHERE gukey = %s",
		s.cfg.TableName, s.dialect.placeholder(1))

	var stored string
	err := s.db.QueryRowContext(ctx, query, compositeKey(group, user)).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.fail(ctx, "authenticate", err)
	}
	return digestEqual(stored, passwordDigest(password)), nil
}

// keyExists probes the composite key through any DBTX so AddUser can run it
// inside its transaction.
func (s *Store) keyExists(ctx context.Context, q dbx.DBTX, key string) (bool, error) {
	query := fmt.Sprintf("SELECT gukey FROM %s WHERE gukey = %s",
		s.cfg.TableName, s.dialect.placeholder(1))
	var got string
	err := q.QueryRowContext(ctx, query, key).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.fail(ctx, "key lookup", err)
	}
	return true, nil
}

// UserExists reports whether a record exists for (group, user).
func (s *Store) UserExists(ctx context.Context, group, user string) (bool, error) {
	if err := validateKeyPair(group, user); err != nil {
		return false, err
	}
	return s.keyExists(ctx, s.db, compositeKey(group, user))
}

// UserInfo returns the full record for (group, user), or (nil, nil) when no
// record matches.
func (s *Store) UserInfo(ctx context.Context, group, user string) (*Record, error) {
	if err := validateKeyPair(group, user); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`SELECT groop, "user", password, fullname, email, question, answer, created, modified FROM %s WHERE gukey = %s`,
		s.cfg.TableName, s.dialect.placeholder(1))

	r := &Record{}
	var created, modified string
	err := s.db.QueryRowContext(ctx, query, compositeKey(group, user)).Scan(
		&r.Group, &r.User, &r.Digest, &r.Fullname, &r.Email, &r.Question, &r.Answer, &created, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(ctx, "user info", err)
	}
	if r.Created, err = parseEpoch(created); err != nil {
		return nil, err
	}
	if r.Modified, err = parseEpoch(modified); err != nil {
		return nil, err
	}
	return r, nil
}

// UserInfoMap is UserInfo with named-field access: the record as a map keyed
// by "group", "user", "password", "fullname", "email", "question", "answer",
// "created" and "modified" (epoch seconds as decimal strings). It returns
// (nil, nil) when no record matches.
func (s *Store) UserInfoMap(ctx context.Context, group, user string) (map[string]string, error) {
	r, err := s.UserInfo(ctx, group, user)
	if err != nil || r == nil {
		return nil, err
	}
	return map[string]string{
		"group":    r.Group,
		"user":     r.User,
		"password": r.Digest,
		"fullname": r.Fullname,
		"email":    r.Email,
		"question": r.Question,
		"answer":   r.Answer,
		"created":  strconv.FormatInt(r.Created, 10),
		"modified": strconv.FormatInt(r.Modified, 10),
	}, nil
}

// GetUserFullname returns the full-name field. ok is false when no record
// exists for (group, user).
func (s *Store) GetUserFullname(ctx context.Context, group, user string) (fullname string, ok bool, err error) {
	r, err := s.UserInfo(ctx, group, user)
	if err != nil || r == nil {
		return "", false, err
	}
	return r.Fullname, true, nil
}

// GetUserEmail returns the email field. ok is false when no record exists for
// (group, user).
func (s *Store) GetUserEmail(ctx context.Context, group, user string) (email string, ok bool, err error) {
	r, err := s.UserInfo(ctx, group, user)
	if err != nil || r == nil {
		return "", false, err
	}
	return r.Email, true, nil
}

// GetUserQuestionAnswer returns the challenge question and answer. ok is
// false when no record exists for (group, user).
func (s *Store) GetUserQuestionAnswer(ctx context.Context, group, user string) (question, answer string, ok bool, err error) {
	r, err := s.UserInfo(ctx, group, user)
	if err != nil || r == nil {
		return "", "", false, err
	}
	return r.Question, r.Answer, true, nil
}

// CountGroup returns the number of records in a group. A negative count from
// the driver is clamped to zero.
func (s *Store) CountGroup(ctx context.Context, group string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE groop = %s",
		s.cfg.TableName, s.dialect.placeholder(1))
	var n int
	if err := s.db.QueryRowContext(ctx, query, group).Scan(&n); err != nil {
		return 0, s.fail(ctx, "count group", err)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// GroupMembers returns all user names in a group, in whatever order the
// driver yields them. Callers must not depend on the ordering.
func (s *Store) GroupMembers(ctx context.Context, group string) ([]string, error) {
	query := fmt.Sprintf(`SELECT "user" FROM %s WHERE groop = %s`,
		s.cfg.TableName, s.dialect.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, group)
	if err != nil {
		return nil, s.fail(ctx, "group members", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, s.fail(ctx, "group members", err)
		}
		members = append(members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "group members", err)
	}
	return members, nil
}

// Groups returns the distinct group names present in the table.
func (s *Store) Groups(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT groop FROM %s", s.cfg.TableName)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.fail(ctx, "groups", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, s.fail(ctx, "groups", err)
		}
		groups = append(groups, name)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "groups", err)
	}
	return groups, nil
}
