package authdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkhalturin/authdb/internal/dbx"
)

// AddUser inserts a credential record for (u.Group, u.Name). It reports false
// without error when a record for the pair already exists — an expected
// outcome, not a failure. The existence check and the insert run in one
// transaction.
func (s *Store) AddUser(ctx context.Context, u User) (bool, error) {
	if err := u.validate(); err != nil {
		return false, err
	}

	key := compositeKey(u.Group, u.Name)
	digest := passwordDigest(u.Password)
	now := epochNow()

	inserted := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := s.keyExists(ctx, tx, key)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		query := fmt.Sprintf(
			`INSERT INTO %s (groop, "user", password, fullname, email, question, answer, created, modified, gukey) VALUES (%s)`,
			s.cfg.TableName, s.dialect.placeholders(1, 10),
		)
		res, err := tx.ExecContext(ctx, query,
			u.Group, u.Name, digest, u.Fullname, u.Email, u.Question, u.Answer, now, now, key)
		if err != nil {
			return s.fail(ctx, "add user", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return s.fail(ctx, "add user", err)
		}
		inserted = n == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// assignment is one column of a SET clause. Clauses are always rendered by
// joining a slice, so a dangling separator before the WHERE suffix cannot be
// produced.
type assignment struct {
	column string
	value  any
}

func (s *Store) updateFields(ctx context.Context, op, group, user string, assigns []assignment) (bool, error) {
	if err := validateKeyPair(group, user); err != nil {
		return false, err
	}

	assigns = append(assigns, assignment{column: "modified", value: epochNow()})

	set := make([]string, 0, len(assigns))
	args := make([]any, 0, len(assigns)+1)
	for i, a := range assigns {
		set = append(set, fmt.Sprintf("%s = %s", a.column, s.dialect.placeholder(i+1)))
		args = append(args, a.value)
	}
	args = append(args, compositeKey(group, user))

	query := fmt.Sprintf("UPDATE %s SET %s WHERE gukey = %s",
		s.cfg.TableName, strings.Join(set, ", "), s.dialect.placeholder(len(assigns)+1))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, s.fail(ctx, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fail(ctx, op, err)
	}
	return n == 1, nil
}

// UpdateUserAll rewrites every mutable field of the (u.Group, u.Name) record
// and recomputes the composite key. It reports false when no record matched.
func (s *Store) UpdateUserAll(ctx context.Context, u User) (bool, error) {
	if err := u.validate(); err != nil {
		return false, err
	}
	return s.updateFields(ctx, "update user", u.Group, u.Name, []assignment{
		{column: "password", value: passwordDigest(u.Password)},
		{column: "fullname", value: u.Fullname},
		{column: "email", value: u.Email},
		{column: "question", value: u.Question},
		{column: "answer", value: u.Answer},
		{column: "gukey", value: compositeKey(u.Group, u.Name)},
	})
}

// UpdateUserPassword replaces the stored digest with that of the new
// plaintext. It reports false when no record matched.
func (s *Store) UpdateUserPassword(ctx context.Context, group, user, password string) (bool, error) {
	return s.updateFields(ctx, "update password", group, user, []assignment{
		{column: "password", value: passwordDigest(password)},
	})
}

// UpdateUserFullname sets the full-name field. It reports false when no
// record matched.
func (s *Store) UpdateUserFullname(ctx context.Context, group, user, fullname string) (bool, error) {
	if err := validateFullname(fullname); err != nil {
		return false, err
	}
	return s.updateFields(ctx, "update fullname", group, user, []assignment{
		{column: "fullname", value: fullname},
	})
}

// UpdateUserEmail sets the email field. It reports false when no record
// matched.
func (s *Store) UpdateUserEmail(ctx context.Context, group, user, email string) (bool, error) {
	if err := validateEmail(email); err != nil {
		return false, err
	}
	return s.updateFields(ctx, "update email", group, user, []assignment{
		{column: "email", value: email},
	})
}

// UpdateUserQuestionAnswer sets the challenge question and answer. It reports
// false when no record matched.
func (s *Store) UpdateUserQuestionAnswer(ctx context.Context, group, user, question, answer string) (bool, error) {
	if err := validateQuestionAnswer(question, answer); err != nil {
		return false, err
	}
	return s.updateFields(ctx, "update question/answer", group, user, []assignment{
		{column: "question", value: question},
		{column: "answer", value: answer},
	})
}

// DeleteUser removes the record for (group, user). It reports whether a row
// was actually deleted; error is reserved for driver failure, so deleting an
// absent record is (false, nil).
func (s *Store) DeleteUser(ctx context.Context, group, user string) (bool, error) {
	if err := validateKeyPair(group, user); err != nil {
		return false, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE gukey = %s",
		s.cfg.TableName, s.dialect.placeholder(1))
	res, err := s.db.ExecContext(ctx, query, compositeKey(group, user))
	if err != nil {
		return false, s.fail(ctx, "delete user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fail(ctx, "delete user", err)
	}
	return n > 0, nil
}
