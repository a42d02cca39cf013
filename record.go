package authdb

import (
	"fmt"
	"strings"
)

// Schema limits, one per VARCHAR column of the credential table.
const (
	maxGroupLen    = 15
	maxUserLen     = 30
	maxFullnameLen = 40
	maxEmailLen    = 40
	maxQuestionLen = 120
	maxAnswerLen   = 80
)

// keySeparator joins group and user into the composite key. Values containing
// it are rejected at validation, otherwise two distinct pairs could collide on
// the same key (group "a:b"/user "c" vs group "a"/user "b:c").
const keySeparator = ":"

// User is the caller-supplied input for AddUser and UpdateUserAll. Password is
// the plaintext; it is digested before anything touches the database.
type User struct {
	Group    string
	Name     string
	Password string
	Fullname string
	Email    string
	Question string
	Answer   string
}

// Record is one stored credential row. Digest is the one-way hash of the
// password; the plaintext is never persisted. Answer is kept in cleartext so
// that GetUserQuestionAnswer can return it verbatim; callers needing
// equality-only checks should store a digest of their own in the field.
// Created is set once at insertion; Modified is bumped by every mutation.
type Record struct {
	Group    string
	User     string
	Digest   string
	Fullname string
	Email    string
	Question string
	Answer   string
	Created  int64
	Modified int64
}

// compositeKey derives the unique row key for a (group, user) pair. It must
// stay byte-for-byte identical between insertion and every lookup.
func compositeKey(group, user string) string {
	return group + keySeparator + user
}

func validateKeyPair(group, user string) error {
	if group == "" || len(group) > maxGroupLen {
		return fmt.Errorf("%w: group must be 1..%d chars", ErrValidation, maxGroupLen)
	}
	if user == "" || len(user) > maxUserLen {
		return fmt.Errorf("%w: user must be 1..%d chars", ErrValidation, maxUserLen)
	}
	if strings.Contains(group, keySeparator) || strings.Contains(user, keySeparator) {
		return fmt.Errorf("%w: group and user must not contain %q", ErrValidation, keySeparator)
	}
	return nil
}

func validateFullname(v string) error {
	if len(v) > maxFullnameLen {
		return fmt.Errorf("%w: fullname exceeds %d chars", ErrValidation, maxFullnameLen)
	}
	return nil
}

func validateEmail(v string) error {
	if len(v) > maxEmailLen {
		return fmt.Errorf("%w: email exceeds %d chars", ErrValidation, maxEmailLen)
	}
	return nil
}

func validateQuestionAnswer(question, answer string) error {
	if len(question) > maxQuestionLen {
		return fmt.Errorf("%w: question exceeds %d chars", ErrValidation, maxQuestionLen)
	}
	if len(answer) > maxAnswerLen {
		return fmt.Errorf("%w: answer exceeds %d chars", ErrValidation, maxAnswerLen)
	}
	return nil
}

func (u User) validate() error {
	if err := validateKeyPair(u.Group, u.Name); err != nil {
		return err
	}
	if err := validateFullname(u.Fullname); err != nil {
		return err
	}
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	return validateQuestionAnswer(u.Question, u.Answer)
}
