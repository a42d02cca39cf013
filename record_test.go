package authdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeKey(t *testing.T) {
	assert.Equal(t, "staff:alice", compositeKey("staff", "alice"))

	// Maximum-length pair still fits the 46-char key column.
	g := strings.Repeat("g", maxGroupLen)
	u := strings.Repeat("u", maxUserLen)
	assert.LessOrEqual(t, len(compositeKey(g, u)), 46)
}

func TestValidateKeyPair(t *testing.T) {
	require.NoError(t, validateKeyPair("staff", "alice"))

	tests := []struct {
		name  string
		group string
		user  string
	}{
		{"empty group", "", "alice"},
		{"empty user", "staff", ""},
		{"group too long", strings.Repeat("g", maxGroupLen+1), "alice"},
		{"user too long", "staff", strings.Repeat("u", maxUserLen+1)},
		{"separator in group", "a:b", "c"},
		{"separator in user", "a", "b:c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, validateKeyPair(tc.group, tc.user), ErrValidation)
		})
	}
}

func TestValidateKeyPair_NoCollisionThroughSeparator(t *testing.T) {
	// The pairs ("a:b","c") and ("a","b:c") would both derive "a:b:c"; the
	// separator check makes the first pair unrepresentable.
	require.Error(t, validateKeyPair("a:b", "c"))
	require.NoError(t, validateKeyPair("a", "bc"))
}

func TestUserValidate_FieldLimits(t *testing.T) {
	base := User{Group: "g", Name: "alice", Password: "pw"}
	require.NoError(t, base.validate())

	long := base
	long.Fullname = strings.Repeat("f", maxFullnameLen+1)
	assert.ErrorIs(t, long.validate(), ErrValidation)

	long = base
	long.Email = strings.Repeat("e", maxEmailLen+1)
	assert.ErrorIs(t, long.validate(), ErrValidation)

	long = base
	long.Question = strings.Repeat("q", maxQuestionLen+1)
	assert.ErrorIs(t, long.validate(), ErrValidation)

	long = base
	long.Answer = strings.Repeat("a", maxAnswerLen+1)
	assert.ErrorIs(t, long.validate(), ErrValidation)
}
