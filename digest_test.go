package authdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordDigest_Deterministic(t *testing.T) {
	d1 := passwordDigest("hunter2")
	d2 := passwordDigest("hunter2")
	assert.Equal(t, d1, d2, "same plaintext must yield the same digest")
}

func TestPasswordDigest_NeverPlaintext(t *testing.T) {
	for _, pw := range []string{"a", "hunter2", "correct horse battery staple"} {
		d := passwordDigest(pw)
		assert.NotEqual(t, pw, d)
		assert.NotEmpty(t, d)
		assert.LessOrEqual(t, len(d), 60, "digest must fit the password column")
	}
}

func TestPasswordDigest_DistinctInputsDiffer(t *testing.T) {
	assert.NotEqual(t, passwordDigest("pw1"), passwordDigest("pw2"))
}

func TestDigestEqual(t *testing.T) {
	d := passwordDigest("pw")
	assert.True(t, digestEqual(d, passwordDigest("pw")))
	assert.False(t, digestEqual(d, passwordDigest("pW")))
	assert.False(t, digestEqual(d, ""))
}
