package authdb

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// The digest is a fixed deterministic function of the plaintext:
// authentication recomputes it from the supplied password alone and compares
// it to the stored value, so the salt is pinned rather than random.
var digestSalt = []byte("authdb/digest/v1")

const (
	digestTime    = 1
	digestMemory  = 64 * 1024
	digestThreads = 4
	digestKeyLen  = 32
)

// passwordDigest returns the stored form of a password: argon2id over the
// plaintext, raw-base64 encoded (43 chars, inside the 60-char column).
func passwordDigest(password string) string {
	key := argon2.IDKey([]byte(password), digestSalt, digestTime, digestMemory, digestThreads, digestKeyLen)
	return base64.RawStdEncoding.EncodeToString(key)
}

func digestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
