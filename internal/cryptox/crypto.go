// Package cryptox implements password hashing for server-side accounts,
// based on Argon2id with per-user random salts.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shareling/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them invalidates stored hashes, so bump only
// together with a migration.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword derives an Argon2id hash from password with a fresh random
// salt and returns it encoded as "salthex$keyhex".
func HashPassword(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey(password, salt)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key from candidate using the salt embedded in
// encoded and compares it in constant time. A malformed encoded value yields
// an error rather than a silent mismatch.
func VerifyPassword(encoded string, candidate []byte) (bool, error) {
	parts := strings.SplitN(encoded, "$", 2)
	if len(parts) != 2 {
		return false, fmt.Errorf("malformed password hash")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, fmt.Errorf("malformed salt: %w", err)
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed key: %w", err)
	}
	got := deriveKey(candidate, salt)
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
