// Package security holds the credential primitives: random tokens,
// temporary passwords and password hashing.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
)

const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomToken returns n random bytes hex-encoded (2n characters).
func RandomToken(n int) (string, error) {
	if n < 0 {
		return "", errNegativeLength
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RandomString returns an unbiased string of length drawn from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for i := range value {
		pos, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[i] = alphabet[pos.Int64()]
	}
	return string(value), nil
}

// TemporaryPassword is the generated password for admin-provisioned accounts.
func TemporaryPassword() (string, error) {
	return RandomString(12, PasswordAlphabet)
}
