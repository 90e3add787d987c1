package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Base36Alphabet matches the digits and lowercase letters of a base-36 number.
const Base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	ErrNegativeLength = errors.New("length must be non-negative")
	ErrEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", ErrNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", ErrEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	var builder strings.Builder
	builder.Grow(length)
	for builder.Len() < length {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[position.Int64()])
	}
	return builder.String(), nil
}

func RandomBase36(length int) (string, error) {
	return RandomString(length, Base36Alphabet)
}
