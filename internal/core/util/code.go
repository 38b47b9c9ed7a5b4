package util

import (
	"crypto/rand"
	"math/big"
)

const (
	ConfirmationCodeLength = 6
	confirmationAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateConfirmationCode returns an upper-case alphanumeric code. Ambiguous
// characters (0, O, 1, I) are left out of the alphabet.
func GenerateConfirmationCode() (string, error) {
	code := make([]byte, ConfirmationCodeLength)
	max := big.NewInt(int64(len(confirmationAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, max)

		if err != nil {
			return "", err
		}

		code[i] = confirmationAlphabet[n.Int64()]
	}

	return string(code), nil
}
