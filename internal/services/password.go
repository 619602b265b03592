package services

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordNumbers   = "0123456789"
	passwordSymbols   = "!@#$%^&*()_+-="
)

// GenerateTemporaryPassword builds a random password with at least one
// uppercase letter, one lowercase letter, one digit and one symbol, shuffled
// so the guaranteed characters don't sit at fixed positions.
func GenerateTemporaryPassword(length int) (string, error) {
	if length < 4 {
		length = 4
	}
	all := passwordUppercase + passwordLowercase + passwordNumbers + passwordSymbols

	chars := make([]byte, 0, length)
	for _, charset := range []string{passwordUppercase, passwordLowercase, passwordNumbers, passwordSymbols} {
		c, err := randomChar(charset)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

func randomChar(charset string) (byte, error) {
	idx, err := randomIndex(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[idx], nil
}

func randomIndex(n int) (int, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(idx.Int64()), nil
}
