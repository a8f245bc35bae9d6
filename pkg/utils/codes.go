package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// GenerateConfirmationCode creates a numeric single-use code of specified length
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			n = big.NewInt(0)
		}
		code += fmt.Sprintf("%d", n.Int64())
	}

	return code
}

// HashConfirmationCode hashes a code for storage; the plaintext only leaves
// the service inside the confirmation email
func HashConfirmationCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckConfirmationCode compares a submitted code against the stored hash
func CheckConfirmationCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
