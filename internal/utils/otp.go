package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtpCode returns a random 6-digit verification code.
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
