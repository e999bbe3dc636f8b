package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ==================== SESSION ID ====================

func GenerateSessionID() string {
	return uuid.NewString()
}

// ==================== OTP ====================

var ten = big.NewInt(10)

// OTPLength is the fixed number of digits in a login code.
const OTPLength = 6

// GenerateOTP returns an OTPLength-digit code. Every digit is drawn
// independently and uniformly; leading zeros are kept.
func GenerateOTP() (string, error) {
	var sb strings.Builder
	sb.Grow(OTPLength)
	for i := 0; i < OTPLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}

	return sb.String(), nil
}
