package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordLen    = 8
	minPasswordLen = 8
	symbols        = "!@#$%&*"
	upperLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerLetters   = "abcdefghijklmnopqrstuvwxyz"
	digits         = "0123456789"
)

// PasswordCheck is the outcome of ValidatePassword.
type PasswordCheck struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

// ValidatePassword enforces the registration policy: at least 8 characters
// with an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) PasswordCheck {
	if len([]rune(password)) < minPasswordLen {
		return PasswordCheck{Message: fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minPasswordLen)}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	switch {
	case !hasUpper:
		return PasswordCheck{Message: "La contraseña debe contener al menos una letra mayúscula"}
	case !hasLower:
		return PasswordCheck{Message: "La contraseña debe contener al menos una letra minúscula"}
	case !hasDigit:
		return PasswordCheck{Message: "La contraseña debe contener al menos un número"}
	}
	return PasswordCheck{IsValid: true}
}

// HashPassword returns a salted bcrypt hash for storing in the user table.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares in constant time.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateSecurePassword returns an 8-character password with at least one uppercase, one lowercase, one digit, one symbol.
// Uses crypto/rand. Do not log the returned string.
func GenerateSecurePassword() (string, error) {
	pick := func(s string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s))))
		if err != nil {
			return 0, err
		}
		return s[n.Int64()], nil
	}
	result := make([]byte, passwordLen)
	var err error
	for i, set := range []string{upperLetters, lowerLetters, digits, symbols} {
		if result[i], err = pick(set); err != nil {
			return "", err
		}
	}
	all := upperLetters + lowerLetters + digits + symbols
	for i := 4; i < passwordLen; i++ {
		result[i], err = pick(all)
		if err != nil {
			return "", err
		}
	}
	// Shuffle Fisher-Yates with crypto/rand
	for i := passwordLen - 1; i >= 1; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("shuffle: %w", err)
		}
		j := int(n.Int64())
		result[i], result[j] = result[j], result[i]
	}
	return string(result), nil
}
