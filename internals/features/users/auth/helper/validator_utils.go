package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	reHasLetter = regexp.MustCompile(`[A-Za-z]`)
	reHasNumber = regexp.MustCompile(`[0-9]`)
)

func isAlphaNumeric(s string) bool {
	return reHasLetter.MatchString(s) && reHasNumber.MatchString(s)
}

// ValidatePassword: minimal 8 karakter, kombinasi huruf & angka, maks 72 (batas bcrypt).
func ValidatePassword(pw string) error {
	if len(pw) < 8 {
		return errors.New("password minimal 8 karakter")
	}
	if len(pw) > 72 {
		return errors.New("password maksimal 72 karakter")
	}
	if !isAlphaNumeric(pw) {
		return errors.New("password harus mengandung huruf dan angka")
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}

func NormalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "@") {
		return strings.ToLower(s)
	}
	return s
}
