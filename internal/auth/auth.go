package auth

import (
	"bufio"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"syscall"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Username limits. The upper bound matches the column width the
// leaderboard view prints, so names never get truncated there.
const (
	usernameMinLen = 3
	usernameMaxLen = 20
)

// Password limits. bcrypt only hashes the first 72 bytes, so longer
// passwords are rejected instead of silently ignored past that point.
const (
	passwordMinLen = 8
	passwordMaxLen = 72
)

// reservedUsernames are names the shell itself uses in output and the
// default seed data, so players cannot claim them.
var reservedUsernames = map[string]bool{
	"admin":     true,
	"blockdrop": true,
	"anonymous": true,
}

// ReadInput reads a line of input from the user
func ReadInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword reads a password without echoing it to the terminal
func ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Print a newline after password input
	return string(bytePassword), nil
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateUsername enforces the display-name rules: 3-20 characters,
// starting with a letter, containing only ASCII letters, digits, and
// underscores, and not one of the reserved shell names.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLen {
		return fmt.Errorf("username must be at least %d characters long", usernameMinLen)
	}
	if len(username) > usernameMaxLen {
		return fmt.Errorf("username must be no more than %d characters long", usernameMaxLen)
	}

	for i, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '_' || (r >= '0' && r <= '9')):
		case i == 0:
			return fmt.Errorf("username must start with a letter")
		default:
			return fmt.Errorf("username can only contain letters, numbers, and underscores")
		}
	}

	if reservedUsernames[strings.ToLower(username)] {
		return fmt.Errorf("username %q is reserved", username)
	}

	return nil
}

// ValidateEmail checks that the address parses and names a real-looking
// domain. mail.ParseAddress alone accepts bare hosts like "a@b", which
// are never deliverable addresses in practice.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email format")
	}

	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("email domain must contain a dot")
	}

	return nil
}

// ValidatePassword requires 8-72 characters with at least one letter
// and one digit.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("password must be at least %d characters long", passwordMinLen)
	}
	if len(password) > passwordMaxLen {
		return fmt.Errorf("password must be no more than %d characters long", passwordMaxLen)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
