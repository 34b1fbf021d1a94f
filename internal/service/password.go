package service

import (
	"strings"

	"github.com/taskboard-app/taskboard/internal/domain"
)

const (
	passwordMinLength = 8
	specialChars      = "!@#$%^&*"
)

// ValidatePassword enforces the registration password policy: at least
// eight characters with an upper, a lower, a digit and a special
// character. All violations are reported together.
func ValidatePassword(password string) error {
	var problems []string

	if len(password) < passwordMinLength {
		problems = append(problems, "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		problems = append(problems, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		problems = append(problems, "password must contain at least one number")
	}
	if !hasSpecial {
		problems = append(problems, "password must contain at least one special character (!@#$%^&*)")
	}

	if len(problems) > 0 {
		return domain.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
