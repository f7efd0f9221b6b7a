package auth

import (
	"strconv"
	"strings"
	"unicode"

	"disccount_backend/pkg/apperrors"
)

const (
	DefaultPasswordMinLength = 12
	passwordSpecialChars     = `!@#$%^&*()_+-=[]{};':"\,.<>/?`
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

const (
	RulePasswordRequired = "password is required"
	RuleUppercase        = "must contain an uppercase letter"
	RuleLowercase        = "must contain a lowercase letter"
	RuleDigit            = "must contain a digit"
	RuleSpecial          = "must contain a special character (e.g. !@#$%)"
	RuleMaxBytes         = "must be at most 72 bytes"
)

// PasswordPolicy checks password strength. It holds no state besides the
// configured minimum length and is safe for concurrent use.
type PasswordPolicy struct {
	MinLength int
}

func NewPasswordPolicy(minLength int) PasswordPolicy {
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}
	return PasswordPolicy{MinLength: minLength}
}

// Validate returns every violated rule, in a stable order. An empty password
// reports only RulePasswordRequired.
func (p PasswordPolicy) Validate(password string) []string {
	if password == "" {
		return []string{RulePasswordRequired}
	}

	minLength := p.MinLength
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	length := 0
	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSpecialChars, r) {
			hasSpecial = true
		}
	}

	var violations []string
	if length < minLength {
		violations = append(violations, minLengthRule(minLength))
	}
	if len(password) > MaxPasswordBytes {
		violations = append(violations, RuleMaxBytes)
	}
	if !hasUpper {
		violations = append(violations, RuleUppercase)
	}
	if !hasLower {
		violations = append(violations, RuleLowercase)
	}
	if !hasDigit {
		violations = append(violations, RuleDigit)
	}
	if !hasSpecial {
		violations = append(violations, RuleSpecial)
	}
	return violations
}

// ValidateOrError wraps every violation into a single WEAK_PASSWORD error.
func (p PasswordPolicy) ValidateOrError(password string) error {
	violations := p.Validate(password)
	if len(violations) == 0 {
		return nil
	}
	return apperrors.ErrWeakPassword(violations)
}

func minLengthRule(n int) string {
	return "must be at least " + strconv.Itoa(n) + " characters"
}
