package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disccount_backend/pkg/apperrors"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := NewPasswordPolicy(12)

	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"too short", "short1!", []string{"must be at least 12 characters", RuleUppercase}},
		{"no uppercase", "alllowercase123!", []string{RuleUppercase}},
		{"no lowercase", "ALLUPPER123!", []string{RuleLowercase}},
		{"no digit", "NoDigitsHere!", []string{RuleDigit}},
		{"no special character", "NoSpecialChar123", []string{RuleSpecial}},
		{"valid", "ValidPass123!", nil},
		{"empty short-circuits", "", []string{RulePasswordRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Validate(tt.password))
		})
	}
}

func TestPasswordPolicy_ReportsEveryViolation(t *testing.T) {
	violations := NewPasswordPolicy(12).Validate("abc")

	assert.Equal(t, []string{
		"must be at least 12 characters",
		RuleUppercase,
		RuleDigit,
		RuleSpecial,
	}, violations)
}

func TestPasswordPolicy_CountsRunesNotBytes(t *testing.T) {
	// 12 runes, more than 12 bytes
	assert.Empty(t, NewPasswordPolicy(12).Validate("Žabac1!Žabac"))
	assert.Contains(t, NewPasswordPolicy(12).Validate("Žabac1!Žaba"), "must be at least 12 characters")
}

func TestPasswordPolicy_RejectsPasswordsOverBcryptLimit(t *testing.T) {
	policy := NewPasswordPolicy(12)

	atLimit := "ValidPass123!" + strings.Repeat("a", MaxPasswordBytes-13)
	assert.Len(t, atLimit, MaxPasswordBytes)
	assert.Empty(t, policy.Validate(atLimit))

	assert.Equal(t, []string{RuleMaxBytes}, policy.Validate(atLimit+"a"))

	// 40 runes but 76 bytes
	multiByte := "Ab1!" + strings.Repeat("Ž", 36)
	assert.Equal(t, []string{RuleMaxBytes}, policy.Validate(multiByte))
}

func TestPasswordPolicy_ZeroMinLengthFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultPasswordMinLength, NewPasswordPolicy(0).MinLength)
	assert.Contains(t, PasswordPolicy{}.Validate("Short1!"), "must be at least 12 characters")
}

func TestPasswordPolicy_ValidateOrError(t *testing.T) {
	policy := NewPasswordPolicy(12)

	require.NoError(t, policy.ValidateOrError("ValidPass123!"))

	err := policy.ValidateOrError("NoDigitsHere!")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeWeakPassword, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, "Weak password: "+RuleDigit, appErr.Message)
	assert.Equal(t, []string{RuleDigit}, appErr.Details)
}
