package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Email    string  `json:"email" validate:"strict_email"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
}

type pinInput struct {
	StoreAPIID string `json:"store_api_id" validate:"required,store_chain"`
}

type pinBatch struct {
	Stores []pinInput `json:"stores" validate:"max=2,dive"`
}

func TestIsStrictEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.org", true},
		{"", false},
		{"no-at-sign.example.com", false},
		{"two@@example.com", false},
		{"a@b@example.com", false},
		{".lead@example.com", false},
		{"trail.@example.com", false},
		{"dou..ble@example.com", false},
		{"user@example..com", false},
		{"user@localhost", false},
		{"user@example.c", false},
		{"user@example.123", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrictEmail(tt.email))
		})
	}
}

func TestIsStrictEmail_Lengths(t *testing.T) {
	local64 := make([]byte, 64)
	for i := range local64 {
		local64[i] = 'a'
	}
	assert.True(t, IsStrictEmail(string(local64)+"@example.com"))
	assert.False(t, IsStrictEmail(string(local64)+"a@example.com"))

	long := make([]byte, 250)
	for i := range long {
		long[i] = 'b'
	}
	assert.False(t, IsStrictEmail("a@"+string(long)+".com"))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()
	short := "ab"

	err := v.Validate(signupInput{Email: "bad", Username: &short})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be a valid email address", verr.Errors["email"])
	assert.Contains(t, verr.Errors["username"], "at least 3")
}

func TestValidate_Passes(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(signupInput{Email: "user@example.com"}))
}

func TestValidate_StoreChain(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(pinInput{StoreAPIID: "konzum"}))

	err := v.Validate(pinInput{StoreAPIID: "NOT_A_CHAIN"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be a known store chain", verr.Errors["store_api_id"])
}

func TestValidate_NestedFieldPath(t *testing.T) {
	v := New()

	err := v.Validate(pinBatch{Stores: []pinInput{{StoreAPIID: "konzum"}, {StoreAPIID: "nope"}}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "stores[1].store_api_id")

	err = v.Validate(pinBatch{Stores: []pinInput{{"konzum"}, {"konzum"}, {"konzum"}}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be at most 2", verr.Errors["stores"])
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: field 'a': one; field 'b': two", err.Error())
}
