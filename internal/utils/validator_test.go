// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordFixture struct {
	Password string `validate:"required,strong_password"`
}

type roleFixture struct {
	Role string `validate:"required,role"`
}

func TestStrongPasswordValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid password", "Password1", true},
		{"valid with symbols", "Str0ngPass!@#", true},
		{"too short", "Pass1", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no number", "PasswordOnly", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&passwordFixture{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRoleValidation(t *testing.T) {
	for _, role := range []string{"admin", "vendor", "affiliate", "influencer", "buyer"} {
		assert.NoError(t, ValidateStruct(&roleFixture{Role: role}), "expected %s to validate", role)
	}

	assert.Error(t, ValidateStruct(&roleFixture{Role: "superuser"}))
	assert.Error(t, ValidateStruct(&roleFixture{Role: "Admin"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&passwordFixture{Password: "weak"})
	assert.Error(t, err)

	errors := GetValidationErrors(err)
	assert.Len(t, errors, 1)
	assert.Equal(t, "password", errors[0].Field)
	assert.Equal(t, "strong_password", errors[0].Tag)
	assert.NotEmpty(t, errors[0].Message)
}

func TestGetValidationErrorsWithNil(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
}
