package validators

import (
	"testing"

	"chatStream/internal/errs"
	"chatStream/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{
			name: "valid user",
			user: &models.User{
				FirstName: "Alice",
				LastName:  "Smith",
				Email:     "alice@example.com",
				Password:  "Secret123!",
			},
		},
		{
			name:    "nil user",
			user:    nil,
			wantErr: errs.ErrInvalidUser,
		},
		{
			name: "bad email",
			user: &models.User{
				FirstName: "Alice",
				LastName:  "Smith",
				Email:     "not-an-email",
				Password:  "Secret123!",
			},
			wantErr: errs.ErrInvalidEmail,
		},
		{
			name: "short password",
			user: &models.User{
				FirstName: "Alice",
				LastName:  "Smith",
				Email:     "alice@example.com",
				Password:  "short",
			},
			wantErr: errs.ErrInvalidPassword,
		},
		{
			name: "short first name",
			user: &models.User{
				FirstName: "A",
				LastName:  "Smith",
				Email:     "alice@example.com",
				Password:  "Secret123!",
			},
			wantErr: errs.ErrFirstName,
		},
		{
			name: "missing last name",
			user: &models.User{
				FirstName: "Alice",
				Email:     "alice@example.com",
				Password:  "Secret123!",
			},
			wantErr: errs.ErrLastName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validationErrs := ValidateUser(tt.user)
			if tt.wantErr == nil {
				assert.Empty(t, validationErrs)
				return
			}
			assert.Contains(t, validationErrs, tt.wantErr)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.org"))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail("user@example"))
}
