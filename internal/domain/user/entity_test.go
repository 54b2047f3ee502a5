//go:build unit

package user_test

import (
	"testing"

	"flea-market/internal/domain/user"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("seller@example.com")
	require.NoError(t, err)

	actual := user.NewUser(email, "hashed_password", "Ada", "Lovelace", nil)
	expected := user.NewUser(email, "hashed_password", "Ada", "Lovelace", nil)

	if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
		t.Errorf("User mismatch (-want +got):\n%s", diff)
	}

	assert.NotEqual(t, uuid.Nil, actual.ID())
	assert.True(t, actual.IsActive())
	assert.Equal(t, "seller@example.com", actual.Email().Value())
}

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid email", input: "valid@example.com"},
		{name: "empty rejected", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "user@", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewCredentials(t *testing.T) {
	_, err := user.NewCredentials("buyer@example.com", "short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)

	creds, err := user.NewCredentials("buyer@example.com", "long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", creds.Email().Value())
}
