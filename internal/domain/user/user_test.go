package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Ann ", " Ann@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name())
	assert.Equal(t, "ann@example.com", u.Email())

	tests := map[string][2]string{
		"blank name":    {"", "a@b.c"},
		"blank email":   {"Ann", " "},
		"invalid email": {"Ann", "not-an-email"},
		"display name":  {"Ann", "Ann <ann@example.com>"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewUser(in[0], in[1])
			assert.Error(t, err)
		})
	}
}

func TestUser_Update(t *testing.T) {
	u, err := NewUser("Ann", "ann@example.com")
	require.NoError(t, err)

	name := "Anna"
	changed, err := u.Update(&name, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Anna", u.Name())
	assert.Equal(t, int64(2), u.Version())

	bad := "nope"
	_, err = u.Update(nil, &bad)
	assert.Error(t, err)
	assert.Equal(t, "ann@example.com", u.Email())

	same := "ANN@example.com"
	changed, err = u.Update(nil, &same)
	require.NoError(t, err)
	assert.False(t, changed)
}
