package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("super-secreta")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "super-secreta", hash)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("super-secreta")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{
			name:     "Correct password",
			password: "super-secreta",
			want:     true,
		},
		{
			name:     "Wrong password",
			password: "otra-clave",
			want:     false,
		},
		{
			name:     "Empty password",
			password: "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(hash, tt.password))
		})
	}
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("abc", "abc"))
	assert.False(t, SecureCompare("abc", "abd"))
	assert.False(t, SecureCompare("abc", "abcd"))
	assert.True(t, SecureCompare("", ""))
}
