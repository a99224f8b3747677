package auth

import (
	"testing"

	"taskman/config"
	domainerrors "taskman/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasherConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = cost

	return cfg
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	password := "secret1"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))
	password := "secret1"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-password", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidatePolicy(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "secret1", wantErr: nil},
		{name: "too short", password: "abc12", wantErr: domainerrors.ErrPasswordTooShort},
		{name: "contains password", password: "mypassword123", wantErr: domainerrors.ErrPasswordForbidden},
		{name: "contains password uppercase", password: "PASSWORD123", wantErr: domainerrors.ErrPasswordForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePolicy(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
