package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=19456,t=2,p=1$"))
	assert.True(t, CheckPasswordHash("correct horse battery staple", digest))
	assert.False(t, CheckPasswordHash("Correct horse battery staple", digest))
	assert.False(t, CheckPasswordHash("", digest))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each digest carries a fresh salt")
	assert.True(t, CheckPasswordHash("same password", first))
	assert.True(t, CheckPasswordHash("same password", second))
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	cases := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"plain text", "not a digest"},
		{"wrong variant", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5"},
		{"missing params", "$argon2id$v=19$$c2FsdHNhbHRzYWx0c2FsdA$a2V5"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$a2V5"},
		{"bad key encoding", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$!!!"},
		{"empty key", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$"},
		{"truncated", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, CheckPasswordHash("anything", tc.digest))
		})
	}
}
