package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func TestCheckPasswordPolicy(t *testing.T) {
	assert.NoError(t, CheckPasswordPolicy("protein42"))
	assert.ErrorIs(t, CheckPasswordPolicy("short1"), ErrWeakPassword)
	assert.ErrorIs(t, CheckPasswordPolicy("lettersonly"), ErrWeakPassword)
	assert.ErrorIs(t, CheckPasswordPolicy("1234567890"), ErrWeakPassword)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("protein42")
	assert.NoError(t, err)
	assert.NotEqual(t, "protein42", hash)
	assert.True(t, VerifyPassword(hash, "protein42"))
	assert.False(t, VerifyPassword(hash, "protein43"))
}

func TestMintAndParseToken(t *testing.T) {
	c := &domain.Customer{ID: 42, Email: "jamie@example.com", Level: "customer"}
	now := time.Now()

	token, err := MintToken(c, "secret-key", now)
	assert.NoError(t, err)

	claims, err := ParseToken(token, "secret-key")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.CustomerId)
	assert.Equal(t, "customer", claims.Level)
	assert.Equal(t, "jamie@example.com", claims.Subject)
	assert.WithinDuration(t, now.Add(SessionTTL), claims.ExpiresAt.Time, time.Second)
}

func TestParseTokenWrongSecret(t *testing.T) {
	c := &domain.Customer{ID: 42, Email: "jamie@example.com", Level: "customer"}
	token, err := MintToken(c, "secret-key", time.Now())
	assert.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	c := &domain.Customer{ID: 42, Email: "jamie@example.com", Level: "customer"}
	token, err := MintToken(c, "secret-key", time.Now().Add(-SessionTTL-time.Hour))
	assert.NoError(t, err)

	_, err = ParseToken(token, "secret-key")
	assert.Error(t, err)
}
