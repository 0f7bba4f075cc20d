package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barriotips/api/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:        "user-1",
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
		Role:      models.UserRoleEditor,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 6*time.Hour)

	token, err := svc.Issue(testUser(), []string{"tip-1", "tip-2"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.FirstName)
	assert.Equal(t, "EDITOR", claims.Role)
	assert.Equal(t, []string{"tip-1", "tip-2"}, claims.FavouriteTips)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(testUser(), nil)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Issue(testUser(), nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("definitely-not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		token   string
		wantErr bool
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc.def.ghi", "", true},
		{"missing token segment", "Bearer", "", true},
		{"empty token segment", "Bearer ", "", true},
		{"lowercase scheme", "bearer abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := TokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTokenInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}
