package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
	"barriotips/api/internal/security"
)

// fakeUserStore is an in-memory UserStore for service tests. It counts
// store accesses so tests can assert that short-circuits happen before
// any lookup.
type fakeUserStore struct {
	users      map[string]models.User
	favourites map[string][]string
	calls      int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:      make(map[string]models.User),
		favourites: make(map[string][]string),
	}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	f.calls++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.calls++
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	f.calls++
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	f.calls++
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id string, role models.UserRole) error {
	f.calls++
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Role = role
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) ListFavourites(_ context.Context, userID string) ([]string, error) {
	f.calls++
	return append([]string(nil), f.favourites[userID]...), nil
}

func (f *fakeUserStore) AddFavourite(_ context.Context, userID string, tipID string) error {
	f.calls++
	for _, id := range f.favourites[userID] {
		if id == tipID {
			return nil
		}
	}
	f.favourites[userID] = append(f.favourites[userID], tipID)
	return nil
}

func (f *fakeUserStore) RemoveFavourite(_ context.Context, userID string, tipID string) error {
	f.calls++
	kept := f.favourites[userID][:0]
	for _, id := range f.favourites[userID] {
		if id != tipID {
			kept = append(kept, id)
		}
	}
	f.favourites[userID] = kept
	return nil
}

func newTestAuthService(store UserStore) *AuthService {
	tokens := security.NewTokenService("test-secret", 6*time.Hour)
	return NewAuthService(store, tokens, zerolog.Nop())
}

func validSignup() SignupInput {
	return SignupInput{
		Email:     "ana@example.com",
		Password:  "Abc12345",
		FirstName: "Ana",
		LastName:  "García",
	}
}

func TestSignupThenLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotContains(t, string(user.PasswordHash), "Abc12345")

	result, err := svc.Login(ctx, "ana@example.com", "Abc12345")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AuthToken)
	assert.Equal(t, "Ana", result.FirstName)
}

func TestSignupNormalizesEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	input := validSignup()
	input.Email = "  Ana@Example.COM "
	user, err := svc.Signup(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	// Case-insensitive duplicate detection.
	input.Email = "ANA@example.com"
	_, err = svc.Signup(ctx, input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupInput)
	}{
		{"empty email", func(in *SignupInput) { in.Email = "" }},
		{"empty password", func(in *SignupInput) { in.Password = "" }},
		{"empty first name", func(in *SignupInput) { in.FirstName = "" }},
		{"empty last name", func(in *SignupInput) { in.LastName = "" }},
		{"email without tld", func(in *SignupInput) { in.Email = "a@b" }},
		{"email without at", func(in *SignupInput) { in.Email = "a.com" }},
		{"short tld", func(in *SignupInput) { in.Email = "a@b.c" }},
		{"password without uppercase", func(in *SignupInput) { in.Password = "abc12345" }},
		{"password without digit", func(in *SignupInput) { in.Password = "Abcdefgh" }},
		{"password too short", func(in *SignupInput) { in.Password = "short1A" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			svc := newTestAuthService(store)

			input := validSignup()
			tt.mutate(&input)

			_, err := svc.Signup(context.Background(), input)
			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
			// Validation is resolved before any store call.
			assert.Zero(t, store.calls)
		})
	}
}

func TestSignupAcceptedVectors(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	input := validSignup()
	input.Email = "a@b.co"
	input.Password = "Abc12345"
	_, err := svc.Signup(context.Background(), input)
	assert.NoError(t, err)
}

func TestSignupSeedsFavourites(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	input := validSignup()
	input.FavouriteTips = []string{"tip-1", "tip-2"}
	user, err := svc.Signup(ctx, input)
	require.NoError(t, err)

	favourites, err := svc.ListFavourites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tip-1", "tip-2"}, favourites)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ana@example.com", "Wrong1234")
	_, noSuchUser := svc.Login(ctx, "nobody@example.com", "Abc12345")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, noSuchUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), noSuchUser.Error())
}

func TestLoginEmptyFields(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	var validation *ValidationError
	_, err := svc.Login(context.Background(), "", "Abc12345")
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Login(context.Background(), "ana@example.com", "")
	assert.ErrorAs(t, err, &validation)
}

func TestLoginTokenCarriesFavouritesSnapshot(t *testing.T) {
	store := newFakeUserStore()
	tokens := security.NewTokenService("test-secret", 6*time.Hour)
	svc := NewAuthService(store, tokens, zerolog.Nop())
	ctx := context.Background()

	input := validSignup()
	input.FavouriteTips = []string{"tip-9"}
	_, err := svc.Signup(ctx, input)
	require.NoError(t, err)

	result, err := svc.Login(ctx, "ana@example.com", "Abc12345")
	require.NoError(t, err)

	claims, err := tokens.Verify(result.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"tip-9"}, claims.FavouriteTips)
	assert.Equal(t, "USER", claims.Role)
}

func TestChangePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	var validation *ValidationError
	assert.ErrorAs(t, svc.ChangePassword(ctx, user.ID, ""), &validation)
	assert.ErrorAs(t, svc.ChangePassword(ctx, user.ID, "weak"), &validation)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "NewPass99"))

	_, err = svc.Login(ctx, "ana@example.com", "Abc12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ana@example.com", "NewPass99")
	assert.NoError(t, err)
}

func TestUpdateRole(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	role, err := svc.UpdateRole(ctx, user.ID, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, role)
	assert.Equal(t, models.UserRoleAdmin, store.users[user.ID].Role)

	// The ceiling: SUPERADMIN demotes to USER, as does garbage.
	role, err = svc.UpdateRole(ctx, user.ID, "SUPERADMIN")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, role)

	role, err = svc.UpdateRole(ctx, user.ID, "garbage")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, role)

	_, err = svc.UpdateRole(ctx, "missing-user", "ADMIN")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleFavourite(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	store.favourites[user.ID] = []string{"a", "b"}

	updated, err := svc.ToggleFavourite(ctx, user.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, updated)

	updated, err = svc.ToggleFavourite(ctx, user.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, updated)

	// The target tip is never validated for existence.
	updated, err = svc.ToggleFavourite(ctx, user.ID, "no-such-tip")
	require.NoError(t, err)
	assert.Contains(t, updated, "no-such-tip")
}
