package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"barriotips/api/internal/ids"
	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
	"barriotips/api/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries a user-facing message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// Final domain label must be at least two characters, mirroring the
// signup contract ("a@b.co" accepted, "a@b" rejected).
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// UserStore is the persistence surface the auth flows need; satisfied by
// repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
	ListFavourites(ctx context.Context, userID string) ([]string, error)
	AddFavourite(ctx context.Context, userID string, tipID string) error
	RemoveFavourite(ctx context.Context, userID string, tipID string) error
}

type AuthService struct {
	users  UserStore
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

type SignupInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	FavouriteTips []string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return models.User{}, validationErr("Provide email, password, first and last name")
	}
	if !emailPattern.MatchString(input.Email) {
		return models.User{}, validationErr("Provide a valid email address.")
	}
	if err := checkPasswordStrength(input.Password); err != nil {
		return models.User{}, err
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	// Role is always USER at signup; it cannot be self-escalated here.
	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         models.UserRoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	for _, tipID := range input.FavouriteTips {
		if err := s.users.AddFavourite(ctx, user.ID, tipID); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("seed favourite failed")
		}
	}

	return user, nil
}

type LoginResult struct {
	AuthToken string
	FirstName string
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return LoginResult{}, validationErr("Provide email and password.")
	}

	// Unknown email and wrong password produce the same error so the
	// response does not reveal which one failed.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	favourites, err := s.users.ListFavourites(ctx, user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("list favourites: %w", err)
	}

	token, err := s.tokens.Issue(user, favourites)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AuthToken: token,
		FirstName: user.FirstName,
	}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, password string) error {
	if password == "" {
		return validationErr("Provide a password")
	}
	if err := checkPasswordStrength(password); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (models.User, []string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, nil, ErrUserNotFound
		}
		return models.User{}, nil, err
	}

	favourites, err := s.users.ListFavourites(ctx, userID)
	if err != nil {
		return models.User{}, nil, err
	}
	return user, favourites, nil
}

// UpdateRole applies the assignable-role mapping and persists the result.
// Unrecognized input (SUPERADMIN included) demotes to USER.
func (s *AuthService) UpdateRole(ctx context.Context, userID string, requested string) (models.UserRole, error) {
	role := models.AssignableRole(requested)
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return role, nil
}

func (s *AuthService) ListFavourites(ctx context.Context, userID string) ([]string, error) {
	return s.users.ListFavourites(ctx, userID)
}

// ToggleFavourite flips tipID's membership in the user's favourites and
// returns the updated set. The write is a single atomic set-add or
// set-remove at the store, so concurrent toggles cannot lose each other's
// update. The target tip is not checked for existence.
func (s *AuthService) ToggleFavourite(ctx context.Context, userID string, tipID string) ([]string, error) {
	favourites, err := s.users.ListFavourites(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, added := models.ToggleFavourite(favourites, tipID)
	if added {
		err = s.users.AddFavourite(ctx, userID, tipID)
	} else {
		err = s.users.RemoveFavourite(ctx, userID, tipID)
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func checkPasswordStrength(password string) error {
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if len(password) < 8 || !hasDigit || !hasLower || !hasUpper {
		return validationErr("Password must have at least 8 characters and contain at least one number, one lowercase and one uppercase letter.")
	}
	return nil
}
