package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"barriotips/api/internal/middleware"
	"barriotips/api/internal/models"
	"barriotips/api/internal/service"
)

type signupRequest struct {
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	FavouriteTips []string `json:"favouriteTips"`
}

type userResponse struct {
	ID            string   `json:"_id"`
	Email         string   `json:"email"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	UserRole      string   `json:"userRole"`
	FavouriteTips []string `json:"favouriteTips"`
}

func newUserResponse(user models.User, favourites []string) userResponse {
	if favourites == nil {
		favourites = []string{}
	}
	return userResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		UserRole:      string(user.Role),
		FavouriteTips: favourites,
	}
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		FavouriteTips: req.FavouriteTips,
	})
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": newUserResponse(user, req.FavouriteTips)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authToken": result.AuthToken,
		"firstName": result.FirstName,
	})
}

// Verify returns the decoded token payload; the token was already checked
// by the authentication middleware.
func (h HandlerSet) Verify(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, claims)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), claims.UserID, req.Password); err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password has been updated"})
}

// GetUser is self-only: requesting another user's profile fails with 401
// even when the record exists.
func (h HandlerSet) GetUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userID := c.Param("userId")
	if claims.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User doesn't match."})
		return
	}

	user, favourites, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, favourites))
}

type updateRoleRequest struct {
	UserRole string `json:"userRole"`
}

func (h HandlerSet) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.authService.UpdateRole(c.Request.Context(), c.Param("userId"), req.UserRole)
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}

func (h HandlerSet) ListFavourites(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	favourites, err := h.authService.ListFavourites(c.Request.Context(), claims.UserID)
	if err != nil {
		h.authError(c, err)
		return
	}
	if favourites == nil {
		favourites = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"favouriteTips": favourites})
}

func (h HandlerSet) ToggleFavourite(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	favourites, err := h.authService.ToggleFavourite(c.Request.Context(), claims.UserID, c.Param("tipId"))
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, favourites)
}

func (h HandlerSet) authError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Check your username or password."})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("auth operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
	}
}
