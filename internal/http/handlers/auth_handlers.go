package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
	"github.com/you/authsvc/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	otpSvc  domain.OTPService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		otpSvc:  otpSvc,
	}
}

// GetOTPRequest represents a login code request
type GetOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	Code        string `json:"code" binding:"omitempty,len=6"`
	Type        string `json:"type" binding:"required,oneof=email google"`
	AccessToken string `json:"access_token"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	Email        string `json:"email" binding:"required,email"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateAccountRequest represents a profile update request
type UpdateAccountRequest struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
	Bio            *string `json:"bio"`
	Phone          *string `json:"phone"`
	AccountType    *string `json:"accountType" binding:"omitempty,oneof=public private"`
}

// GetOTP handles login code generation and delivery
func (h *AuthHandlers) GetOTP(c *gin.Context) {
	var req GetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.otpSvc.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		case errors.Is(err, domain.ErrDeliveryFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deliver login code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate login code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Login code has been sent to %s", email),
	})
}

// Login handles passwordless login with a code or a federated token
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != "google" && req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A login code is required"})
		return
	}
	if req.Type == "google" && req.AccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A federated access token is required"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), domain.LoginRequest{
		Email:          req.Email,
		Code:           req.Code,
		AuthType:       req.Type,
		FederatedToken: req.AccessToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login code"})
		case errors.Is(err, domain.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your login code has expired"})
		case errors.Is(err, domain.ErrFederatedTokenInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid federated identity token"})
		case errors.Is(err, domain.ErrUserConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Conflicting login attempt, please retry"})
		default:
			domain.NewAuditEvent(domain.UserLoginFailureEvent, req.Email).WithError(err).Log()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokenType":    result.TokenType,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"expiresIn":    result.ExpiresIn,
	})
}

// Refresh handles access token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.Email, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRefreshTokenInvalid), errors.Is(err, domain.ErrRefreshTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokenType":    result.TokenType,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"expiresIn":    result.ExpiresIn,
	})
}

// Logout handles user logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// Account handles reading the authenticated user's profile
func (h *AuthHandlers) Account(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.authSvc.Account(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get account details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountDetails": userResponse(account)})
}

// UpdateAccount handles partial profile updates
func (h *AuthHandlers) UpdateAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := domain.ProfileUpdate{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
		Bio:            req.Bio,
		Phone:          req.Phone,
	}
	if req.AccountType != nil {
		accountType := domain.AccountType(*req.AccountType)
		update.AccountType = &accountType
	}

	updated, err := h.authSvc.UpdateAccount(c.Request.Context(), user.ID, update)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	response := gin.H{"message": "Profile updated successfully"}
	for k, v := range userResponse(updated) {
		response[k] = v
	}
	c.JSON(http.StatusOK, response)
}

// PublicProfiles handles listing profiles visible to the requester
func (h *AuthHandlers) PublicProfiles(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profiles, err := h.authSvc.PublicProfiles(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list profiles"})
		return
	}

	responses := make([]gin.H, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, userResponse(profile))
	}
	c.JSON(http.StatusOK, gin.H{"publicProfiles": responses})
}

// userResponse is the user-safe profile projection
func userResponse(user *domain.User) gin.H {
	return gin.H{
		"uid":            user.UID,
		"name":           user.Name,
		"email":          user.Email,
		"profilePicture": user.ProfilePicture,
		"bio":            user.Bio,
		"phone":          user.Phone,
		"role":           user.Role,
		"accountType":    user.AccountType,
		"active":         user.Active,
		"createdAt":      user.CreatedAt,
	}
}
