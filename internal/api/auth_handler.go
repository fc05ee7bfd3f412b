package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/metrics"
	"nclx/gymnotetaker/internal/service"
)

// AuthHandler serves account, session and profile routes.
type AuthHandler struct {
	accounts service.AccountService
	profiles service.ProfileService
	metrics  *metrics.Manager
}

func NewAuthHandler(accounts service.AccountService, profiles service.ProfileService, m *metrics.Manager) *AuthHandler {
	return &AuthHandler{accounts: accounts, profiles: profiles, metrics: m}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// AccountResponse excludes the password hash.
type AccountResponse struct {
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

type CreateProfileRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration details"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapAccountToResponse(account))
}

// Login godoc
// @Summary Start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} gin.H "Invalid credentials"
// @Failure 429 {object} gin.H "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, account, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			h.metrics.CounterLogins.WithLabelValues("rejected").Inc()
		}
		respondWithServiceError(c, err)
		return
	}
	h.metrics.CounterLogins.WithLabelValues("ok").Inc()

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Account: MapAccountToResponse(account),
	})
}

// Logout godoc
// @Summary Revoke the current session
// @Tags Auth
// @Success 204
// @Failure 401 {object} gin.H "No valid session"
// @Router /auth/session [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(ContextTokenKey)
	if err := h.accounts.Logout(c.Request.Context(), token); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateProfile godoc
// @Summary Create the profile document of the signed-in account
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body CreateProfileRequest true "Profile"
// @Success 201 {object} domain.User
// @Failure 409 {object} gin.H "Profile already exists"
// @Router /users [post]
func (h *AuthHandler) CreateProfile(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profiles.CreateProfile(c.Request.Context(), accountID, req.Email, req.Username)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me godoc
// @Summary Current user
// @Description Returns the profile of the signed-in account, falling back to account data when no profile exists.
// @Tags Users
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} gin.H "No valid session"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := h.profiles.GetByAccountID(c.Request.Context(), accountID)
	if err == nil {
		c.JSON(http.StatusOK, user)
		return
	}
	if !errors.Is(err, service.ErrProfileNotFound) {
		respondWithServiceError(c, err)
		return
	}

	account, err := h.accounts.Current(c.Request.Context(), accountID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.User{
		ID:        account.ID,
		AccountID: account.ID,
		Email:     account.Email,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	})
}

// MapAccountToResponse converts a domain Account to an AccountResponse DTO.
func MapAccountToResponse(account *domain.Account) AccountResponse {
	if account == nil {
		return AccountResponse{}
	}
	return AccountResponse{
		AccountID: account.ID,
		Email:     account.Email,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
}
