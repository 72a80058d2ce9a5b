package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/classboard/classboard/internal/middleware"
	appErr "github.com/classboard/classboard/internal/pkg/errors"
	"github.com/classboard/classboard/internal/pkg/response"
	"github.com/classboard/classboard/internal/service"
)

type AuthHandler struct {
	auth  *service.AuthService
	reset *service.PasswordResetService
}

func NewAuthHandler(auth *service.AuthService, reset *service.PasswordResetService) *AuthHandler {
	return &AuthHandler{auth: auth, reset: reset}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type requestResetRequest struct {
	Email string `json:"email"`
}

type verifyResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		missingFields(c)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"id": user.ID, "username": user.Username})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		missingFields(c)
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

// RequestReset acknowledges generically; the code travels only over the mail
// channel. An unknown address is reported as 404, a documented tradeoff for
// this self-service flow.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		missingFields(c)
		return
	}
	if err := h.reset.RequestReset(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "reset code sent"})
}

func (h *AuthHandler) VerifyReset(c *gin.Context) {
	var req verifyResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		missingFields(c)
		return
	}
	if err := h.reset.ConsumeReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		// On this endpoint an unknown account is a plain validation failure,
		// reported alongside the other reason codes.
		if appErr.IsNotFound(err) {
			response.Error(c, http.StatusBadRequest, "AccountNotFound", "account not found")
			return
		}
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password reset successful"})
}

// Protected echoes the identity the token middleware attached.
func (h *AuthHandler) Protected(c *gin.Context) {
	userID, _ := c.Get(middleware.ContextUserIDKey)
	username, _ := c.Get(middleware.ContextUsernameKey)
	response.Success(c, gin.H{"id": userID, "username": username})
}

func missingFields(c *gin.Context) {
	response.Error(c, http.StatusBadRequest, "MissingFields", "missing required fields")
}
