package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/classboard/classboard/internal/pkg/errors"
	"github.com/classboard/classboard/internal/pkg/response"
)

// handleError maps service errors onto the HTTP contract. Anything not in the
// table is a dependency failure: logged in full, returned as a generic 500.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case err == appErr.ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "InvalidCredentials", "invalid credentials")
	case err == appErr.ErrForbidden:
		response.Error(c, http.StatusForbidden, "Forbidden", "forbidden")
	case err == appErr.ErrNotFound:
		response.Error(c, http.StatusNotFound, "AccountNotFound", "account not found")
	case err == appErr.ErrConflict:
		response.Error(c, http.StatusConflict, "UsernameTaken", "username already taken")
	case err == appErr.ErrNoResetPending:
		response.Error(c, http.StatusBadRequest, "NoResetPending", "no reset pending")
	case err == appErr.ErrCodeMismatch:
		response.Error(c, http.StatusBadRequest, "CodeMismatch", "invalid code")
	case err == appErr.ErrCodeExpired:
		response.Error(c, http.StatusBadRequest, "CodeExpired", "code expired")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "MissingFields", "invalid request")
	case err == appErr.ErrTooMany:
		response.Error(c, http.StatusTooManyRequests, "RateLimited", "too many requests")
	default:
		response.Error(c, http.StatusInternalServerError, "Internal", "internal error")
	}
}
