package handler_test

import (
	"errors"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/classboard/classboard/internal/handler"
	"github.com/classboard/classboard/internal/middleware"
	"github.com/classboard/classboard/internal/repo"
	"github.com/classboard/classboard/internal/service"
	"github.com/classboard/classboard/test/testutil"
)

var testJWTSecret = []byte("test-secret")

var codePattern = regexp.MustCompile(`\d{6}`)

type captureSender struct {
	mu   sync.Mutex
	fail bool
	sent []string
}

func (s *captureSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, body)
	return nil
}

func (s *captureSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return ""
	}
	return codePattern.FindString(s.sent[len(s.sent)-1])
}

type routerOptions struct {
	resetWindow time.Duration
	resetMax    int
}

func setupRouter(t *testing.T, opts routerOptions) (http.Handler, *captureSender, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(conn)
	sender := &captureSender{}
	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour)
	resetService := service.NewPasswordResetService(userRepo, sender)

	if opts.resetWindow == 0 {
		opts.resetWindow = 15 * time.Minute
	}
	if opts.resetMax == 0 {
		opts.resetMax = 5
	}

	deps := handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService, resetService),
		ResetLimit: middleware.ResetRateLimit(opts.resetWindow, opts.resetMax),
		JWTSecret:  testJWTSecret,
	}

	engine, err := webapi.NewEngine(
		"/api",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, sender, cleanup
}
