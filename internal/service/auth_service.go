package service

import (
	"context"
	"time"

	appErr "github.com/classboard/classboard/internal/pkg/errors"
	"github.com/classboard/classboard/internal/model"
	"github.com/classboard/classboard/internal/pkg/jwt"
	"github.com/classboard/classboard/internal/pkg/password"
	"github.com/classboard/classboard/internal/pkg/timeutil"
)

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Register(ctx context.Context, username, plainPassword string) (*model.User, error) {
	now := timeutil.NowUnix()
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           newID(),
		Username:     username,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns a signed token. Unknown username and wrong password both come
// back as ErrUnauthorized so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", appErr.ErrUnauthorized
	}
	return jwt.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtTTL)
}
