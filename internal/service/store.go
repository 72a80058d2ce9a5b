package service

import (
	"context"

	"github.com/classboard/classboard/internal/model"
)

// UserStore is the persistence boundary for accounts. *repo.UserRepo is the
// production implementation; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	SetResetCode(ctx context.Context, userID, code string, expiresAt, mtime int64) error
	ConsumeResetCode(ctx context.Context, username, code, passwordHash string, mtime int64) error
}
