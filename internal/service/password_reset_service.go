package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	appErr "github.com/classboard/classboard/internal/pkg/errors"
	"github.com/classboard/classboard/internal/pkg/password"
)

const (
	resetCodeSpace     = 1000000 // 6 digits, leading zeros kept
	resetExpireMinutes = 10
)

// PasswordResetService runs the one-time-code recovery cycle. Codes are
// persisted on the account row, so a pending reset survives restarts and is
// shared across instances. At most one reset is live per account; requesting
// again overwrites the previous code.
type PasswordResetService struct {
	users  UserStore
	sender EmailSender
	now    func() time.Time
}

func NewPasswordResetService(users UserStore, sender EmailSender) *PasswordResetService {
	return &PasswordResetService{users: users, sender: sender, now: time.Now}
}

// RequestReset stores a fresh code with a 10-minute expiry and mails it to
// the account's registered address.
func (s *PasswordResetService) RequestReset(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	now := s.now()
	expiresAt := now.Add(resetExpireMinutes * time.Minute).Unix()
	if err := s.users.SetResetCode(ctx, user.ID, code, expiresAt, now.Unix()); err != nil {
		return err
	}
	body := fmt.Sprintf("Your password reset code is: %s. It expires in %d minutes.", code, resetExpireMinutes)
	if err := s.sender.Send(user.Username, "Password Reset Code", body); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

// ConsumeReset validates the supplied code and swaps in the new password.
// Expiry is evaluated here, lazily; no background job is involved. The store
// update is conditioned on the code still matching, so of two concurrent
// consumers only one succeeds and the other sees ErrNoResetPending.
func (s *PasswordResetService) ConsumeReset(ctx context.Context, username, code, newPassword string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !user.HasPendingReset() {
		return appErr.ErrNoResetPending
	}
	if *user.ResetCode != code {
		return appErr.ErrCodeMismatch
	}
	now := s.now()
	if now.Unix() >= *user.ResetExpiresAt {
		return appErr.ErrCodeExpired
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.ConsumeResetCode(ctx, username, code, hash, now.Unix()); err != nil {
		if appErr.IsNotFound(err) {
			// Raced with another consumption of the same code.
			return appErr.ErrNoResetPending
		}
		return err
	}
	return nil
}

// generateCode draws a uniform 6-digit code as a fixed-width string so a
// leading zero is never lost.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
