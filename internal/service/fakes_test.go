package service

import (
	"context"
	"errors"
	"regexp"
	"sync"

	"github.com/classboard/classboard/internal/model"
	appErr "github.com/classboard/classboard/internal/pkg/errors"
)

// fakeUserStore keeps accounts in a map and mimics the repo's conditional
// update semantics, including the compare-and-swap on reset consumption.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return appErr.ErrConflict
	}
	clone := *user
	f.users[user.Username] = &clone
	return nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[username]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *user
	if user.ResetCode != nil {
		code := *user.ResetCode
		clone.ResetCode = &code
	}
	if user.ResetExpiresAt != nil {
		exp := *user.ResetExpiresAt
		clone.ResetExpiresAt = &exp
	}
	return &clone, nil
}

func (f *fakeUserStore) SetResetCode(ctx context.Context, userID, code string, expiresAt, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == userID {
			user.ResetCode = &code
			user.ResetExpiresAt = &expiresAt
			user.Mtime = mtime
			return nil
		}
	}
	return appErr.ErrNotFound
}

func (f *fakeUserStore) ConsumeResetCode(ctx context.Context, username, code, passwordHash string, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[username]
	if !ok || user.ResetCode == nil || *user.ResetCode != code {
		return appErr.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetCode = nil
	user.ResetExpiresAt = nil
	user.Mtime = mtime
	return nil
}

var codePattern = regexp.MustCompile(`\d{6}`)

// captureSender records outbound mail instead of delivering it.
type captureSender struct {
	mu     sync.Mutex
	failed bool
	sent   []string
}

func (s *captureSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
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
