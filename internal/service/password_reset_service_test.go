package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/classboard/classboard/internal/pkg/errors"
	"github.com/classboard/classboard/internal/pkg/password"
)

func newTestResetService(t *testing.T) (*PasswordResetService, *fakeUserStore, *captureSender, *time.Time) {
	t.Helper()
	store := newFakeUserStore()
	sender := &captureSender{}
	svc := NewPasswordResetService(store, sender)
	now := time.Now()
	svc.now = func() time.Time { return now }

	auth := NewAuthService(store, []byte("secret"), time.Hour)
	_, err := auth.Register(context.Background(), "alice@example.com", "old-password")
	require.NoError(t, err)
	return svc, store, sender, &now
}

func TestRequestResetUnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestResetService(t)
	err := svc.RequestReset(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestResetSingleUse(t *testing.T) {
	svc, store, sender, _ := newTestResetService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestReset(ctx, "alice@example.com"))
	code := sender.lastCode()
	require.Len(t, code, 6)

	require.NoError(t, svc.ConsumeReset(ctx, "alice@example.com", code, "new-password"))

	user, err := store.GetByUsername(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, user.HasPendingReset())
	require.NoError(t, password.Compare(user.PasswordHash, "new-password"))

	err = svc.ConsumeReset(ctx, "alice@example.com", code, "another-password")
	require.ErrorIs(t, err, appErr.ErrNoResetPending)
}

func TestConsumeResetCodeMismatch(t *testing.T) {
	svc, _, sender, _ := newTestResetService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestReset(ctx, "alice@example.com"))
	wrong := "000000"
	if sender.lastCode() == wrong {
		wrong = "000001"
	}
	err := svc.ConsumeReset(ctx, "alice@example.com", wrong, "new-password")
	require.ErrorIs(t, err, appErr.ErrCodeMismatch)
}

func TestConsumeResetExpired(t *testing.T) {
	svc, _, sender, now := newTestResetService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestReset(ctx, "alice@example.com"))
	code := sender.lastCode()

	*now = now.Add(10 * time.Minute)
	err := svc.ConsumeReset(ctx, "alice@example.com", code, "new-password")
	require.ErrorIs(t, err, appErr.ErrCodeExpired)
}

func TestRequestResetOverwritesPendingCode(t *testing.T) {
	svc, _, sender, _ := newTestResetService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestReset(ctx, "alice@example.com"))
	first := sender.lastCode()
	require.NoError(t, svc.RequestReset(ctx, "alice@example.com"))
	second := sender.lastCode()

	if first == second {
		t.Skip("codes collided; overwrite indistinguishable")
	}
	err := svc.ConsumeReset(ctx, "alice@example.com", first, "new-password")
	require.ErrorIs(t, err, appErr.ErrCodeMismatch)

	require.NoError(t, svc.ConsumeReset(ctx, "alice@example.com", second, "new-password"))
}

func TestConsumeResetWithoutRequest(t *testing.T) {
	svc, _, _, _ := newTestResetService(t)
	err := svc.ConsumeReset(context.Background(), "alice@example.com", "123456", "new-password")
	require.ErrorIs(t, err, appErr.ErrNoResetPending)
}

func TestRequestResetDeliveryFailure(t *testing.T) {
	svc, _, sender, _ := newTestResetService(t)
	sender.failed = true

	err := svc.RequestReset(context.Background(), "alice@example.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, appErr.ErrNotFound)
}

func TestGenerateCodeFixedWidth(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}
