package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/classboard/classboard/internal/model"
	"github.com/classboard/classboard/internal/pkg/dbutil"
	appErr "github.com/classboard/classboard/internal/pkg/errors"
)

var userColumns = []string{"id", "username", "password_hash", "reset_code", "reset_expires_at", "ctime", "mtime"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"username": username})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var user model.User
	if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.ResetCode, &user.ResetExpiresAt, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetCode stores a fresh reset code and expiry, overwriting any pending
// one.
func (r *UserRepo) SetResetCode(ctx context.Context, userID, code string, expiresAt, mtime int64) error {
	where := map[string]interface{}{"id": userID}
	update := map[string]interface{}{
		"reset_code":       code,
		"reset_expires_at": expiresAt,
		"mtime":            mtime,
	}
	return r.update(ctx, where, update)
}

// ConsumeResetCode swaps in the new password hash and clears the reset fields
// in one statement, conditioned on the stored code still matching. The
// condition makes concurrent consumption single-winner: the loser gets
// ErrNotFound.
func (r *UserRepo) ConsumeResetCode(ctx context.Context, username, code, passwordHash string, mtime int64) error {
	where := map[string]interface{}{
		"username":   username,
		"reset_code": code,
	}
	update := map[string]interface{}{
		"password_hash":    passwordHash,
		"reset_code":       nil,
		"reset_expires_at": nil,
		"mtime":            mtime,
	}
	return r.update(ctx, where, update)
}

// ClearExpiredResets drops reset fields whose expiry is before cutoff.
// Hygiene only; consumption checks expiry on its own.
func (r *UserRepo) ClearExpiredResets(ctx context.Context, cutoff, mtime int64) (int64, error) {
	where := map[string]interface{}{"reset_expires_at <": cutoff}
	update := map[string]interface{}{
		"reset_code":       nil,
		"reset_expires_at": nil,
		"mtime":            mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *UserRepo) update(ctx context.Context, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
