package model

// User is an account row. ResetCode and ResetExpiresAt are either both set
// or both null; they describe the single in-flight password reset, if any.
type User struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	PasswordHash   string  `json:"-"`
	ResetCode      *string `json:"-"`
	ResetExpiresAt *int64  `json:"-"`
	Ctime          int64   `json:"ctime"`
	Mtime          int64   `json:"mtime"`
}

// HasPendingReset reports whether a reset code is currently stored.
func (u *User) HasPendingReset() bool {
	return u.ResetCode != nil && u.ResetExpiresAt != nil
}
