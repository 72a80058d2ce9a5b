package password

import "golang.org/x/crypto/bcrypt"

// Hash computes a salted bcrypt hash. The salt is random per call, so two
// hashes of the same password differ but both verify.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns a non-nil error when plain does not match hash. A malformed
// hash is reported as a mismatch, never a panic.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
