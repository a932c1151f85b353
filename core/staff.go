package core

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Staff is the administrative account allowed to change university records.
type Staff struct {
	Username string
}

// HashPassword returns the bcrypt hash to put in StaffConfig.PasswordHash.
func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}

// Authenticate checks the credentials against the configured staff account.
func (sc StaffConfig) Authenticate(username, pwd string) (Staff, error) {
	if sc.PasswordHash == "" || username != sc.Username {
		return Staff{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sc.PasswordHash), []byte(pwd)); err != nil {
		return Staff{}, ErrInvalidCredentials
	}
	return Staff{Username: sc.Username}, nil
}
