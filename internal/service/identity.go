package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"go-music-api/internal/model"
)

// dummyHash is a valid bcrypt hash (cost 12) compared against when the
// username does not exist, so a miss costs the same as a wrong password and
// response timing does not reveal whether an account exists.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// IdentityValidator checks presented credentials against stored password
// hashes. It never logs or persists the plaintext password.
type IdentityValidator struct {
	users UserStore
}

func NewIdentityValidator(users UserStore) *IdentityValidator {
	return &IdentityValidator{users: users}
}

// Verify returns the matching user, or nil when the username is unknown or
// the password does not match. The two cases are deliberately
// indistinguishable to the caller.
func (v *IdentityValidator) Verify(ctx context.Context, username string, password string) (*model.User, error) {
	user, err := v.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	}
	if err != nil {
		return nil, persistenceErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return &user, nil
}
