// Package credentials keeps the session token and identity in the local store.
package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/agency/internal/localstore"
	"github.com/amonks/agency/task"
)

// ErrNotLoggedIn is returned when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in (run `ag login`)")

// ErrInvalidCredentials is returned when Save is given incomplete values.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	tokenKey  = localstore.NewKey("token", "")
	roleKey   = localstore.NewKey("role", "")
	userIDKey = localstore.NewKey("userId", 0)
)

// Credentials identify the logged-in user.
type Credentials struct {
	Token  string
	Role   task.Role
	UserID int
}

// LoggedIn reports whether a token is present.
func (c Credentials) LoggedIn() bool {
	return c.Token != ""
}

// Viewer returns the policy identity for these credentials.
func (c Credentials) Viewer() task.Viewer {
	return task.Viewer{UserID: c.UserID, Role: c.Role}
}

// Load reads the stored credentials. Missing values are zero.
func Load(store *localstore.Store) Credentials {
	return Credentials{
		Token:  localstore.Get(store, tokenKey),
		Role:   task.Role(localstore.Get(store, roleKey)),
		UserID: localstore.Get(store, userIDKey),
	}
}

// Require loads credentials and fails with ErrNotLoggedIn when there is no token.
func Require(store *localstore.Store) (Credentials, error) {
	creds := Load(store)
	if !creds.LoggedIn() {
		return Credentials{}, ErrNotLoggedIn
	}
	return creds, nil
}

// Save validates and stores credentials.
func Save(store *localstore.Store, creds Credentials) error {
	creds.Token = strings.TrimSpace(creds.Token)
	if creds.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidCredentials)
	}
	if creds.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidCredentials)
	}
	role, err := task.ParseRole(string(creds.Role))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if role == "" || role == task.RoleInactive {
		return fmt.Errorf("%w: role %q cannot log in", ErrInvalidCredentials, creds.Role)
	}

	localstore.Set(store, tokenKey, creds.Token)
	localstore.Set(store, roleKey, string(role))
	localstore.Set(store, userIDKey, creds.UserID)
	return nil
}

// Clear removes the stored credentials.
func Clear(store *localstore.Store) error {
	for _, name := range []string{tokenKey.Name, roleKey.Name, userIDKey.Name} {
		if err := store.Delete(name); err != nil {
			return err
		}
	}
	return nil
}

// TokenSource returns a function reading the current token from store.
func TokenSource(store *localstore.Store) func() string {
	return func() string {
		return localstore.Get(store, tokenKey)
	}
}
