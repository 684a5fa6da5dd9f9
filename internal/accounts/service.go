// Package accounts covers registration, the authentication check, and the
// admin predicate over the users collection.
package accounts

import (
	"context"
	"strings"

	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	"github.com/sneakhead/sneakhead-backend/pkg/config"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/security"
)

var (
	// ErrUserExists signals a registration against a taken username.
	ErrUserExists = pkgerrors.New(pkgerrors.CodeConflict, "user already exists")
	// ErrInvalidCredentials signals a failed authentication check. Unknown
	// username and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")
)

// User is one account record. Username is the identity, matched
// case-sensitively.
type User struct {
	Username string     `json:"username"`
	Password Credential `json:"password"`
	IsAdmin  bool       `json:"isAdmin,omitempty"`
}

// Collection is the persisted shape: username to user record.
type Collection map[string]User

// ServiceParams groups dependencies for the account service. When
// HashPasswords is set, new registrations store an Argon2id credential
// instead of the plain value; existing records verify either way.
type ServiceParams struct {
	Store         *docstore.Store
	Locks         *lockmanager.Manager
	HashPasswords bool
	Password      config.PasswordConfig
}

// Service exposes the account workflow.
type Service interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) error
	IsAdminUser(ctx context.Context, username string) (bool, error)
}

type service struct {
	store         *docstore.Store
	locks         *lockmanager.Manager
	hashPasswords bool
	passwordCfg   config.PasswordConfig
}

// NewService builds an account service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Locks == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lock manager is required")
	}
	return &service{
		store:         params.Store,
		locks:         params.Locks,
		hashPasswords: params.HashPasswords,
		passwordCfg:   params.Password,
	}, nil
}

// Register stores a new non-admin user, rejecting a taken username.
func (s *service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	credential := Credential(password)
	if s.hashPasswords {
		encoded, err := security.HashPassword(password, s.passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode credential")
		}
		credential = Credential(encoded)
	}

	unlock := s.locks.Lock(docstore.CollectionUsers)
	defer unlock()

	users := Collection{}
	if err := s.store.Load(docstore.CollectionUsers, &users); err != nil {
		return err
	}

	if _, exists := users[username]; exists {
		return ErrUserExists
	}

	users[username] = User{Username: username, Password: credential, IsAdmin: false}
	return s.store.Save(docstore.CollectionUsers, users)
}

// Authenticate verifies the password against the stored credential.
func (s *service) Authenticate(ctx context.Context, username, password string) error {
	user, ok, err := s.find(username)
	if err != nil {
		return err
	}
	if !ok || !user.Password.Matches(password) {
		return ErrInvalidCredentials
	}
	return nil
}

// IsAdminUser is true only for an existing user with the admin flag set.
func (s *service) IsAdminUser(ctx context.Context, username string) (bool, error) {
	user, ok, err := s.find(username)
	if err != nil {
		return false, err
	}
	return ok && user.IsAdmin, nil
}

func (s *service) find(username string) (User, bool, error) {
	users := Collection{}
	if err := s.store.Load(docstore.CollectionUsers, &users); err != nil {
		return User{}, false, err
	}
	user, ok := users[username]
	return user, ok, nil
}
