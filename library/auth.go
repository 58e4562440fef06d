package library

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Authentication is backed by the persistent store: credential rows keyed
// by email plus a single persisted session row, so login state survives
// process restarts. The query layer and collections never read
// credentials; callers only see the resulting session's role and name.

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Register creates a user record plus its credential row and returns the
// new user's ID. Registering an email that already has a credential fails
// with ErrEmailTaken before anything is written.
func (l *Library) Register(email, password, name string, role Role) (string, error) {
	if err := required("email", email); err != nil {
		return "", err
	}
	if err := required("name", name); err != nil {
		return "", err
	}
	if len(password) < 6 {
		return "", fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}
	if _, err := l.store.Credentials.Get(email); err == nil {
		return "", fmt.Errorf("%s: %w", email, ErrEmailTaken)
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if role == "" {
		role = RoleStudent
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := l.AddUser(User{Name: name, Email: email, Role: role})
	if err != nil {
		return "", err
	}

	cred := Credential{
		Email:        email,
		UserID:       user.ID,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	if err := l.store.Credentials.Add(cred); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Authenticate checks the email/password pair and persists the resulting
// session. A missing credential and a wrong password both come back as
// ErrInvalidCredentials.
func (l *Library) Authenticate(email, password string) (Session, error) {
	cred, err := l.store.Credentials.Get(email)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := verifyPassword(cred.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	sess := Session{
		ID:       SessionID,
		Email:    cred.Email,
		Name:     cred.Name,
		Role:     cred.Role,
		Token:    uuid.NewString(),
		IssuedAt: time.Now(),
	}
	if err := l.store.Sessions.Put(sess); err != nil {
		return Session{}, err
	}
	l.SetActor(cred.Name)
	return sess, nil
}

// CurrentSession returns the persisted login state, if any.
func (l *Library) CurrentSession() (Session, error) {
	sess, err := l.store.Sessions.Get(SessionID)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrNotAuthenticated
	}
	return sess, err
}

// Logout drops the session row. Logging out while logged out is a no-op.
func (l *Library) Logout() error {
	return l.store.Sessions.Delete(SessionID)
}
