package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	l := tempLibrary(t)

	id, err := l.Register("alice@library.local", "s3cret-pw", "Alice Johnson", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// A user record exists alongside the credential.
	user, err := l.GetUser(id)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", user.Name)
	assert.Equal(t, RoleAdmin, user.Role)

	sess, err := l.Authenticate("alice@library.local", "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", sess.Name)
	assert.Equal(t, RoleAdmin, sess.Role)
	assert.NotEmpty(t, sess.Token)
	assert.False(t, sess.IssuedAt.IsZero())
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("bob@library.local", "password1", "Bob", RoleStudent)
	require.NoError(t, err)

	_, err = l.Register("bob@library.local", "password2", "Other Bob", RoleStudent)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The failed attempt created no second user.
	users, err := l.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("carol@library.local", "12345", "Carol", RoleStudent)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("dave@library.local", "correct-pw", "Dave", RoleStudent)
	require.NoError(t, err)

	_, err = l.Authenticate("dave@library.local", "wrong-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Authenticate("nobody@library.local", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordHashNotPlaintext(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("eve@library.local", "visible-pw", "Eve", RoleStudent)
	require.NoError(t, err)

	cred, err := l.store.Credentials.Get("eve@library.local")
	require.NoError(t, err)
	assert.NotEqual(t, "visible-pw", cred.PasswordHash)
	assert.NotContains(t, cred.PasswordHash, "visible-pw")
}

func TestSessionPersistsAcrossReopen(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("frank@library.local", "frank-pw", "Frank", RoleTeacher)
	require.NoError(t, err)
	_, err = l.Authenticate("frank@library.local", "frank-pw")
	require.NoError(t, err)

	// A fresh library over the same store still sees the session.
	l2 := NewLibrary(l.store)
	sess, err := l2.CurrentSession()
	require.NoError(t, err)
	assert.Equal(t, "Frank", sess.Name)
}

func TestLogout(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("grace@library.local", "grace-pw", "Grace", RoleStudent)
	require.NoError(t, err)
	_, err = l.Authenticate("grace@library.local", "grace-pw")
	require.NoError(t, err)

	require.NoError(t, l.Logout())

	_, err = l.CurrentSession()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// Logging out while logged out is a no-op.
	assert.NoError(t, l.Logout())
}

func TestAuthenticateSetsAuditActor(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.Register("hank@library.local", "hank-pw", "Hank", RoleAdmin)
	require.NoError(t, err)
	_, err = l.Authenticate("hank@library.local", "hank-pw")
	require.NoError(t, err)

	assert.Equal(t, "Hank", l.Actor())

	_, err = l.AddBook(Book{Title: "Audited", Author: "A"})
	require.NoError(t, err)

	entries, err := l.ListActivity()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "Hank", entries[0].User)
}
