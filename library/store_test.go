package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempStore opens a store on a throwaway database file.
func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// tempLibrary opens an unseeded library on a throwaway database file.
func tempLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(tempStore(t))
}

func TestAddAndGetRoundTrip(t *testing.T) {
	s := tempStore(t)

	ret := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := Borrowing{
		ID:         "b1",
		BookID:     "book-1",
		UserID:     "user-1",
		BorrowDate: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 2, 15, 9, 30, 0, 0, time.UTC),
		ReturnDate: &ret,
		Status:     BorrowingReturned,
	}
	require.NoError(t, s.Borrowings.Add(b))

	got, err := s.Borrowings.Get("b1")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestAddDuplicateKeyFails(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.Add(Book{ID: "1", Title: "First", Author: "A", Status: BookAvailable}))

	err := s.Books.Add(Book{ID: "1", Title: "Second", Author: "B", Status: BookAvailable})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// The original record is untouched.
	got, err := s.Books.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestPutReplacesWholeRecord(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.Add(Book{
		ID: "1", Title: "Old Title", Author: "Author", Description: "long description",
		Status: BookAvailable,
	}))

	// Put with an empty Description; the old value must not survive.
	require.NoError(t, s.Books.Put(Book{
		ID: "1", Title: "New Title", Author: "Author", Status: BookBorrowed,
	}))

	got, err := s.Books.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Empty(t, got.Description)
	assert.Equal(t, BookBorrowed, got.Status)
}

func TestPutInsertsWhenAbsent(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.Put(Book{ID: "1", Title: "Upserted", Author: "A", Status: BookAvailable}))

	got, err := s.Books.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Upserted", got.Title)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := tempStore(t)

	_, err := s.Books.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	s := tempStore(t)

	assert.NoError(t, s.Books.Delete("no-such-id"))
}

func TestDeleteRemovesRecord(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.Add(Book{ID: "1", Title: "T", Author: "A", Status: BookAvailable}))
	require.NoError(t, s.Books.Delete("1"))

	_, err := s.Books.Get("1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkAddAllOrNothing(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.Add(Book{ID: "2", Title: "Existing", Author: "A", Status: BookAvailable}))

	err := s.Books.BulkAdd([]Book{
		{ID: "1", Title: "One", Author: "A", Status: BookAvailable},
		{ID: "2", Title: "Dup", Author: "A", Status: BookAvailable},
		{ID: "3", Title: "Three", Author: "A", Status: BookAvailable},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// Nothing from the batch landed, only the pre-existing row remains.
	n, err := s.Books.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBulkAddEmptyBatch(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.BulkAdd(nil))

	n, err := s.Books.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAllReturnsEveryRecord(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Users.BulkAdd([]User{
		{ID: "1", Name: "A", Email: "a@x", Role: RoleAdmin, Status: UserActive},
		{ID: "2", Name: "B", Email: "b@x", Role: RoleStudent, Status: UserActive},
		{ID: "3", Name: "C", Email: "c@x", Role: RoleTeacher, Status: UserInactive},
	}))

	all, err := s.Users.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := s.Users.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCollectionsAreIndependent(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Books.Add(Book{ID: "1", Title: "T", Author: "A", Status: BookAvailable}))
	require.NoError(t, s.Users.Add(User{ID: "1", Name: "N", Email: "n@x", Role: RoleStudent, Status: UserActive}))

	// Same key in two collections never collides, and deleting from one
	// leaves the other intact.
	require.NoError(t, s.Books.Delete("1"))
	_, err := s.Users.Get("1")
	assert.NoError(t, err)
}

func TestReopenPersistsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Books.Add(Book{ID: "1", Title: "Kept", Author: "A", Status: BookAvailable}))
	require.NoError(t, s.Close())

	s2, err := OpenStore(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Books.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)
}

func TestNewIDMonotonic(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestErrorSentinelsDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrDuplicateKey))
	assert.False(t, errors.Is(ErrValidation, ErrNotFound))
}
