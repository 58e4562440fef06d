package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAllPopulatesEveryCollection(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	counts := map[string]func() (int, error){
		"books":         l.store.Books.Count,
		"users":         l.store.Users.Count,
		"borrowings":    l.store.Borrowings.Count,
		"fines":         l.store.Fines.Count,
		"reservations":  l.store.Reservations.Count,
		"notifications": l.store.Notifications.Count,
		"settings":      l.store.SettingsRows.Count,
		"profiles":      l.store.Profiles.Count,
	}
	for name, count := range counts {
		n, err := count()
		require.NoError(t, err, name)
		assert.Positive(t, n, "%s not seeded", name)
	}

	books, err := l.store.Books.Count()
	require.NoError(t, err)
	assert.Equal(t, 20, books)

	users, err := l.store.Users.Count()
	require.NoError(t, err)
	assert.Equal(t, 6, users)
}

func TestSeedAllIdempotent(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())
	require.NoError(t, l.SeedAll())
	require.NoError(t, l.SeedAll())

	n, err := l.store.Books.Count()
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestSeedSkipsNonEmptyCollection(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	// Delete one book, then seed again: the collection is non-empty so
	// the pass must not re-add anything.
	require.NoError(t, l.store.Books.Delete("1"))
	require.NoError(t, l.SeedAll())

	n, err := l.store.Books.Count()
	require.NoError(t, err)
	assert.Equal(t, 19, n)
}

func TestSeedOnlyFillsEmptyCollections(t *testing.T) {
	l := tempLibrary(t)

	// Pre-populate books only; seeding must leave them alone but still
	// fill every other collection.
	require.NoError(t, l.store.Books.Add(Book{ID: "mine", Title: "Mine", Author: "Me", Status: BookAvailable}))
	require.NoError(t, l.SeedAll())

	books, err := l.store.Books.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, books)

	users, err := l.store.Users.Count()
	require.NoError(t, err)
	assert.Equal(t, 6, users)
}

func TestSeededBorrowingDatesAgreeWithStatus(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	borrowings, err := l.store.Borrowings.All()
	require.NoError(t, err)
	require.Len(t, borrowings, 12)

	now := time.Now()
	for _, b := range borrowings {
		switch b.Status {
		case BorrowingReturned:
			require.NotNil(t, b.ReturnDate, "returned borrowing %s has no return date", b.ID)
			assert.True(t, b.ReturnDate.Before(now))
			assert.True(t, b.ReturnDate.After(b.BorrowDate))
		case BorrowingOverdue:
			assert.Nil(t, b.ReturnDate)
			assert.True(t, b.DueDate.Before(now), "overdue borrowing %s due in the future", b.ID)
		case BorrowingActive:
			assert.Nil(t, b.ReturnDate)
			assert.True(t, b.DueDate.After(now), "active borrowing %s already past due", b.ID)
		default:
			t.Fatalf("unexpected status %q", b.Status)
		}
	}
}

func TestSeededReferencesResolve(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	borrowings, err := l.store.Borrowings.All()
	require.NoError(t, err)
	for _, b := range borrowings {
		assert.NotEqual(t, "Unknown Book", l.BookLabel(b.BookID))
		assert.NotEqual(t, "Unknown User", l.UserLabel(b.UserID))
	}

	fines, err := l.store.Fines.All()
	require.NoError(t, err)
	for _, f := range fines {
		assert.NotEqual(t, "Unknown Borrowing", l.BorrowingLabel(f.BorrowingID))
	}
}

func TestSeededFineStatusMatchesPaidDate(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	fines, err := l.store.Fines.All()
	require.NoError(t, err)
	require.Len(t, fines, 8)

	for _, f := range fines {
		assert.GreaterOrEqual(t, f.Amount, 0.0)
		if f.Status == FinePaid {
			assert.NotNil(t, f.PaidDate, "paid fine %s has no paid date", f.ID)
		} else {
			assert.Nil(t, f.PaidDate, "unpaid fine %s has a paid date", f.ID)
		}
	}
}

func TestSeededSettingsAreDefaults(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSeedProfilesOnePerUser(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	users, err := l.store.Users.All()
	require.NoError(t, err)
	for _, u := range users {
		p, err := l.GetProfile(u.ID)
		require.NoError(t, err, "user %s has no profile", u.ID)
		assert.Equal(t, u.ID, p.UserID)
	}
}

func TestSeedLogsNoActivity(t *testing.T) {
	l := tempLibrary(t)
	require.NoError(t, l.SeedAll())

	n, err := l.store.Activities.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "seeding must not pollute the audit trail")
}
