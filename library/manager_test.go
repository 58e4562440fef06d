package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBookAssignsIDAndDefaults(t *testing.T) {
	l := tempLibrary(t)

	b, err := l.AddBook(Book{Title: "1984", Author: "George Orwell"})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, BookAvailable, b.Status)

	got, err := l.GetBook(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestAddBookValidation(t *testing.T) {
	l := tempLibrary(t)

	_, err := l.AddBook(Book{Title: "", Author: "A"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = l.AddBook(Book{Title: "T", Author: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddUserDefaults(t *testing.T) {
	l := tempLibrary(t)

	u, err := l.AddUser(User{Name: "Alice", Email: "alice@x"})
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, u.Role)
	assert.Equal(t, UserActive, u.Status)
	assert.False(t, u.JoinDate.IsZero())
}

func TestReturnBorrowingStampsDate(t *testing.T) {
	l := tempLibrary(t)

	book, err := l.AddBook(Book{Title: "T", Author: "A"})
	require.NoError(t, err)
	user, err := l.AddUser(User{Name: "N", Email: "n@x"})
	require.NoError(t, err)

	b, err := l.BorrowBook(book.ID, user.ID, time.Now().AddDate(0, 0, 14))
	require.NoError(t, err)
	assert.Equal(t, BorrowingActive, b.Status)

	require.NoError(t, l.ReturnBorrowing(b.ID))

	got, err := l.store.Borrowings.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, BorrowingReturned, got.Status)
	require.NotNil(t, got.ReturnDate)
	assert.WithinDuration(t, time.Now(), *got.ReturnDate, 5*time.Second)
}

func TestReturnMissingBorrowing(t *testing.T) {
	l := tempLibrary(t)
	assert.ErrorIs(t, l.ReturnBorrowing("no-such"), ErrNotFound)
}

func TestPayFineStampsPaidDate(t *testing.T) {
	l := tempLibrary(t)

	f, err := l.AddFine(Fine{BorrowingID: "b1", UserID: "u1", Amount: 3.5, Reason: "Overdue"})
	require.NoError(t, err)
	assert.Equal(t, FineUnpaid, f.Status)

	require.NoError(t, l.PayFine(f.ID))

	got, err := l.store.Fines.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, FinePaid, got.Status)
	require.NotNil(t, got.PaidDate)
}

func TestUpdateFineReplacesRecord(t *testing.T) {
	l := tempLibrary(t)

	f, err := l.AddFine(Fine{BorrowingID: "b1", UserID: "u1", Amount: 2, Reason: "Overdue"})
	require.NoError(t, err)

	f.Amount = 4.5
	f.Reason = "Overdue + damage"
	require.NoError(t, l.UpdateFine(f))

	got, err := l.store.Fines.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Amount)
	assert.Equal(t, "Overdue + damage", got.Reason)

	f.Amount = -1
	assert.ErrorIs(t, l.UpdateFine(f), ErrValidation)
}

func TestCancelReservationKeepsRow(t *testing.T) {
	l := tempLibrary(t)

	r, err := l.AddReservation(Reservation{BookID: "b1", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, ReservationPending, r.Status)
	assert.False(t, r.ReservationDate.IsZero())

	require.NoError(t, l.CancelReservation(r.ID))

	got, err := l.store.Reservations.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, ReservationCancelled, got.Status)
}

func TestDanglingReferencesRenderUnknown(t *testing.T) {
	l := tempLibrary(t)

	book, err := l.AddBook(Book{Title: "Vanishing", Author: "A"})
	require.NoError(t, err)
	user, err := l.AddUser(User{Name: "Ghost", Email: "g@x"})
	require.NoError(t, err)

	b, err := l.BorrowBook(book.ID, user.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	// Delete the referents; the borrowing stays and resolves to Unknown.
	require.NoError(t, l.DeleteBook(book.ID))
	require.NoError(t, l.DeleteUser(user.ID))

	got, err := l.store.Borrowings.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Book", l.BookLabel(got.BookID))
	assert.Equal(t, "Unknown User", l.UserLabel(got.UserID))
	assert.Equal(t, "Unknown Borrowing", l.BorrowingLabel("no-such"))
}

func TestFineOnDeletedBorrowingStillListed(t *testing.T) {
	l := tempLibrary(t)

	book, err := l.AddBook(Book{Title: "B", Author: "A"})
	require.NoError(t, err)
	user, err := l.AddUser(User{Name: "U", Email: "u@x"})
	require.NoError(t, err)
	b, err := l.BorrowBook(book.ID, user.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	f, err := l.AddFine(Fine{BorrowingID: b.ID, UserID: user.ID, Amount: 1, Reason: "r"})
	require.NoError(t, err)

	require.NoError(t, l.DeleteBorrowing(b.ID))

	fines, err := l.ListFines()
	require.NoError(t, err)
	require.Len(t, fines, 1)
	assert.Equal(t, f.ID, fines[0].ID)
	assert.Equal(t, "Unknown Borrowing", l.BorrowingLabel(fines[0].BorrowingID))
}

func TestSettingsFallBackToDefaults(t *testing.T) {
	l := tempLibrary(t)

	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSaveSettingsLastWriteWins(t *testing.T) {
	l := tempLibrary(t)

	s := DefaultSettings()
	s.BorrowingRules.LoanPeriodDays = 21
	require.NoError(t, l.SaveSettings(s))

	s.BorrowingRules.LoanPeriodDays = 30
	s.System.LibraryName = "Branch Library"
	require.NoError(t, l.SaveSettings(s))

	got, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, 30, got.BorrowingRules.LoanPeriodDays)
	assert.Equal(t, "Branch Library", got.System.LibraryName)

	// Still a single row.
	n, err := l.store.SettingsRows.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpdateProfileUpserts(t *testing.T) {
	l := tempLibrary(t)

	u, err := l.AddUser(User{Name: "P", Email: "p@x"})
	require.NoError(t, err)

	require.NoError(t, l.UpdateProfile(ProfileDetails{UserID: u.ID, Phone: "555-0100"}))
	require.NoError(t, l.UpdateProfile(ProfileDetails{UserID: u.ID, Phone: "555-0199", Address: "1 Main St"}))

	p, err := l.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", p.Phone)
	assert.Equal(t, "1 Main St", p.Address)
	assert.False(t, p.LastUpdated.IsZero())
}

func TestSetActorIgnoresBlank(t *testing.T) {
	l := tempLibrary(t)

	assert.Equal(t, "Admin", l.Actor())
	l.SetActor("   ")
	assert.Equal(t, "Admin", l.Actor())
	l.SetActor("Alice")
	assert.Equal(t, "Alice", l.Actor())
}

func TestWatchActivityFeedLimit(t *testing.T) {
	l := tempLibrary(t)

	feed := make(chan []Activity, 64)
	cancel := l.WatchActivity(func(entries []Activity) { feed <- entries })
	defer cancel()
	<-feed // initial delivery

	for i := 0; i < 12; i++ {
		_, err := l.AddBook(Book{Title: "Book", Author: "A"})
		require.NoError(t, err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case entries := <-feed:
			require.LessOrEqual(t, len(entries), 10)
			if len(entries) == 10 {
				// Newest first.
				assert.True(t, entries[0].Timestamp.After(entries[9].Timestamp) ||
					entries[0].ID > entries[9].ID)
				return
			}
		case <-deadline:
			t.Fatal("feed never reached its cap")
		}
	}
}
