package library

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Library is a thin façade over the Store, keeping caller code simple and
// upholding the one invariant storage itself never enforces: every
// mutating operation on Book/User/Borrowing/Fine/Reservation/Notification
// is followed by exactly one best-effort activity append.
type Library struct {
	store *Store
	audit *ActivityLogger
	actor string
}

// Open opens (or creates) the SQLite database at dbPath.
func Open(dbPath string) (*Library, error) {
	store, err := OpenStore(dbPath)
	if err != nil {
		return nil, err
	}
	return NewLibrary(store), nil
}

// NewLibrary wraps an already opened store.
func NewLibrary(store *Store) *Library {
	return &Library{store: store, audit: NewActivityLogger(store), actor: "Admin"}
}

// Close closes the underlying store.
func (l *Library) Close() error { return l.store.Close() }

// Store exposes the raw collections for callers that need direct reads.
func (l *Library) Store() *Store { return l.store }

// SetActor sets the display name recorded as the actor of audit entries,
// normally the logged-in admin's name.
func (l *Library) SetActor(name string) {
	if strings.TrimSpace(name) != "" {
		l.actor = name
	}
}

// Actor returns the current audit actor name.
func (l *Library) Actor() string { return l.actor }

// required rejects an empty form field before any store call is made.
func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required: %w", field, ErrValidation)
	}
	return nil
}

// ------------------ Books ------------------

// AddBook validates and inserts a catalog entry, assigning an ID when the
// caller left it empty.
func (l *Library) AddBook(b Book) (Book, error) {
	if err := required("title", b.Title); err != nil {
		return Book{}, err
	}
	if err := required("author", b.Author); err != nil {
		return Book{}, err
	}
	if b.ID == "" {
		b.ID = NewID()
	}
	if b.Status == "" {
		b.Status = BookAvailable
	}
	if err := l.store.Books.Add(b); err != nil {
		return Book{}, err
	}
	l.audit.Log(ActivityAdd, l.actor, b.Title, ActivityCompleted)
	return b, nil
}

// UpdateBook replaces a catalog entry wholesale.
func (l *Library) UpdateBook(b Book) error {
	if err := required("id", b.ID); err != nil {
		return err
	}
	if err := required("title", b.Title); err != nil {
		return err
	}
	if err := required("author", b.Author); err != nil {
		return err
	}
	if err := l.store.Books.Put(b); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.actor, b.Title, ActivityCompleted)
	return nil
}

// DeleteBook removes a book. Borrowings and reservations pointing at it
// are left in place and resolve to "Unknown Book" from then on.
func (l *Library) DeleteBook(id string) error {
	label := l.BookLabel(id)
	if err := l.store.Books.Delete(id); err != nil {
		return err
	}
	l.audit.Log(ActivityDelete, l.actor, label, ActivityCompleted)
	return nil
}

func (l *Library) GetBook(id string) (Book, error) { return l.store.Books.Get(id) }
func (l *Library) ListBooks() ([]Book, error)      { return l.store.Books.All() }

// ------------------ Users ------------------

func (l *Library) AddUser(u User) (User, error) {
	if err := required("name", u.Name); err != nil {
		return User{}, err
	}
	if err := required("email", u.Email); err != nil {
		return User{}, err
	}
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.Status == "" {
		u.Status = UserActive
	}
	if u.JoinDate.IsZero() {
		u.JoinDate = time.Now()
	}
	if err := l.store.Users.Add(u); err != nil {
		return User{}, err
	}
	l.audit.Log(ActivityAdd, l.actor, u.Name, ActivityCompleted)
	return u, nil
}

func (l *Library) UpdateUser(u User) error {
	if err := required("id", u.ID); err != nil {
		return err
	}
	if err := required("name", u.Name); err != nil {
		return err
	}
	if err := l.store.Users.Put(u); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.actor, u.Name, ActivityCompleted)
	return nil
}

func (l *Library) DeleteUser(id string) error {
	label := l.UserLabel(id)
	if err := l.store.Users.Delete(id); err != nil {
		return err
	}
	l.audit.Log(ActivityDelete, l.actor, label, ActivityCompleted)
	return nil
}

func (l *Library) GetUser(id string) (User, error) { return l.store.Users.Get(id) }
func (l *Library) ListUsers() ([]User, error)      { return l.store.Users.All() }

// ------------------ Borrowings ------------------

// BorrowBook records a checkout. Referential integrity is not enforced:
// the book and user IDs are taken as given and resolved at read time.
func (l *Library) BorrowBook(bookID, userID string, due time.Time) (Borrowing, error) {
	if err := required("book", bookID); err != nil {
		return Borrowing{}, err
	}
	if err := required("user", userID); err != nil {
		return Borrowing{}, err
	}
	b := Borrowing{
		ID:         NewID(),
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: time.Now(),
		DueDate:    due,
		Status:     BorrowingActive,
	}
	if err := l.store.Borrowings.Add(b); err != nil {
		return Borrowing{}, err
	}
	l.audit.Log(ActivityBorrow, l.UserLabel(userID), l.BookLabel(bookID), ActivityCompleted)
	return b, nil
}

// ReturnBorrowing marks a borrowing returned as of now.
func (l *Library) ReturnBorrowing(id string) error {
	b, err := l.store.Borrowings.Get(id)
	if err != nil {
		return err
	}
	now := time.Now()
	b.ReturnDate = &now
	b.Status = BorrowingReturned
	if err := l.store.Borrowings.Put(b); err != nil {
		return err
	}
	l.audit.Log(ActivityReturn, l.UserLabel(b.UserID), l.BookLabel(b.BookID), ActivityCompleted)
	return nil
}

func (l *Library) UpdateBorrowing(b Borrowing) error {
	if err := required("id", b.ID); err != nil {
		return err
	}
	if err := l.store.Borrowings.Put(b); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.UserLabel(b.UserID), l.BookLabel(b.BookID), ActivityCompleted)
	return nil
}

func (l *Library) DeleteBorrowing(id string) error {
	label := l.BorrowingLabel(id)
	if err := l.store.Borrowings.Delete(id); err != nil {
		return err
	}
	l.audit.Log(ActivityDelete, l.actor, label, ActivityCompleted)
	return nil
}

func (l *Library) ListBorrowings() ([]Borrowing, error) { return l.store.Borrowings.All() }

// ------------------ Fines ------------------

func (l *Library) AddFine(f Fine) (Fine, error) {
	if err := required("borrowing", f.BorrowingID); err != nil {
		return Fine{}, err
	}
	if err := required("user", f.UserID); err != nil {
		return Fine{}, err
	}
	if f.Amount < 0 {
		return Fine{}, fmt.Errorf("amount must not be negative: %w", ErrValidation)
	}
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.Status == "" {
		f.Status = FineUnpaid
	}
	if err := l.store.Fines.Add(f); err != nil {
		return Fine{}, err
	}
	l.audit.Log(ActivityFine, l.UserLabel(f.UserID), l.BorrowingLabel(f.BorrowingID), ActivityUnpaid)
	return f, nil
}

func (l *Library) UpdateFine(f Fine) error {
	if err := required("id", f.ID); err != nil {
		return err
	}
	if f.Amount < 0 {
		return fmt.Errorf("amount must not be negative: %w", ErrValidation)
	}
	if err := l.store.Fines.Put(f); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.UserLabel(f.UserID), l.BorrowingLabel(f.BorrowingID), ActivityCompleted)
	return nil
}

// PayFine stamps the fine paid as of now.
func (l *Library) PayFine(id string) error {
	f, err := l.store.Fines.Get(id)
	if err != nil {
		return err
	}
	now := time.Now()
	f.PaidDate = &now
	f.Status = FinePaid
	if err := l.store.Fines.Put(f); err != nil {
		return err
	}
	l.audit.Log(ActivityFine, l.UserLabel(f.UserID), l.BorrowingLabel(f.BorrowingID), ActivityCompleted)
	return nil
}

func (l *Library) DeleteFine(id string) error {
	label := "Fine"
	if f, err := l.store.Fines.Get(id); err == nil {
		label = l.BorrowingLabel(f.BorrowingID)
	}
	if err := l.store.Fines.Delete(id); err != nil {
		return err
	}
	l.audit.Log(ActivityDelete, l.actor, label, ActivityCompleted)
	return nil
}

func (l *Library) ListFines() ([]Fine, error) { return l.store.Fines.All() }

// ------------------ Reservations ------------------

func (l *Library) AddReservation(r Reservation) (Reservation, error) {
	if err := required("book", r.BookID); err != nil {
		return Reservation{}, err
	}
	if err := required("user", r.UserID); err != nil {
		return Reservation{}, err
	}
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Status == "" {
		r.Status = ReservationPending
	}
	if r.ReservationDate.IsZero() {
		r.ReservationDate = time.Now()
	}
	if err := l.store.Reservations.Add(r); err != nil {
		return Reservation{}, err
	}
	l.audit.Log(ActivityReservation, l.UserLabel(r.UserID), l.BookLabel(r.BookID), ActivityPending)
	return r, nil
}

func (l *Library) UpdateReservation(r Reservation) error {
	if err := required("id", r.ID); err != nil {
		return err
	}
	if err := l.store.Reservations.Put(r); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.UserLabel(r.UserID), l.BookLabel(r.BookID), ActivityCompleted)
	return nil
}

// CancelReservation flips the status; the row is kept for history.
func (l *Library) CancelReservation(id string) error {
	r, err := l.store.Reservations.Get(id)
	if err != nil {
		return err
	}
	r.Status = ReservationCancelled
	if err := l.store.Reservations.Put(r); err != nil {
		return err
	}
	l.audit.Log(ActivityReservation, l.UserLabel(r.UserID), l.BookLabel(r.BookID), ActivityCompleted)
	return nil
}

func (l *Library) DeleteReservation(id string) error {
	label := "Reservation"
	if r, err := l.store.Reservations.Get(id); err == nil {
		label = l.BookLabel(r.BookID)
	}
	if err := l.store.Reservations.Delete(id); err != nil {
		return err
	}
	l.audit.Log(ActivityDelete, l.actor, label, ActivityCompleted)
	return nil
}

func (l *Library) ListReservations() ([]Reservation, error) { return l.store.Reservations.All() }

// ------------------ Notifications ------------------

func (l *Library) AddNotification(n Notification) (Notification, error) {
	if err := required("title", n.Title); err != nil {
		return Notification{}, err
	}
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.Type == "" {
		n.Type = NotificationSystem
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if err := l.store.Notifications.Add(n); err != nil {
		return Notification{}, err
	}
	l.audit.Log(ActivityAdd, l.actor, n.Title, ActivityCompleted)
	return n, nil
}

func (l *Library) UpdateNotification(n Notification) error {
	if err := required("id", n.ID); err != nil {
		return err
	}
	if err := required("title", n.Title); err != nil {
		return err
	}
	if err := l.store.Notifications.Put(n); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.actor, n.Title, ActivityCompleted)
	return nil
}

// MarkNotificationRead flips the read flag. This is the one mutation that
// does not append an activity entry.
func (l *Library) MarkNotificationRead(id string) error {
	n, err := l.store.Notifications.Get(id)
	if err != nil {
		return err
	}
	n.Read = true
	return l.store.Notifications.Put(n)
}

// MarkAllNotificationsRead flips every unread notification.
func (l *Library) MarkAllNotificationsRead() error {
	all, err := l.store.Notifications.All()
	if err != nil {
		return err
	}
	for _, n := range all {
		if n.Read {
			continue
		}
		n.Read = true
		if err := l.store.Notifications.Put(n); err != nil {
			return err
		}
	}
	return nil
}

func (l *Library) DeleteNotification(id string) error {
	label := "Notification"
	if n, err := l.store.Notifications.Get(id); err == nil {
		label = n.Title
	}
	if err := l.store.Notifications.Delete(id); err != nil {
		return err
	}
	l.audit.Log(ActivityDelete, l.actor, label, ActivityCompleted)
	return nil
}

func (l *Library) ListNotifications() ([]Notification, error) { return l.store.Notifications.All() }

// ------------------ Profiles ------------------

// UpdateProfile upserts the 1:1 extension row for a user.
func (l *Library) UpdateProfile(p ProfileDetails) error {
	if err := required("user", p.UserID); err != nil {
		return err
	}
	p.LastUpdated = time.Now()
	if err := l.store.Profiles.Put(p); err != nil {
		return err
	}
	l.audit.Log(ActivityEdit, l.actor, l.UserLabel(p.UserID), ActivityCompleted)
	return nil
}

func (l *Library) GetProfile(userID string) (ProfileDetails, error) {
	return l.store.Profiles.Get(userID)
}

// ------------------ Settings ------------------

// DefaultSettings returns the out-of-the-box singleton.
func DefaultSettings() Settings {
	return Settings{
		ID: SettingsID,
		BorrowingRules: BorrowingRules{
			MaxBooksPerUser: 5,
			LoanPeriodDays:  14,
			RenewalLimit:    2,
		},
		FineSettings: FineSettings{
			DailyRate: 0.50,
			MaxFine:   25.00,
			GraceDays: 2,
		},
		Notifications: NotificationSettings{
			EmailEnabled:    true,
			DueSoonReminder: true,
			OverdueAlerts:   true,
		},
		Security: SecuritySettings{
			SessionTimeoutMinutes:  60,
			RequireStrongPasswords: false,
		},
		System: SystemSettings{
			LibraryName: "Community Library",
			Language:    "en",
		},
	}
}

// Settings returns the singleton row, falling back to defaults when no row
// has been saved yet.
func (l *Library) Settings() (Settings, error) {
	s, err := l.store.SettingsRows.Get(SettingsID)
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SaveSettings replaces the singleton, last-write-wins.
func (l *Library) SaveSettings(s Settings) error {
	s.ID = SettingsID
	return l.store.SettingsRows.Put(s)
}

// ------------------ Activity feed ------------------

// RecentActivity returns the dashboard feed: the 10 newest audit entries.
func (l *Library) RecentActivity() ([]Activity, error) {
	return l.audit.Recent(10)
}

// ListActivity returns the full audit trail, newest first.
func (l *Library) ListActivity() ([]Activity, error) {
	return l.audit.Recent(0)
}

// WatchActivity re-delivers the newest 10 entries after every append.
func (l *Library) WatchActivity(fn func([]Activity)) func() {
	return l.store.Activities.Watch(func(entries []Activity) {
		sort.SliceStable(entries, func(i, j int) bool {
			if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
				return entries[i].Timestamp.After(entries[j].Timestamp)
			}
			return entries[i].ID > entries[j].ID
		})
		if len(entries) > 10 {
			entries = entries[:10]
		}
		fn(entries)
	})
}

// ------------------ Display labels ------------------

// BookLabel resolves a book reference for display. A dangling reference is
// not an error; it renders as "Unknown Book".
func (l *Library) BookLabel(id string) string {
	if b, err := l.store.Books.Get(id); err == nil {
		return b.Title
	}
	return "Unknown Book"
}

// UserLabel resolves a user reference for display.
func (l *Library) UserLabel(id string) string {
	if u, err := l.store.Users.Get(id); err == nil {
		return u.Name
	}
	return "Unknown User"
}

// BorrowingLabel resolves a borrowing reference to its book's title.
func (l *Library) BorrowingLabel(id string) string {
	if b, err := l.store.Borrowings.Get(id); err == nil {
		return l.BookLabel(b.BookID)
	}
	return "Unknown Borrowing"
}
