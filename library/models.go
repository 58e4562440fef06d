package library

import (
	"strconv"
	"sync"
	"time"
)

// Book status values. Status is advisory text set by the librarian; it is
// not derived from Borrowing or Reservation state.
type BookStatus string

const (
	BookAvailable   BookStatus = "available"
	BookBorrowed    BookStatus = "borrowed"
	BookReserved    BookStatus = "reserved"
	BookMaintenance BookStatus = "maintenance"
)

// Role represents a user's role in the system.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type BorrowingStatus string

const (
	BorrowingActive   BorrowingStatus = "active"
	BorrowingOverdue  BorrowingStatus = "overdue"
	BorrowingReturned BorrowingStatus = "returned"
)

type FineStatus string

const (
	FineUnpaid FineStatus = "unpaid"
	FinePaid   FineStatus = "paid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type NotificationType string

const (
	NotificationSystem NotificationType = "system"
	NotificationAlert  NotificationType = "alert"
	NotificationUser   NotificationType = "user"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ActivityType tags an audit entry with the operation that produced it.
type ActivityType string

const (
	ActivityBorrow      ActivityType = "borrow"
	ActivityReturn      ActivityType = "return"
	ActivityReservation ActivityType = "reservation"
	ActivityFine        ActivityType = "fine"
	ActivityAdd         ActivityType = "add"
	ActivityEdit        ActivityType = "edit"
	ActivityDelete      ActivityType = "delete"
)

type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "completed"
	ActivityPending   ActivityStatus = "pending"
	ActivityUnpaid    ActivityStatus = "unpaid"
)

// Book represents a catalog entry.
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn"`
	Category      string     `json:"category"`
	Location      string     `json:"location"`
	PublishedYear int        `json:"published_year"`
	Publisher     string     `json:"publisher"`
	Language      string     `json:"language"`
	Pages         int        `json:"pages"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"image_url,omitempty"`
	Status        BookStatus `json:"status"`
}

func (b Book) RecordID() string { return b.ID }

// SearchFields returns the fixed field set text search runs against.
func (b Book) SearchFields() []string { return []string{b.Title, b.Author, b.ISBN} }

// User represents a registered library user. Credentials live in a
// separate collection; no password material is stored here.
type User struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     Role       `json:"role"`
	JoinDate time.Time  `json:"join_date"`
	Status   UserStatus `json:"status"`
}

func (u User) RecordID() string       { return u.ID }
func (u User) SearchFields() []string { return []string{u.Name, u.Email} }

// Borrowing records a book checked out to a user. BookID and UserID are
// logical references only: the referent may have been deleted, and lookups
// fall back to an "Unknown" label instead of failing.
type Borrowing struct {
	ID         string          `json:"id"`
	BookID     string          `json:"book_id"`
	UserID     string          `json:"user_id"`
	BorrowDate time.Time       `json:"borrow_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	Status     BorrowingStatus `json:"status"`
}

func (b Borrowing) RecordID() string       { return b.ID }
func (b Borrowing) SearchFields() []string { return []string{b.BookID, b.UserID} }

// Fine is a charge attached to a borrowing. Amount is a non-negative float.
type Fine struct {
	ID          string     `json:"id"`
	BorrowingID string     `json:"borrowing_id"`
	UserID      string     `json:"user_id"`
	Amount      float64    `json:"amount"`
	DueDate     time.Time  `json:"due_date"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`
	Reason      string     `json:"reason"`
	Status      FineStatus `json:"status"`
}

func (f Fine) RecordID() string       { return f.ID }
func (f Fine) SearchFields() []string { return []string{f.Reason} }

// Reservation holds a pending claim on a book.
type Reservation struct {
	ID              string            `json:"id"`
	BookID          string            `json:"book_id"`
	UserID          string            `json:"user_id"`
	ReservationDate time.Time         `json:"reservation_date"`
	PickupDate      *time.Time        `json:"pickup_date,omitempty"`
	ExpiryDate      *time.Time        `json:"expiry_date,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Status          ReservationStatus `json:"status"`
}

func (r Reservation) RecordID() string       { return r.ID }
func (r Reservation) SearchFields() []string { return []string{r.Notes} }

// NotificationAction is an optional call-to-action attached to a notification.
type NotificationAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Notification struct {
	ID        string              `json:"id"`
	Type      NotificationType    `json:"type"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Timestamp time.Time           `json:"timestamp"`
	Read      bool                `json:"read"`
	Priority  Priority            `json:"priority"`
	Action    *NotificationAction `json:"action,omitempty"`
}

func (n Notification) RecordID() string       { return n.ID }
func (n Notification) SearchFields() []string { return []string{n.Title, n.Message} }

// Activity is one append-only audit entry. User and Book hold display
// names captured at write time, not IDs, so the entry stays readable after
// the referenced records are deleted.
type Activity struct {
	ID        string         `json:"id"`
	Type      ActivityType   `json:"type"`
	User      string         `json:"user"`
	Book      string         `json:"book"`
	Time      string         `json:"time"`
	Status    ActivityStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
}

func (a Activity) RecordID() string       { return a.ID }
func (a Activity) SearchFields() []string { return []string{a.User, a.Book} }

// SettingsID is the fixed key of the settings singleton row.
const SettingsID = "settings"

type BorrowingRules struct {
	MaxBooksPerUser int `json:"max_books_per_user"`
	LoanPeriodDays  int `json:"loan_period_days"`
	RenewalLimit    int `json:"renewal_limit"`
}

type FineSettings struct {
	DailyRate float64 `json:"daily_rate"`
	MaxFine   float64 `json:"max_fine"`
	GraceDays int     `json:"grace_days"`
}

type NotificationSettings struct {
	EmailEnabled    bool `json:"email_enabled"`
	DueSoonReminder bool `json:"due_soon_reminder"`
	OverdueAlerts   bool `json:"overdue_alerts"`
}

type SecuritySettings struct {
	SessionTimeoutMinutes  int  `json:"session_timeout_minutes"`
	RequireStrongPasswords bool `json:"require_strong_passwords"`
}

type SystemSettings struct {
	LibraryName string `json:"library_name"`
	Language    string `json:"language"`
}

// Settings is a singleton row; writes are last-write-wins.
type Settings struct {
	ID             string               `json:"id"`
	BorrowingRules BorrowingRules       `json:"borrowing_rules"`
	FineSettings   FineSettings         `json:"fine_settings"`
	Notifications  NotificationSettings `json:"notifications"`
	Security       SecuritySettings     `json:"security"`
	System         SystemSettings       `json:"system"`
}

func (s Settings) RecordID() string { return s.ID }

// ProfileDetails is a 1:1 extension of User, keyed by the user's ID.
type ProfileDetails struct {
	UserID      string    `json:"user_id"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	LastUpdated time.Time `json:"last_updated"`
}

func (p ProfileDetails) RecordID() string { return p.UserID }

// Credential backs the authentication collaborator, keyed by email.
type Credential struct {
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	PasswordHash string `json:"password_hash"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
}

func (c Credential) RecordID() string { return c.Email }

// SessionID is the fixed key of the current-session row.
const SessionID = "current"

// Session is the persisted login state, a single row keyed by SessionID.
type Session struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

func (s Session) RecordID() string { return s.ID }

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a decimal-string timestamp identifier. IDs assigned in the
// same nanosecond are bumped so they stay unique within a process; the
// store itself never enforces uniqueness.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixNano()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
