package library

import (
	"fmt"
	"time"
)

// Seeding populates empty collections with deterministic fixtures so every
// admin view is demonstrable on a fresh database. Each Seed* checks the
// collection count and no-ops unless it is exactly zero, which makes the
// whole pass idempotent across repeated startups. Seeded IDs are small
// sequential indices; live records get timestamp IDs from NewID.

// SeedAll seeds every collection in dependency order (borrowings, fines
// and reservations cycle through already-seeded books and users).
func (l *Library) SeedAll() error {
	steps := []func() error{
		l.SeedBooks,
		l.SeedUsers,
		l.SeedBorrowings,
		l.SeedFines,
		l.SeedReservations,
		l.SeedNotifications,
		l.SeedSettings,
		l.SeedProfiles,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type bookFixture struct {
	title, author, category, publisher string
	year, pages                        int
}

var bookFixtures = []bookFixture{
	{"1984", "George Orwell", "Fiction", "Secker & Warburg", 1949, 328},
	{"Animal Farm", "George Orwell", "Fiction", "Secker & Warburg", 1945, 112},
	{"The Diary of a Young Girl", "Anne Frank", "Biography", "Contact Publishing", 1947, 283},
	{"The Art of War", "Sun Tzu", "Philosophy", "Various", -500, 273},
	{"The Fellowship of the Ring", "J.R.R. Tolkien", "Fantasy", "Allen & Unwin", 1954, 423},
	{"The Two Towers", "J.R.R. Tolkien", "Fantasy", "Allen & Unwin", 1954, 352},
	{"The Return of the King", "J.R.R. Tolkien", "Fantasy", "Allen & Unwin", 1955, 416},
	{"Harry Potter and the Philosopher's Stone", "J.K. Rowling", "Fantasy", "Bloomsbury", 1997, 223},
	{"Harry Potter and the Chamber of Secrets", "J.K. Rowling", "Fantasy", "Bloomsbury", 1998, 251},
	{"Harry Potter and the Prisoner of Azkaban", "J.K. Rowling", "Fantasy", "Bloomsbury", 1999, 317},
	{"Harry Potter and the Order of the Phoenix", "J.K. Rowling", "Fantasy", "Bloomsbury", 2003, 766},
	{"Harry Potter and the Half-Blood Prince", "J.K. Rowling", "Fantasy", "Bloomsbury", 2005, 607},
	{"Harry Potter and the Deathly Hallows", "J.K. Rowling", "Fantasy", "Bloomsbury", 2007, 607},
	{"Romeo and Juliet", "William Shakespeare", "Drama", "Various", 1597, 281},
	{"The Three Musketeers", "Alexandre Dumas", "Adventure", "Baudry", 1844, 625},
	{"The Three Little Pigs", "Traditional", "Children", "Various", 1890, 32},
	{"Pride and Prejudice", "Jane Austen", "Romance", "T. Egerton", 1813, 432},
	{"Moby-Dick", "Herman Melville", "Adventure", "Harper & Brothers", 1851, 635},
	{"To Kill a Mockingbird", "Harper Lee", "Fiction", "J.B. Lippincott", 1960, 281},
	{"The Great Gatsby", "F. Scott Fitzgerald", "Fiction", "Scribner", 1925, 180},
}

var bookStatusCycle = []BookStatus{
	BookAvailable, BookAvailable, BookBorrowed, BookAvailable, BookReserved,
	BookAvailable, BookMaintenance,
}

// SeedBooks inserts the 20-book starter catalog.
func (l *Library) SeedBooks() error {
	n, err := l.store.Books.Count()
	if err != nil || n != 0 {
		return err
	}
	books := make([]Book, 0, len(bookFixtures))
	for i, f := range bookFixtures {
		books = append(books, Book{
			ID:            fmt.Sprintf("%d", i+1),
			Title:         f.title,
			Author:        f.author,
			ISBN:          fmt.Sprintf("978-0-0000-%04d-%d", i+1, (i+1)%10),
			Category:      f.category,
			Location:      fmt.Sprintf("Shelf %c-%d", 'A'+rune(i%5), i/5+1),
			PublishedYear: f.year,
			Publisher:     f.publisher,
			Language:      "English",
			Pages:         f.pages,
			Description:   fmt.Sprintf("%s by %s.", f.title, f.author),
			Status:        bookStatusCycle[i%len(bookStatusCycle)],
		})
	}
	return l.store.Books.BulkAdd(books)
}

type userFixture struct {
	name, email string
	role        Role
}

var userFixtures = []userFixture{
	{"Alice Johnson", "alice.johnson@library.local", RoleAdmin},
	{"Bob Martinez", "bob.martinez@library.local", RoleTeacher},
	{"Carol White", "carol.white@library.local", RoleTeacher},
	{"David Kim", "david.kim@library.local", RoleStudent},
	{"Emma Brown", "emma.brown@library.local", RoleStudent},
	{"Frank Miller", "frank.miller@library.local", RoleStudent},
}

// SeedUsers inserts the starter members.
func (l *Library) SeedUsers() error {
	n, err := l.store.Users.Count()
	if err != nil || n != 0 {
		return err
	}
	now := time.Now()
	users := make([]User, 0, len(userFixtures))
	for i, f := range userFixtures {
		status := UserActive
		if i == len(userFixtures)-1 {
			status = UserInactive
		}
		users = append(users, User{
			ID:       fmt.Sprintf("%d", i+1),
			Name:     f.name,
			Email:    f.email,
			Role:     f.role,
			JoinDate: now.AddDate(0, -(i + 1), 0),
			Status:   status,
		})
	}
	return l.store.Users.BulkAdd(users)
}

// SeedBorrowings creates 12 borrowings cycling through the existing books
// and users. The status distribution is modulo-based, but dates always
// agree with the status: returned rows carry a ReturnDate before now,
// overdue rows a DueDate in the past, active rows a DueDate in the future.
func (l *Library) SeedBorrowings() error {
	n, err := l.store.Borrowings.Count()
	if err != nil || n != 0 {
		return err
	}
	books, err := l.store.Books.All()
	if err != nil {
		return err
	}
	users, err := l.store.Users.All()
	if err != nil {
		return err
	}
	if len(books) == 0 || len(users) == 0 {
		return nil
	}

	now := time.Now()
	borrowings := make([]Borrowing, 0, 12)
	for i := 0; i < 12; i++ {
		borrowed := now.AddDate(0, 0, -3*(i+1))
		b := Borrowing{
			ID:         fmt.Sprintf("%d", i+1),
			BookID:     books[i%len(books)].ID,
			UserID:     users[i%len(users)].ID,
			BorrowDate: borrowed,
		}
		switch {
		case i%3 == 0:
			ret := borrowed.AddDate(0, 0, 2)
			b.DueDate = borrowed.AddDate(0, 0, 14)
			b.ReturnDate = &ret
			b.Status = BorrowingReturned
		case i%5 == 0:
			b.DueDate = borrowed.AddDate(0, 0, 2)
			b.Status = BorrowingOverdue
		default:
			b.DueDate = now.AddDate(0, 0, 7+i)
			b.Status = BorrowingActive
		}
		borrowings = append(borrowings, b)
	}
	return l.store.Borrowings.BulkAdd(borrowings)
}

var fineReasons = []string{
	"Overdue return", "Damaged cover", "Lost book", "Late renewal",
}

// SeedFines creates 8 fines referencing the seeded borrowings.
func (l *Library) SeedFines() error {
	n, err := l.store.Fines.Count()
	if err != nil || n != 0 {
		return err
	}
	borrowings, err := l.store.Borrowings.All()
	if err != nil {
		return err
	}
	if len(borrowings) == 0 {
		return nil
	}

	now := time.Now()
	fines := make([]Fine, 0, 8)
	for i := 0; i < 8; i++ {
		ref := borrowings[i%len(borrowings)]
		f := Fine{
			ID:          fmt.Sprintf("%d", i+1),
			BorrowingID: ref.ID,
			UserID:      ref.UserID,
			Amount:      2.50 + 0.50*float64(i),
			DueDate:     now.AddDate(0, 0, 7),
			Reason:      fineReasons[i%len(fineReasons)],
			Status:      FineUnpaid,
		}
		if i%2 == 1 {
			paid := now.AddDate(0, 0, -i)
			f.PaidDate = &paid
			f.Status = FinePaid
		}
		fines = append(fines, f)
	}
	return l.store.Fines.BulkAdd(fines)
}

var reservationStatusCycle = []ReservationStatus{
	ReservationPending, ReservationActive, ReservationCompleted, ReservationCancelled,
}

// SeedReservations creates 8 reservations cycling books and users.
func (l *Library) SeedReservations() error {
	n, err := l.store.Reservations.Count()
	if err != nil || n != 0 {
		return err
	}
	books, err := l.store.Books.All()
	if err != nil {
		return err
	}
	users, err := l.store.Users.All()
	if err != nil {
		return err
	}
	if len(books) == 0 || len(users) == 0 {
		return nil
	}

	now := time.Now()
	reservations := make([]Reservation, 0, 8)
	for i := 0; i < 8; i++ {
		r := Reservation{
			ID:              fmt.Sprintf("%d", i+1),
			BookID:          books[(i+3)%len(books)].ID,
			UserID:          users[i%len(users)].ID,
			ReservationDate: now.AddDate(0, 0, -i),
			Status:          reservationStatusCycle[i%len(reservationStatusCycle)],
		}
		switch r.Status {
		case ReservationPending:
			expiry := now.AddDate(0, 0, 3+i)
			r.ExpiryDate = &expiry
		case ReservationActive:
			pickup := now.AddDate(0, 0, 1)
			r.PickupDate = &pickup
		}
		reservations = append(reservations, r)
	}
	return l.store.Reservations.BulkAdd(reservations)
}

// SeedNotifications creates the starter notification inbox.
func (l *Library) SeedNotifications() error {
	n, err := l.store.Notifications.Count()
	if err != nil || n != 0 {
		return err
	}
	now := time.Now()
	fixtures := []Notification{
		{Type: NotificationSystem, Title: "Welcome to the library", Message: "The catalog is ready to browse.", Priority: PriorityLow, Read: true},
		{Type: NotificationAlert, Title: "Overdue books", Message: "2 borrowings are past their due date.", Priority: PriorityHigh,
			Action: &NotificationAction{Label: "Review", URL: "/admin/borrowings"}},
		{Type: NotificationUser, Title: "New member registered", Message: "A new student account was created.", Priority: PriorityMedium},
		{Type: NotificationSystem, Title: "Backup complete", Message: "Nightly database backup finished.", Priority: PriorityLow, Read: true},
		{Type: NotificationAlert, Title: "Unpaid fines", Message: "4 fines are awaiting payment.", Priority: PriorityMedium,
			Action: &NotificationAction{Label: "Open fines", URL: "/admin/fines"}},
		{Type: NotificationUser, Title: "Reservation expiring", Message: "A pending reservation expires in 3 days.", Priority: PriorityMedium},
	}
	for i := range fixtures {
		fixtures[i].ID = fmt.Sprintf("%d", i+1)
		fixtures[i].Timestamp = now.Add(-time.Duration(i) * time.Hour)
	}
	return l.store.Notifications.BulkAdd(fixtures)
}

// SeedSettings writes the default singleton row.
func (l *Library) SeedSettings() error {
	n, err := l.store.SettingsRows.Count()
	if err != nil || n != 0 {
		return err
	}
	return l.store.SettingsRows.Add(DefaultSettings())
}

// SeedProfiles creates one profile row per seeded user.
func (l *Library) SeedProfiles() error {
	n, err := l.store.Profiles.Count()
	if err != nil || n != 0 {
		return err
	}
	users, err := l.store.Users.All()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	now := time.Now()
	profiles := make([]ProfileDetails, 0, len(users))
	for i, u := range users {
		profiles = append(profiles, ProfileDetails{
			UserID:      u.ID,
			Phone:       fmt.Sprintf("555-01%02d", i+10),
			Address:     fmt.Sprintf("%d Library Lane", 100+i),
			LastUpdated: now,
		})
	}
	return l.store.Profiles.BulkAdd(profiles)
}
