package library

import (
	"log"
	"sort"
	"time"
)

// activityTimeLayout is the display format captured into Activity.Time at
// write time.
const activityTimeLayout = "Jan 2, 2006 3:04 PM"

// ActivityLogger appends audit entries to the activities collection. It is
// deliberately best-effort: a failed append never rolls back or blocks the
// primary mutation that triggered it.
type ActivityLogger struct {
	activities *Collection[Activity]
}

// NewActivityLogger returns a logger writing to the store's activity feed.
func NewActivityLogger(s *Store) *ActivityLogger {
	return &ActivityLogger{activities: s.Activities}
}

// Log appends one entry. actor and subject are display names snapshotted
// at write time. Failures go to diagnostic output only.
func (l *ActivityLogger) Log(typ ActivityType, actor, subject string, status ActivityStatus) {
	now := time.Now()
	entry := Activity{
		ID:        NewID(),
		Type:      typ,
		User:      actor,
		Book:      subject,
		Time:      now.Format(activityTimeLayout),
		Status:    status,
		Timestamp: now,
	}
	if err := l.activities.Add(entry); err != nil {
		log.Printf("activity log: %v", err)
	}
}

// Recent returns the n most recently timestamped entries, newest first,
// tie-broken by ID descending.
func (l *ActivityLogger) Recent(n int) ([]Activity, error) {
	entries, err := l.activities.All()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
