package fixture

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is a fixture lifecycle state. Finished, awarded and canceled are terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusInPlay    Status = "in_play"
	StatusPaused    Status = "paused"
	StatusPostponed Status = "postponed"
	StatusSuspended Status = "suspended"
	StatusFinished  Status = "finished"
	StatusAwarded   Status = "awarded"
	StatusCanceled  Status = "canceled"
)

var ErrStatusFrozen = errors.New("fixture status is final")

// statusIDs keeps the internal ids used by fixture_status mappings.
var statusIDs = map[Status]int64{
	StatusFinished:  0,
	StatusInPlay:    1,
	StatusPaused:    2,
	StatusPostponed: 3,
	StatusScheduled: 4,
	StatusSuspended: 5,
	StatusAwarded:   6,
	StatusCanceled:  7,
}

var statusByID = func() map[int64]Status {
	out := make(map[int64]Status, len(statusIDs))
	for status, id := range statusIDs {
		out[id] = status
	}
	return out
}()

func StatusFromID(id int64) (Status, bool) {
	status, ok := statusByID[id]
	return status, ok
}

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown fixture status %q", raw)
	}
	return status, nil
}

func (s Status) ID() int64 {
	id, ok := statusIDs[s]
	if !ok {
		return -1
	}
	return id
}

func (s Status) Valid() bool {
	_, ok := statusIDs[s]
	return ok
}

func (s Status) IsFinal() bool {
	switch s {
	case StatusFinished, StatusAwarded, StatusCanceled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a fixture in s may move to next.
// Anything leaving a terminal state is rejected, including a repeat of the same state.
func (s Status) CanTransition(next Status) bool {
	if !next.Valid() {
		return false
	}
	return !s.IsFinal()
}

// Fixture represents one match between two internal teams.
type Fixture struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  *int
	AwayScore  *int
	KickoffAt  time.Time
	Status     Status
}

func (f Fixture) Validate() error {
	if f.HomeTeamID < 0 || f.AwayTeamID < 0 {
		return fmt.Errorf("fixture team ids must be >= 0")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture home and away team must differ")
	}
	if f.KickoffAt.IsZero() {
		return fmt.Errorf("fixture kickoff is required")
	}
	if !f.Status.Valid() {
		return fmt.Errorf("unknown fixture status %q", f.Status)
	}
	return nil
}

// Update carries the mutable fields of a fixture sighting.
type Update struct {
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  *int
	AwayScore  *int
	KickoffAt  time.Time
	Status     Status
}

// Apply moves the fixture through the status machine and copies the mutable fields.
// A frozen fixture is left untouched.
func (f *Fixture) Apply(u Update) error {
	if !f.Status.CanTransition(u.Status) {
		if f.Status.IsFinal() {
			return fmt.Errorf("%w: fixture=%d status=%s", ErrStatusFrozen, f.ID, f.Status)
		}
		return fmt.Errorf("invalid fixture status transition %s -> %s", f.Status, u.Status)
	}

	f.HomeTeamID = u.HomeTeamID
	f.AwayTeamID = u.AwayTeamID
	f.HomeScore = u.HomeScore
	f.AwayScore = u.AwayScore
	f.KickoffAt = u.KickoffAt.UTC()
	f.Status = u.Status
	return nil
}

func New(u Update) (Fixture, error) {
	f := Fixture{
		HomeTeamID: u.HomeTeamID,
		AwayTeamID: u.AwayTeamID,
		HomeScore:  u.HomeScore,
		AwayScore:  u.AwayScore,
		KickoffAt:  u.KickoffAt.UTC(),
		Status:     u.Status,
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}
