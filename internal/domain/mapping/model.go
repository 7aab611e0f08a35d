package mapping

import (
	"errors"
	"fmt"
	"strconv"
)

// Entity names the internal entity a mapping points at.
type Entity string

const (
	EntityTeam          Entity = "team"
	EntityFixture       Entity = "fixture"
	EntityFixtureStatus Entity = "fixture_status"
)

func (e Entity) Valid() bool {
	switch e {
	case EntityTeam, EntityFixture, EntityFixtureStatus:
		return true
	default:
		return false
	}
}

// IDKind discriminates ExternalID. The zero value is not a valid kind.
type IDKind uint8

const (
	IDKindNumeric IDKind = 1
	IDKindText    IDKind = 2
)

func (k IDKind) String() string {
	switch k {
	case IDKindNumeric:
		return "numeric"
	case IDKindText:
		return "text"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

var ErrDuplicate = errors.New("mapping already exists")

// ExternalID is a provider identifier that is either numeric or text, never both.
type ExternalID struct {
	kind    IDKind
	numeric int64
	text    string
}

func Numeric(v int64) ExternalID {
	return ExternalID{kind: IDKindNumeric, numeric: v}
}

func Text(v string) ExternalID {
	return ExternalID{kind: IDKindText, text: v}
}

func (id ExternalID) Kind() IDKind {
	return id.kind
}

func (id ExternalID) Int64() (int64, bool) {
	return id.numeric, id.kind == IDKindNumeric
}

func (id ExternalID) Text() (string, bool) {
	return id.text, id.kind == IDKindText
}

func (id ExternalID) String() string {
	switch id.kind {
	case IDKindNumeric:
		return strconv.FormatInt(id.numeric, 10)
	case IDKindText:
		return id.text
	default:
		return ""
	}
}

// Mapping binds an internal entity to one (api, external id) pair.
type Mapping struct {
	ID         int64
	APIID      int64
	Entity     Entity
	InternalID int64
	ExternalID ExternalID
}

func (m Mapping) Validate() error {
	if !m.Entity.Valid() {
		return fmt.Errorf("unknown mapping entity %q", m.Entity)
	}
	switch m.ExternalID.Kind() {
	case IDKindNumeric, IDKindText:
	default:
		return fmt.Errorf("unknown external id kind %s", m.ExternalID.Kind())
	}
	return nil
}
