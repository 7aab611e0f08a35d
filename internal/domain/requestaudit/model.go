package requestaudit

import (
	"fmt"
	"strings"
	"time"
)

// Audit records one outbound call that produced a usable response.
// Rows are append-only; Successful flips once, after full reconciliation.
type Audit struct {
	ID            string
	APIID         int64
	RequestTypeID int64
	URL           string
	RequestedAt   time.Time
	ContentHash   string
	ResponseCode  int
	Successful    bool
}

func (a Audit) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("audit id is required")
	}
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("audit url is required")
	}
	if a.RequestedAt.IsZero() {
		return fmt.Errorf("audit request time is required")
	}
	if a.ResponseCode < 100 || a.ResponseCode > 599 {
		return fmt.Errorf("audit response code %d is out of range", a.ResponseCode)
	}
	return nil
}

// Filter narrows audit listings; nil ids mean "any".
type Filter struct {
	APIID         *int64
	RequestTypeID *int64
	Limit         int
}
