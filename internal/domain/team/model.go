package team

import (
	"fmt"
	"strings"
)

// Team is a real football club. Ids are internal and independent of any provider.
type Team struct {
	ID     int64
	Name   string
	Active bool
}

func (t Team) Validate() error {
	if t.ID < 0 {
		return fmt.Errorf("team id must be >= 0")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
