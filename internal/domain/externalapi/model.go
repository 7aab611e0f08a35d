package externalapi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// RateLimitKind selects which cooldown rule applies to an API.
type RateLimitKind string

const (
	RateLimitStaggered RateLimitKind = "staggered"
	RateLimitPerMinute RateLimitKind = "per_minute"
)

var ErrURLTemplate = errors.New("url template cannot be resolved")

var placeholderRegex = regexp.MustCompile(`\[[^\[\]]*\]`)

// API describes one external data provider and its rate limit policy.
// Only the parameter matching RateLimit is meaningful.
type API struct {
	ID                int64
	Name              string
	RateLimit         RateLimitKind
	RequestsPerMinute int
	RequestIntervalMS int64
}

func (a API) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("api name is required")
	}
	switch a.RateLimit {
	case RateLimitStaggered:
		if a.RequestIntervalMS < 0 {
			return fmt.Errorf("api request interval must be >= 0")
		}
	case RateLimitPerMinute:
		if a.RequestsPerMinute < 1 {
			return fmt.Errorf("api requests per minute must be >= 1")
		}
	default:
		return fmt.Errorf("unknown rate limit kind %q", a.RateLimit)
	}
	return nil
}

// RequestType is one GET endpoint template bound to an API.
// Placeholders look like [competition_id] and are filled positionally.
type RequestType struct {
	ID          int64
	APIID       int64
	URLTemplate string
	Description string
	VersionIter int
}

// ResolveURL replaces the Nth bracketed placeholder with the Nth argument.
func (r RequestType) ResolveURL(args ...string) (string, error) {
	template := strings.TrimSpace(r.URLTemplate)
	if template == "" {
		return "", fmt.Errorf("%w: request type %d has no url template", ErrURLTemplate, r.ID)
	}

	placeholders := placeholderRegex.FindAllStringIndex(template, -1)
	if len(args) != len(placeholders) {
		return "", fmt.Errorf("%w: request type %d expects %d argument(s), got %d",
			ErrURLTemplate, r.ID, len(placeholders), len(args))
	}

	var out strings.Builder
	last := 0
	for i, loc := range placeholders {
		arg := strings.TrimSpace(args[i])
		if arg == "" {
			return "", fmt.Errorf("%w: argument %d for %s is empty", ErrURLTemplate, i, template[loc[0]:loc[1]])
		}
		out.WriteString(template[last:loc[0]])
		out.WriteString(arg)
		last = loc[1]
	}
	out.WriteString(template[last:])

	resolved := strings.TrimSpace(out.String())
	if resolved == "" {
		return "", fmt.Errorf("%w: resolved url is empty", ErrURLTemplate)
	}
	return resolved, nil
}
