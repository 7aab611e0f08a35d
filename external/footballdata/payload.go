package footballdata

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/sportsfeed/internal/usecase"
)

// ExtractMatch reads one match object. Absent or mistyped keys become nil.
func ExtractMatch(item map[string]any) usecase.ExternalMatch {
	match := usecase.ExternalMatch{
		StatusCode: getString(item, "status"),
		KickoffUTC: getString(item, "utcDate"),
	}
	if id, ok := getInt64(item, "id"); ok {
		match.ExternalID = &id
	}
	if id, ok := getInt64(getMap(item, "homeTeam"), "id"); ok {
		match.HomeTeamID = &id
	}
	if id, ok := getInt64(getMap(item, "awayTeam"), "id"); ok {
		match.AwayTeamID = &id
	}

	fullTime := getMap(getMap(item, "score"), "fullTime")
	match.HomeScore = getIntAny(fullTime, "homeTeam", "home")
	match.AwayScore = getIntAny(fullTime, "awayTeam", "away")
	return match
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, _ := src[key].(map[string]any)
	return value
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// maxExactFloatInt is the largest magnitude a float64 holds without rounding.
const maxExactFloatInt = 1 << 53

func getInt64(src map[string]any, key string) (int64, bool) {
	if src == nil {
		return 0, false
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch typed := raw.(type) {
	case json.Number:
		v, err := strconv.ParseInt(typed.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case float64:
		if typed != math.Trunc(typed) || math.Abs(typed) > maxExactFloatInt {
			return 0, false
		}
		return int64(typed), true
	case int:
		return int64(typed), true
	case int64:
		return typed, true
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func getIntAny(src map[string]any, keys ...string) *int {
	for _, key := range keys {
		if v, ok := getInt64(src, key); ok {
			out := int(v)
			return &out
		}
	}
	return nil
}
