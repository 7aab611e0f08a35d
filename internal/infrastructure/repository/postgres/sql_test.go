package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped 23505", func(t *testing.T) {
		err := fmt.Errorf("insert entity mapping: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key value violates unique constraint")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullableScores(t *testing.T) {
	if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil score, got %d", *got)
	}
	got := nullInt64ToIntPtr(sql.NullInt64{Int64: 3, Valid: true})
	if got == nil || *got != 3 {
		t.Fatalf("unexpected score: %v", got)
	}

	score := 2
	if v := intPtrToNullInt64(&score); !v.Valid || v.Int64 != 2 {
		t.Fatalf("unexpected null int: %+v", v)
	}
	if v := intPtrToNullInt64(nil); v.Valid {
		t.Fatalf("expected invalid null int for nil score")
	}
	if got := nullInt64ToInt64(sql.NullInt64{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMappingFromRow(t *testing.T) {
	numeric := mappingFromRow(entityMappingTableModel{
		ID: 1, APIID: 1, Entity: "team", InternalID: 9,
		ExternalNumeric: sql.NullInt64{Int64: 64, Valid: true},
	})
	if numeric.ExternalID != mapping.Numeric(64) || numeric.Entity != mapping.EntityTeam {
		t.Fatalf("unexpected numeric mapping: %+v", numeric)
	}

	text := mappingFromRow(entityMappingTableModel{
		ID: 2, APIID: 1, Entity: "fixture_status", InternalID: 0,
		ExternalText: sql.NullString{String: "FINISHED", Valid: true},
	})
	if text.ExternalID != mapping.Text("FINISHED") {
		t.Fatalf("unexpected text mapping: %+v", text)
	}
}

func TestExternalIDCondition(t *testing.T) {
	if _, err := externalIDCondition(mapping.ExternalID{}); err == nil {
		t.Fatalf("expected error for zero external id")
	}
	if _, err := externalIDCondition(mapping.Text("LIVE")); err != nil {
		t.Fatalf("unexpected error for text id: %v", err)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
