package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
)

func TestMappingRepository_RejectsDuplicateExternalID(t *testing.T) {
	t.Parallel()

	repo, err := NewMappingRepository(SeedMappings())
	if err != nil {
		t.Fatalf("seed mappings: %v", err)
	}

	_, err = repo.Create(context.Background(), mapping.Mapping{
		APIID:      APIIDFootballData,
		Entity:     mapping.EntityTeam,
		InternalID: 5,
		ExternalID: mapping.Numeric(57),
	})
	if !errors.Is(err, mapping.ErrDuplicate) {
		t.Fatalf("expected mapping.ErrDuplicate, got %v", err)
	}

	rows, err := repo.Find(context.Background(), APIIDFootballData, mapping.EntityTeam, mapping.Numeric(57))
	if err != nil {
		t.Fatalf("find mapping: %v", err)
	}
	if len(rows) != 1 || rows[0].InternalID != 0 {
		t.Fatalf("unexpected mapping rows: %+v", rows)
	}
}

func TestMappingRepository_KindsDoNotCollide(t *testing.T) {
	t.Parallel()

	repo, err := NewMappingRepository(nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()
	if _, err := repo.Create(ctx, mapping.Mapping{APIID: 1, Entity: mapping.EntityFixtureStatus, InternalID: 1, ExternalID: mapping.Text("1")}); err != nil {
		t.Fatalf("create text mapping: %v", err)
	}
	if _, err := repo.Create(ctx, mapping.Mapping{APIID: 1, Entity: mapping.EntityFixtureStatus, InternalID: 2, ExternalID: mapping.Numeric(1)}); err != nil {
		t.Fatalf("create numeric mapping: %v", err)
	}
	if _, err := repo.Create(ctx, mapping.Mapping{APIID: 1, Entity: mapping.EntityTeam, InternalID: 2, ExternalID: mapping.ExternalID{}}); err == nil {
		t.Fatalf("expected invalid external id to be rejected")
	}
}

func TestRequestAuditRepository_DuplicateAndCounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRequestAuditRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, item := range []requestaudit.Audit{
		{ID: "a1", APIID: 1, RequestTypeID: 1, URL: "u", RequestedAt: base, ContentHash: "h", ResponseCode: 200},
		{ID: "a2", APIID: 1, RequestTypeID: 1, URL: "u", RequestedAt: base.Add(30 * time.Second), ContentHash: "h", ResponseCode: 200},
		{ID: "a3", APIID: 2, RequestTypeID: 2, URL: "u", RequestedAt: base.Add(90 * time.Second), ContentHash: "h", ResponseCode: 200},
	} {
		if err := repo.Create(ctx, item); err != nil {
			t.Fatalf("create audit %d: %v", i, err)
		}
	}

	dup, err := repo.HasSuccessfulDuplicate(ctx, 1, "h", "a2")
	if err != nil || dup {
		t.Fatalf("unsuccessful rows must not count as duplicates: dup=%v err=%v", dup, err)
	}
	if err := repo.MarkSuccessful(ctx, "a1"); err != nil {
		t.Fatalf("mark successful: %v", err)
	}
	if dup, _ := repo.HasSuccessfulDuplicate(ctx, 1, "h", "a2"); !dup {
		t.Fatalf("expected successful a1 to be a duplicate of a2")
	}
	if dup, _ := repo.HasSuccessfulDuplicate(ctx, 1, "h", "a1"); dup {
		t.Fatalf("excluded row must not match itself")
	}
	if dup, _ := repo.HasSuccessfulDuplicate(ctx, 2, "h", "a3"); dup {
		t.Fatalf("duplicates are scoped to the request type")
	}

	latest, ok, _ := repo.LatestRequestTime(ctx, 1)
	if !ok || !latest.Equal(base.Add(30*time.Second)) {
		t.Fatalf("unexpected latest request time: got=%v ok=%v", latest, ok)
	}
	if count, _ := repo.CountSince(ctx, base.Add(30*time.Second)); count != 2 {
		t.Fatalf("unexpected global count: got=%d want=2", count)
	}
	if count, _ := repo.CountSinceByAPI(ctx, 1, base.Add(30*time.Second)); count != 1 {
		t.Fatalf("unexpected api count: got=%d want=1", count)
	}

	items, _ := repo.List(ctx, requestaudit.Filter{APIID: int64Ptr(1), Limit: 1})
	if len(items) != 1 || items[0].ID != "a2" {
		t.Fatalf("unexpected audit listing: %+v", items)
	}
}

func TestFixtureRepository_ListByTeams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFixtureRepository(nil)
	kickoff := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, fixture.Fixture{HomeTeamID: 0, AwayTeamID: 9, KickoffAt: kickoff, Status: fixture.StatusScheduled})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("unexpected generated id: got=%d want=1", created.ID)
	}
	if _, err := repo.Create(ctx, fixture.Fixture{HomeTeamID: 3, AwayTeamID: 4, KickoffAt: kickoff, Status: fixture.StatusScheduled}); err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	items, err := repo.ListByTeams(ctx, []int64{9})
	if err != nil {
		t.Fatalf("list by teams: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("unexpected fixtures: %+v", items)
	}
}

func TestLocker_SerializesPerAPI(t *testing.T) {
	t.Parallel()

	locker := NewLocker()
	var active, peak atomic.Int32
	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		go func() {
			_ = locker.WithLock(context.Background(), 1, func(context.Context) error {
				n := active.Add(1)
				if n > peak.Load() {
					peak.Store(n)
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return nil
			})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	if peak.Load() != 1 {
		t.Fatalf("unexpected concurrent holders: got=%d want=1", peak.Load())
	}
}

func TestLocker_HonorsContext(t *testing.T) {
	t.Parallel()

	locker := NewLocker()
	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = locker.WithLock(context.Background(), 1, func(context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := locker.WithLock(ctx, 1, func(context.Context) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }
