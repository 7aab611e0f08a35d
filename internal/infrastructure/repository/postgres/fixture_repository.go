package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	qb "github.com/riskibarqy/sportsfeed/internal/platform/querybuilder"
)

var fixtureColumns = []string{"id", "home_team_id", "away_team_id", "home_score", "away_score", "kickoff_at", "status"}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}
	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) (fixture.Fixture, error) {
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("validate fixture: %w", err)
	}

	insertModel := fixtureTableModel{
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		HomeScore:  intPtrToNullInt64(item.HomeScore),
		AwayScore:  intPtrToNullInt64(item.AwayScore),
		KickoffAt:  item.KickoffAt.UTC(),
		Status:     string(item.Status),
	}
	query, args, err := qb.InsertModel("fixtures", insertModel, "RETURNING id")
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("build insert fixture query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return fixture.Fixture{}, fmt.Errorf("insert fixture: %w", err)
	}

	item.ID = id
	return item, nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate fixture: %w", err)
	}

	query, args, err := qb.Update("fixtures").
		Set("home_team_id", item.HomeTeamID).
		Set("away_team_id", item.AwayTeamID).
		Set("home_score", intPtrToNullInt64(item.HomeScore)).
		Set("away_score", intPtrToNullInt64(item.AwayScore)).
		Set("kickoff_at", item.KickoffAt.UTC()).
		Set("status", string(item.Status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update fixture: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("fixture %d not found", item.ID)
	}
	return nil
}

func (r *FixtureRepository) ListByTeams(ctx context.Context, teamIDs []int64) ([]fixture.Fixture, error) {
	if len(teamIDs) == 0 {
		return []fixture.Fixture{}, nil
	}

	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Or(
			qb.Any("home_team_id", pq.Array(teamIDs)),
			qb.Any("away_team_id", pq.Array(teamIDs)),
		)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by teams query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by teams: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.ID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		KickoffAt:  row.KickoffAt.UTC(),
		Status:     fixture.Status(row.Status),
	}
}
