package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by tournament query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by tournament: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, tournamentID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(
			qb.Eq("id", teamID),
			qb.Eq("tournament_id", tournamentID),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team id=%s: %w", teamID, err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertModel("teams", teamToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team name=%q: %w", item.Name, translateError(err))
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	return updateTeam(ctx, r.db, item, time.Now().UTC())
}

func updateTeam(ctx context.Context, db sqlx.ExecerContext, item team.Team, now time.Time) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("logo_url", item.LogoURL).
		Set("tournament_points", item.TournamentPoints).
		Set("match_points", item.MatchPoints).
		Set("updated_at", now).
		Where(
			qb.Eq("id", item.ID),
			qb.Eq("tournament_id", item.TournamentID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team id=%s: %w", item.ID, translateError(err))
	}
	return expectAffected(res, "team "+item.ID)
}
