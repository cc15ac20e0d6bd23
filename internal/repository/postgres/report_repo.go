package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
)

// ReportRepo implements ReportRepository using PostgreSQL. Reports are pure
// projections over already-validated rows; nothing here mutates state.
type ReportRepo struct{ db *DB }

// NewReportRepo constructs a report repository.
func NewReportRepo(db *DB) *ReportRepo { return &ReportRepo{db: db} }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Turnout returns per-region turnout for an election: eligible voters in the
// election's configured regions, votes cast from each, and the percentage.
func (r *ReportRepo) Turnout(ctx context.Context, electionID uuid.UUID) ([]model.TurnoutRow, error) {
	q, args, err := psql.
		Select(
			"rg.name AS region_name",
			"COUNT(DISTINCT vt.id) FILTER (WHERE vt.is_eligible) AS eligible_voters",
			"COUNT(DISTINCT v.id) AS votes_cast",
			`CASE WHEN COUNT(DISTINCT vt.id) FILTER (WHERE vt.is_eligible) = 0 THEN 0
			      ELSE ROUND(100.0 * COUNT(DISTINCT v.id) / COUNT(DISTINCT vt.id) FILTER (WHERE vt.is_eligible), 2)
			 END AS turnout_pct`,
		).
		From("election_region er").
		Join("region rg ON rg.id = er.region_id").
		LeftJoin("voter vt ON vt.region_id = er.region_id").
		LeftJoin("vote v ON v.voter_id = vt.id AND v.election_id = er.election_id").
		Where(sq.Eq{"er.election_id": electionID}).
		GroupBy("rg.name").
		OrderBy("rg.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	var out []model.TurnoutRow
	if err := pgxscan.Select(ctx, r.db.Pool, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Winners returns, for each region of the election, the approved candidate
// with the most votes. Ties go to the earlier-registered candidate.
func (r *ReportRepo) Winners(ctx context.Context, electionID uuid.UUID) ([]model.WinnerRow, error) {
	q, args, err := psql.
		Select(
			"DISTINCT ON (rg.name) rg.name AS region_name",
			"ua.name AS candidate_name",
			"c.party AS party",
			"COUNT(v.id) AS votes",
		).
		From("candidate c").
		Join("region rg ON rg.id = c.region_id").
		Join("user_account ua ON ua.id = c.user_id").
		LeftJoin("vote v ON v.candidate_id = c.id").
		Where(sq.Eq{"c.election_id": electionID, "c.is_approved": true}).
		GroupBy("rg.name", "ua.name", "c.party", "c.id").
		OrderBy("rg.name", "COUNT(v.id) DESC", "c.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var out []model.WinnerRow
	if err := pgxscan.Select(ctx, r.db.Pool, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegionStatistics returns per-region population and voter/candidate counts.
func (r *ReportRepo) RegionStatistics(ctx context.Context) ([]model.RegionStats, error) {
	q, args, err := psql.
		Select(
			"rg.name AS region_name",
			"rg.population AS population",
			"COUNT(DISTINCT vt.id) AS voters",
			"COUNT(DISTINCT c.id) AS candidates",
		).
		From("region rg").
		LeftJoin("voter vt ON vt.region_id = rg.id").
		LeftJoin("candidate c ON c.region_id = rg.id").
		GroupBy("rg.name", "rg.population").
		OrderBy("rg.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	var out []model.RegionStats
	if err := pgxscan.Select(ctx, r.db.Pool, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}
