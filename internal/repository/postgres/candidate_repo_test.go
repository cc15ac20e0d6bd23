package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
)

func sampleCandidate() *model.Candidate {
	return &model.Candidate{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     uuid.Must(uuid.NewV4()),
		ElectionID: uuid.Must(uuid.NewV4()),
		RegionID:   uuid.Must(uuid.NewV4()),
		Party:      "Parti du Progrès",
		Manifesto:  "roads and schools",
	}
}

func TestCandidateRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	c := sampleCandidate()

	mock.ExpectExec(`INSERT INTO candidate \(id, user_id, election_id, region_id, party, manifesto, is_approved\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, false\)`).
		WithArgs(c.ID, c.UserID, c.ElectionID, c.RegionID, c.Party, c.Manifesto).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, c))
}

func TestCandidateRepo_Create_RegionNotInElection(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	c := sampleCandidate()

	mock.ExpectExec(`INSERT INTO candidate`).
		WithArgs(c.ID, c.UserID, c.ElectionID, c.RegionID, c.Party, c.Manifesto).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "candidate_election_region_fkey"})
	require.ErrorIs(t, r.Create(ctx, c), errs.ErrInvalidCandidateRegion)
}

func TestCandidateRepo_Create_DuplicateUser(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	c := sampleCandidate()

	mock.ExpectExec(`INSERT INTO candidate`).
		WithArgs(c.ID, c.UserID, c.ElectionID, c.RegionID, c.Party, c.Manifesto).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "candidate_user_uq"})
	require.ErrorIs(t, r.Create(ctx, c), errs.ErrAlreadyExists)
}

func TestCandidateRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	c := sampleCandidate()

	mock.ExpectExec(`UPDATE candidate SET election_id=\$2, region_id=\$3, party=\$4, manifesto=\$5 WHERE id=\$1`).
		WithArgs(c.ID, c.ElectionID, c.RegionID, c.Party, c.Manifesto).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(ctx, c))

	// moving onto a region outside the election's set hits the composite FK
	mock.ExpectExec(`UPDATE candidate SET`).
		WithArgs(c.ID, c.ElectionID, c.RegionID, c.Party, c.Manifesto).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "candidate_election_region_fkey"})
	require.ErrorIs(t, r.Update(ctx, c), errs.ErrInvalidCandidateRegion)

	mock.ExpectExec(`UPDATE candidate SET`).
		WithArgs(c.ID, c.ElectionID, c.RegionID, c.Party, c.Manifesto).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, c), errs.ErrNotFound)
}

func TestCandidateRepo_Approve_FirstFlip(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	approver := uuid.Must(uuid.NewV4())
	at := time.Now().UTC()

	mock.ExpectExec(`UPDATE candidate SET is_approved=true, approved_at=\$2, approved_by=\$3 WHERE id=\$1 AND is_approved=false`).
		WithArgs(id, at, approver).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Approve(ctx, id, approver, at))
}

func TestCandidateRepo_Approve_AlreadyApprovedIsNoop(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	approver := uuid.Must(uuid.NewV4())
	at := time.Now().UTC()

	mock.ExpectExec(`UPDATE candidate SET is_approved=true`).
		WithArgs(id, at, approver).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM candidate WHERE id=\$1\)`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	require.NoError(t, r.Approve(ctx, id, approver, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateRepo_Approve_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	approver := uuid.Must(uuid.NewV4())
	at := time.Now().UTC()

	mock.ExpectExec(`UPDATE candidate SET is_approved=true`).
		WithArgs(id, at, approver).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM candidate WHERE id=\$1\)`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	require.ErrorIs(t, r.Approve(ctx, id, approver, at), errs.ErrNotFound)
}

func TestCandidateRepo_GetByID_and_ListByElection(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCandidateRepo(db)
	ctx := context.Background()
	c := sampleCandidate()
	cols := []string{"id", "user_id", "election_id", "region_id", "party", "manifesto", "is_approved", "approved_at", "approved_by"}

	mock.ExpectQuery(`SELECT id, user_id, election_id, region_id, party, manifesto, is_approved, approved_at, approved_by FROM candidate WHERE id=\$1`).
		WithArgs(c.ID).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(c.ID, c.UserID, c.ElectionID, c.RegionID, c.Party, c.Manifesto, false, (*time.Time)(nil), (*uuid.UUID)(nil)))
	got, err := r.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, got.IsApproved)
	require.Nil(t, got.ApprovedAt)

	other := sampleCandidate()
	other.ElectionID = c.ElectionID
	mock.ExpectQuery(`SELECT id, user_id, election_id, region_id, party, manifesto, is_approved, approved_at, approved_by FROM candidate WHERE election_id=\$1`).
		WithArgs(c.ElectionID).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(c.ID, c.UserID, c.ElectionID, c.RegionID, c.Party, c.Manifesto, false, (*time.Time)(nil), (*uuid.UUID)(nil)).
			AddRow(other.ID, other.UserID, other.ElectionID, other.RegionID, other.Party, other.Manifesto, false, (*time.Time)(nil), (*uuid.UUID)(nil)))
	list, err := r.ListByElection(ctx, c.ElectionID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
