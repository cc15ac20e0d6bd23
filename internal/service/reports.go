package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
)

// ReportService exposes read-only aggregate projections. It is a consumer of
// already-validated rows and never mutates core entities.
type ReportService interface {
	// Turnout returns per-region turnout for an election.
	Turnout(ctx context.Context, electionID uuid.UUID) ([]model.TurnoutRow, error)
	// Winners returns the leading approved candidate per region.
	Winners(ctx context.Context, electionID uuid.UUID) ([]model.WinnerRow, error)
	// RegionStatistics returns per-region voter/candidate counts.
	RegionStatistics(ctx context.Context) ([]model.RegionStats, error)
}

type ReportServiceImpl struct {
	reports repository.ReportRepository
}

// NewReportService constructs ReportService with required dependencies.
func NewReportService(reports repository.ReportRepository) *ReportServiceImpl {
	return &ReportServiceImpl{reports: reports}
}

// Turnout returns per-region turnout for an election.
func (s *ReportServiceImpl) Turnout(ctx context.Context, electionID uuid.UUID) ([]model.TurnoutRow, error) {
	if electionID == uuid.Nil {
		return nil, errors.New("validation: empty election id")
	}
	return s.reports.Turnout(ctx, electionID)
}

// Winners returns the leading approved candidate per region of an election.
func (s *ReportServiceImpl) Winners(ctx context.Context, electionID uuid.UUID) ([]model.WinnerRow, error) {
	if electionID == uuid.Nil {
		return nil, errors.New("validation: empty election id")
	}
	return s.reports.Winners(ctx, electionID)
}

// RegionStatistics returns per-region counts across the system.
func (s *ReportServiceImpl) RegionStatistics(ctx context.Context) ([]model.RegionStats, error) {
	return s.reports.RegionStatistics(ctx)
}
