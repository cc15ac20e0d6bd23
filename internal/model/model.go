// Package model defines domain entities used by services and repositories.
package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role is the system role of an account.
type Role string

// Account roles.
const (
	RoleAdmin           Role = "Admin"
	RoleElectionOfficer Role = "ElectionOfficer"
	RoleVoter           Role = "Voter"
	RoleCandidate       Role = "Candidate"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleElectionOfficer, RoleVoter, RoleCandidate:
		return true
	}
	return false
}

// ElectionStatus is the lifecycle state of an election.
type ElectionStatus string

// Election lifecycle states. Planned, Active and Completed form a forward-only
// chain derived from the election window; Cancelled is an explicit
// administrative side-entry reachable from any state.
const (
	StatusPlanned   ElectionStatus = "Planned"
	StatusActive    ElectionStatus = "Active"
	StatusCompleted ElectionStatus = "Completed"
	StatusCancelled ElectionStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s ElectionStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// rank orders the forward chain; Cancelled sits outside it.
func (s ElectionStatus) rank() int {
	switch s {
	case StatusPlanned:
		return 0
	case StatusActive:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

var (
	cnieRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{6}$`)
	nameRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ' -]+$`)
)

// ValidCNIE reports whether s matches the national ID format:
// two uppercase letters followed by six digits (e.g. AD123456).
func ValidCNIE(s string) bool {
	return cnieRe.MatchString(strings.TrimSpace(s))
}

// ValidName reports whether s is a usable display name:
// 2..100 trimmed characters, letters, spaces, hyphens and apostrophes.
func ValidName(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 2 || len([]rune(s)) > 100 {
		return false
	}
	return nameRe.MatchString(s)
}

// Account is a system identity. Voter and Candidate rows hang off an account
// one-to-one; deleting the account cascades to them.
type Account struct {
	ID          uuid.UUID
	CNIE        string // natural ID, unique, 2 letters + 6 digits
	Name        string
	Role        Role
	IsActive    bool
	CreatedAt   time.Time
	LastLoginAt *time.Time // nil until first login
}

// Region is an administrative area elections and voters attach to.
type Region struct {
	ID         uuid.UUID
	Name       string // unique
	Population int64  // >= 0
}

// Voter is the voting profile of an account with role Voter.
type Voter struct {
	ID           uuid.UUID
	UserID       uuid.UUID // FK -> user_account, unique
	RegionID     uuid.UUID
	IsEligible   bool
	RegisteredAt time.Time
	BirthDate    *time.Time // optional; if set, implies age >= 18 at registration
}

// AdultAt reports whether the voter is at least 18 years old at the given
// time. A missing birth date passes: the age rule only binds when the date
// is known.
func (v *Voter) AdultAt(at time.Time) bool {
	if v.BirthDate == nil {
		return true
	}
	return !v.BirthDate.AddDate(18, 0, 0).After(at)
}

// Election is a named contest with a voting window and a derived status.
type Election struct {
	ID        uuid.UUID
	Name      string
	Type      string
	StartDate time.Time
	EndDate   time.Time // strictly after StartDate
	Status    ElectionStatus
	AdminID   uuid.UUID // owning administrator account
	CreatedAt time.Time
}

// InWindow reports whether ts falls inside the closed voting window
// [StartDate, EndDate].
func (e *Election) InWindow(ts time.Time) bool {
	return !ts.Before(e.StartDate) && !ts.After(e.EndDate)
}

// EffectiveStatus derives the status the election should have at the given
// wall-clock time. Cancelled and Completed are terminal; otherwise the window
// decides: before start Planned, inside the window Active, past the end
// Completed. The stored status lags this value until the next write touches
// the row.
func (e *Election) EffectiveStatus(now time.Time) ElectionStatus {
	switch e.Status {
	case StatusCancelled, StatusCompleted:
		return e.Status
	}
	if now.Before(e.StartDate) {
		return StatusPlanned
	}
	if now.After(e.EndDate) {
		return StatusCompleted
	}
	return StatusActive
}

// AdvanceStatus applies the monotonic lifecycle rule: the derived status is
// taken only when it moves forward along Planned -> Active -> Completed.
// Cancelled is sticky and never overridden here.
func AdvanceStatus(current, derived ElectionStatus) ElectionStatus {
	if current == StatusCancelled {
		return current
	}
	if derived.rank() > current.rank() {
		return derived
	}
	return current
}

// ElectionPhase is a named sub-window (Registration, Campaign, Voting) of an
// election's timeline. Phases of one election never overlap.
type ElectionPhase struct {
	ID         uuid.UUID
	ElectionID uuid.UUID
	Name       string
	StartsAt   time.Time
	EndsAt     time.Time // strictly after StartsAt
}

// Overlaps reports whether the two phases collide under the half-open
// convention: [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (p *ElectionPhase) Overlaps(o *ElectionPhase) bool {
	return p.StartsAt.Before(o.EndsAt) && o.StartsAt.Before(p.EndsAt)
}

// ElectionRegion fixes which regions participate in which election; it is
// the authoritative set for region-containment checks.
type ElectionRegion struct {
	ElectionID uuid.UUID
	RegionID   uuid.UUID
}

// Candidate is the candidacy of an account in one election, declared for one
// of that election's configured regions.
type Candidate struct {
	ID         uuid.UUID
	UserID     uuid.UUID // FK -> user_account, unique
	ElectionID uuid.UUID
	RegionID   uuid.UUID // must be in the election's region set
	Party      string
	Manifesto  string
	IsApproved bool
	ApprovedAt *time.Time // stamped server-side on the false->true flip
	ApprovedBy *uuid.UUID
}

// Vote is an immutable record of one voter's single vote in one election.
// There is no update path for a vote anywhere in the module.
type Vote struct {
	ID               uuid.UUID
	VoterID          uuid.UUID
	ElectionID       uuid.UUID
	CandidateID      uuid.UUID
	CastAt           time.Time
	VerificationCode string // server-computed, never caller-supplied
}

// AuditEntry is one append-only ledger record. Entries are never updated or
// deleted; mistakes are superseded by compensating entries.
type AuditEntry struct {
	ID        uuid.UUID
	ActorID   *uuid.UUID // nil for system actions
	Action    string
	TableName string
	RecordID  string
	IPAddress string
	Details   string
	LoggedAt  time.Time
}

// TurnoutRow is one region's turnout figures for an election.
type TurnoutRow struct {
	RegionName     string  `db:"region_name"`
	EligibleVoters int64   `db:"eligible_voters"`
	VotesCast      int64   `db:"votes_cast"`
	TurnoutPct     float64 `db:"turnout_pct"`
}

// WinnerRow is the leading approved candidate of a region in an election.
type WinnerRow struct {
	RegionName    string `db:"region_name"`
	CandidateName string `db:"candidate_name"`
	Party         string `db:"party"`
	Votes         int64  `db:"votes"`
}

// RegionStats aggregates per-region counts across the system.
type RegionStats struct {
	RegionName string `db:"region_name"`
	Population int64  `db:"population"`
	Voters     int64  `db:"voters"`
	Candidates int64  `db:"candidates"`
}
