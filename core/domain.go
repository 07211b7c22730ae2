package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidJobType                     = errors.New("core: invalid job type")
	ErrInvalidApplicationStatus           = errors.New("core: invalid application status")
	ErrInvalidApplicationStatusTransition = errors.New("core: invalid application status transition")
	ErrInvalidSalaryRange                 = errors.New("core: invalid salary range")
	ErrMissingOwner                       = errors.New("core: owner id is required")
)

const (
	MaxJobTitleLength    = 200
	MaxJobCompanyLength  = 200
	MaxJobLocationLength = 200
)

// Entity is the shape shared by every persisted record: a store-assigned
// integer identity, the owning principal, and audit timestamps. OwnerID is
// immutable after creation; UpdatedAt is set on every mutation and is never
// earlier than CreatedAt.
type Entity struct {
	ID        int64
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (e Entity) Validate() error {
	if e.OwnerID == uuid.Nil {
		return ErrMissingOwner
	}
	if e.UpdatedAt != nil && !e.CreatedAt.IsZero() && e.UpdatedAt.Before(e.CreatedAt) {
		return fmt.Errorf("core: updated_at precedes created_at")
	}
	return nil
}

type JobType string

const (
	JobTypeNone     JobType = "none"
	JobTypeFullTime JobType = "full_time"
	JobTypePartTime JobType = "part_time"
	JobTypeContract JobType = "contract"
	JobTypeRemote   JobType = "remote"
)

func (t JobType) Validate() error {
	switch t {
	case JobTypeNone, JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidJobType, string(t))
}

func ParseJobType(value string) (JobType, error) {
	normalized := JobType(strings.TrimSpace(strings.ToLower(value)))
	if normalized == "" {
		return JobTypeNone, nil
	}
	if err := normalized.Validate(); err != nil {
		return JobTypeNone, err
	}
	return normalized, nil
}

// Job is a tracked posting. At most one JobApplication references it.
type Job struct {
	Entity

	Title             string
	Company           string
	Location          string
	Type              JobType
	Description       string
	OffersSponsorship bool
	OffersRelocation  bool

	// Application is the optional dependent side of the one-to-one
	// relationship. Populated only when loaded with its relation.
	Application *JobApplication
}

func (j Job) Validate() error {
	if err := j.Entity.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(j.Title) == "" {
		return fmt.Errorf("core: job title is required")
	}
	if len(j.Title) > MaxJobTitleLength {
		return fmt.Errorf("core: job title exceeds %d characters", MaxJobTitleLength)
	}
	if len(j.Company) > MaxJobCompanyLength {
		return fmt.Errorf("core: job company exceeds %d characters", MaxJobCompanyLength)
	}
	if len(j.Location) > MaxJobLocationLength {
		return fmt.Errorf("core: job location exceeds %d characters", MaxJobLocationLength)
	}
	return j.Type.Validate()
}

type ApplicationStatus string

const (
	ApplicationStatusApplied      ApplicationStatus = "applied"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusOffered      ApplicationStatus = "offered"
	ApplicationStatusAccepted     ApplicationStatus = "accepted"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
)

func (s ApplicationStatus) Validate() error {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusInterviewing, ApplicationStatusOffered,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidApplicationStatus, string(s))
}

// IsTerminal reports whether no further transitions are allowed.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ApplicationStatusApplied:
		return next == ApplicationStatusInterviewing ||
			next == ApplicationStatusRejected ||
			next == ApplicationStatusWithdrawn
	case ApplicationStatusInterviewing:
		return next == ApplicationStatusOffered ||
			next == ApplicationStatusRejected ||
			next == ApplicationStatusWithdrawn
	case ApplicationStatusOffered:
		return next == ApplicationStatusAccepted ||
			next == ApplicationStatusRejected ||
			next == ApplicationStatusWithdrawn
	}
	return false
}

// JobApplication tracks the user's application to a single Job. AppliedAt and
// StatusUpdatedAt are domain timestamps owned by the application lifecycle,
// distinct from the Entity audit columns.
type JobApplication struct {
	Entity

	JobID           int64
	Status          ApplicationStatus
	AppliedAt       time.Time
	StatusUpdatedAt time.Time

	Notes []ApplicationNote
}

func (a JobApplication) Validate() error {
	if err := a.Entity.Validate(); err != nil {
		return err
	}
	if a.JobID <= 0 {
		return fmt.Errorf("core: application job id is required")
	}
	return a.Status.Validate()
}

// Transition validates and applies a status change, stamping StatusUpdatedAt.
func (a *JobApplication) Transition(next ApplicationStatus, at time.Time) error {
	if a == nil {
		return ErrInvalidApplicationStatusTransition
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidApplicationStatusTransition, a.Status, next)
	}
	a.Status = next
	if at.IsZero() {
		at = time.Now().UTC()
	}
	a.StatusUpdatedAt = at.UTC()
	return nil
}

// ApplicationNote is a free-form note attached to one application.
type ApplicationNote struct {
	Entity

	JobApplicationID int64
	Body             string
}

func (n ApplicationNote) Validate() error {
	if err := n.Entity.Validate(); err != nil {
		return err
	}
	if n.JobApplicationID <= 0 {
		return fmt.Errorf("core: note application id is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return fmt.Errorf("core: note body is required")
	}
	return nil
}

// SalaryRange is an owned value object stored inline as two columns. The
// constructor is the only way to build one, so min <= max holds everywhere.
type SalaryRange struct {
	min int64
	max int64
}

func NewSalaryRange(min, max int64) (SalaryRange, error) {
	if min < 0 {
		return SalaryRange{}, fmt.Errorf("%w: min %d is negative", ErrInvalidSalaryRange, min)
	}
	if min > max {
		return SalaryRange{}, fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidSalaryRange, min, max)
	}
	return SalaryRange{min: min, max: max}, nil
}

func (r SalaryRange) Min() int64 { return r.min }

func (r SalaryRange) Max() int64 { return r.max }

func (r SalaryRange) Contains(amount int64) bool {
	return amount >= r.min && amount <= r.max
}

// Preferences holds a user's search preferences. At most one row exists per
// owner; the store enforces it with a unique owner index.
type Preferences struct {
	Entity

	Salary           SalaryRange
	DesiredJobType   JobType
	NeedsSponsorship bool
	NeedsRelocation  bool
}

func (p Preferences) Validate() error {
	if err := p.Entity.Validate(); err != nil {
		return err
	}
	if p.Salary.min > p.Salary.max {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidSalaryRange, p.Salary.min, p.Salary.max)
	}
	return p.DesiredJobType.Validate()
}

// UserProfile mirrors the provider-issued identity captured after a successful
// register or login, so the endpoint layer can resolve display data locally.
type UserProfile struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p UserProfile) Validate() error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("core: profile id is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("core: profile email is required")
	}
	return nil
}

// AuthResult is the normalized outcome of a successful login.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	ExpiresAt    time.Time
	User         UserProfile
}
