package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
	"github.com/uptrace/bun"
)

type jobRecord struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID                int64      `bun:"id,pk,autoincrement"`
	OwnerID           string     `bun:"owner_id,notnull"`
	Title             string     `bun:"title,notnull"`
	Company           string     `bun:"company"`
	Location          string     `bun:"location"`
	JobType           string     `bun:"job_type,notnull"`
	Description       string     `bun:"description"`
	OffersSponsorship bool       `bun:"offers_sponsorship,notnull"`
	OffersRelocation  bool       `bun:"offers_relocation,notnull"`
	CreatedAt         time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         *time.Time `bun:"updated_at,nullzero"`

	Application *jobApplicationRecord `bun:"rel:has-one,join:id=job_id"`
}

func (r *jobRecord) toDomain() (core.Job, error) {
	owner, err := parseOwner(r.OwnerID)
	if err != nil {
		return core.Job{}, err
	}
	job := core.Job{
		Entity: core.Entity{
			ID:        r.ID,
			OwnerID:   owner,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		Title:             r.Title,
		Company:           r.Company,
		Location:          r.Location,
		Type:              core.JobType(r.JobType),
		Description:       r.Description,
		OffersSponsorship: r.OffersSponsorship,
		OffersRelocation:  r.OffersRelocation,
	}
	if r.Application != nil {
		app, appErr := r.Application.toDomain()
		if appErr != nil {
			return core.Job{}, appErr
		}
		job.Application = &app
	}
	return job, nil
}

func jobFromDomain(owner uuid.UUID, job *core.Job, now time.Time) *jobRecord {
	record := &jobRecord{
		ID:                job.ID,
		OwnerID:           owner.String(),
		Title:             job.Title,
		Company:           job.Company,
		Location:          job.Location,
		JobType:           string(job.Type),
		Description:       job.Description,
		OffersSponsorship: job.OffersSponsorship,
		OffersRelocation:  job.OffersRelocation,
		CreatedAt:         job.CreatedAt,
	}
	if record.JobType == "" {
		record.JobType = string(core.JobTypeNone)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if job.ID > 0 {
		updated := now
		record.UpdatedAt = &updated
	}
	return record
}

type jobApplicationRecord struct {
	bun.BaseModel `bun:"table:job_applications,alias:ja"`

	ID              int64      `bun:"id,pk,autoincrement"`
	OwnerID         string     `bun:"owner_id,notnull"`
	JobID           int64      `bun:"job_id,notnull,unique"`
	Status          string     `bun:"status,notnull"`
	AppliedAt       time.Time  `bun:"applied_at,nullzero,notnull"`
	StatusUpdatedAt time.Time  `bun:"status_updated_at,nullzero,notnull"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero"`

	Notes []*applicationNoteRecord `bun:"rel:has-many,join:id=job_application_id"`
}

func (r *jobApplicationRecord) toDomain() (core.JobApplication, error) {
	owner, err := parseOwner(r.OwnerID)
	if err != nil {
		return core.JobApplication{}, err
	}
	app := core.JobApplication{
		Entity: core.Entity{
			ID:        r.ID,
			OwnerID:   owner,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		JobID:           r.JobID,
		Status:          core.ApplicationStatus(r.Status),
		AppliedAt:       r.AppliedAt,
		StatusUpdatedAt: r.StatusUpdatedAt,
	}
	for _, note := range r.Notes {
		if note == nil {
			continue
		}
		converted, noteErr := note.toDomain()
		if noteErr != nil {
			return core.JobApplication{}, noteErr
		}
		app.Notes = append(app.Notes, converted)
	}
	return app, nil
}

func jobApplicationFromDomain(owner uuid.UUID, app *core.JobApplication, now time.Time) *jobApplicationRecord {
	record := &jobApplicationRecord{
		ID:              app.ID,
		OwnerID:         owner.String(),
		JobID:           app.JobID,
		Status:          string(app.Status),
		AppliedAt:       app.AppliedAt,
		StatusUpdatedAt: app.StatusUpdatedAt,
		CreatedAt:       app.CreatedAt,
	}
	if record.Status == "" {
		record.Status = string(core.ApplicationStatusApplied)
	}
	if record.AppliedAt.IsZero() {
		record.AppliedAt = now
	}
	if record.StatusUpdatedAt.IsZero() {
		record.StatusUpdatedAt = record.AppliedAt
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if app.ID > 0 {
		updated := now
		record.UpdatedAt = &updated
	}
	return record
}

type applicationNoteRecord struct {
	bun.BaseModel `bun:"table:application_notes,alias:an"`

	ID               int64      `bun:"id,pk,autoincrement"`
	OwnerID          string     `bun:"owner_id,notnull"`
	JobApplicationID int64      `bun:"job_application_id,notnull"`
	Body             string     `bun:"body,notnull"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        *time.Time `bun:"updated_at,nullzero"`
}

func (r *applicationNoteRecord) toDomain() (core.ApplicationNote, error) {
	owner, err := parseOwner(r.OwnerID)
	if err != nil {
		return core.ApplicationNote{}, err
	}
	return core.ApplicationNote{
		Entity: core.Entity{
			ID:        r.ID,
			OwnerID:   owner,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		JobApplicationID: r.JobApplicationID,
		Body:             r.Body,
	}, nil
}

func applicationNoteFromDomain(owner uuid.UUID, note *core.ApplicationNote, now time.Time) *applicationNoteRecord {
	record := &applicationNoteRecord{
		ID:               note.ID,
		OwnerID:          owner.String(),
		JobApplicationID: note.JobApplicationID,
		Body:             note.Body,
		CreatedAt:        note.CreatedAt,
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if note.ID > 0 {
		updated := now
		record.UpdatedAt = &updated
	}
	return record
}

type preferencesRecord struct {
	bun.BaseModel `bun:"table:preferences,alias:p"`

	ID               int64      `bun:"id,pk,autoincrement"`
	OwnerID          string     `bun:"owner_id,notnull,unique"`
	SalaryMin        int64      `bun:"salary_min,notnull"`
	SalaryMax        int64      `bun:"salary_max,notnull"`
	DesiredJobType   string     `bun:"desired_job_type,notnull"`
	NeedsSponsorship bool       `bun:"needs_sponsorship,notnull"`
	NeedsRelocation  bool       `bun:"needs_relocation,notnull"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        *time.Time `bun:"updated_at,nullzero"`
}

func (r *preferencesRecord) toDomain() (core.Preferences, error) {
	owner, err := parseOwner(r.OwnerID)
	if err != nil {
		return core.Preferences{}, err
	}
	// Rebuilding through the constructor re-checks min <= max; the invariant
	// is owned here, not assumed from storage.
	salary, err := core.NewSalaryRange(r.SalaryMin, r.SalaryMax)
	if err != nil {
		return core.Preferences{}, err
	}
	return core.Preferences{
		Entity: core.Entity{
			ID:        r.ID,
			OwnerID:   owner,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		Salary:           salary,
		DesiredJobType:   core.JobType(r.DesiredJobType),
		NeedsSponsorship: r.NeedsSponsorship,
		NeedsRelocation:  r.NeedsRelocation,
	}, nil
}

func preferencesFromDomain(owner uuid.UUID, prefs *core.Preferences, now time.Time) *preferencesRecord {
	record := &preferencesRecord{
		ID:               prefs.ID,
		OwnerID:          owner.String(),
		SalaryMin:        prefs.Salary.Min(),
		SalaryMax:        prefs.Salary.Max(),
		DesiredJobType:   string(prefs.DesiredJobType),
		NeedsSponsorship: prefs.NeedsSponsorship,
		NeedsRelocation:  prefs.NeedsRelocation,
		CreatedAt:        prefs.CreatedAt,
	}
	if record.DesiredJobType == "" {
		record.DesiredJobType = string(core.JobTypeNone)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if prefs.ID > 0 {
		updated := now
		record.UpdatedAt = &updated
	}
	return record
}

type userProfileRecord struct {
	bun.BaseModel `bun:"table:user_profiles,alias:up"`

	ID        string    `bun:"id,pk"`
	Email     string    `bun:"email,notnull"`
	FullName  string    `bun:"full_name"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *userProfileRecord) toDomain() (core.UserProfile, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return core.UserProfile{}, err
	}
	return core.UserProfile{
		ID:        id,
		Email:     r.Email,
		FullName:  r.FullName,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func parseOwner(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}
