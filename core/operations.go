package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job operations. Every mutation opens an owner-scoped unit of work, stages
// the change and commits it in one transaction.

func (s *Service) CreateJob(ctx context.Context, owner uuid.UUID, job Job) (Job, error) {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return Job{}, err
	}
	defer uow.Discard()

	job.OwnerID = owner
	if err := job.Validate(); err != nil {
		return Job{}, s.mapError(err)
	}
	if err := uow.Jobs().Add(&job); err != nil {
		return Job{}, s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "job.create", err, map[string]any{"owner_id": owner.String()})
	if err != nil {
		return Job{}, s.mapError(err)
	}
	return job, nil
}

func (s *Service) UpdateJob(ctx context.Context, owner uuid.UUID, job Job) (Job, error) {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return Job{}, err
	}
	defer uow.Discard()

	job.OwnerID = owner
	if err := job.Validate(); err != nil {
		return Job{}, s.mapError(err)
	}
	existing, found, getErr := uow.Jobs().GetByID(ctx, job.ID)
	if getErr != nil {
		return Job{}, s.mapError(getErr)
	}
	if !found {
		return Job{}, s.notFound("job", job.ID)
	}
	// The creation timestamp is set once at insert; a full-overwrite payload
	// carries it forward from the stored row.
	job.CreatedAt = existing.CreatedAt
	if err := uow.Jobs().Update(&job); err != nil {
		return Job{}, s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "job.update", err, map[string]any{
		"owner_id": owner.String(),
		"job_id":   job.ID,
	})
	if err != nil {
		return Job{}, s.mapError(err)
	}
	return job, nil
}

// RemoveJob deletes the job; the store cascades the application and its notes.
func (s *Service) RemoveJob(ctx context.Context, owner uuid.UUID, id int64) error {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return err
	}
	defer uow.Discard()

	job, found, err := uow.Jobs().GetByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if !found {
		return s.notFound("job", id)
	}
	if err := uow.Jobs().Remove(&job); err != nil {
		return s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "job.remove", err, map[string]any{
		"owner_id": owner.String(),
		"job_id":   id,
	})
	return s.mapError(err)
}

func (s *Service) GetJob(ctx context.Context, owner uuid.UUID, id int64) (Job, bool, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return Job{}, false, err
	}
	defer uow.Discard()
	job, found, err := uow.Jobs().GetByID(ctx, id)
	if err != nil {
		return Job{}, false, s.mapError(err)
	}
	return job, found, nil
}

func (s *Service) ListJobs(ctx context.Context, owner uuid.UUID) ([]Job, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return nil, err
	}
	defer uow.Discard()
	jobs, err := uow.Jobs().GetAll(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return jobs, nil
}

func (s *Service) FindJobs(ctx context.Context, owner uuid.UUID, predicate Predicate) ([]Job, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return nil, err
	}
	defer uow.Discard()
	jobs, err := uow.Jobs().Find(ctx, predicate)
	if err != nil {
		return nil, s.mapError(err)
	}
	return jobs, nil
}

// Application operations.

// CreateApplication defaults the status to applied and stamps the lifecycle
// timestamps when the caller left them zero.
func (s *Service) CreateApplication(ctx context.Context, owner uuid.UUID, app JobApplication) (JobApplication, error) {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return JobApplication{}, err
	}
	defer uow.Discard()

	app.OwnerID = owner
	if app.Status == "" {
		app.Status = ApplicationStatusApplied
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	if app.StatusUpdatedAt.IsZero() {
		app.StatusUpdatedAt = app.AppliedAt
	}
	if err := app.Validate(); err != nil {
		return JobApplication{}, s.mapError(err)
	}
	if _, found, getErr := uow.Jobs().GetByID(ctx, app.JobID); getErr != nil {
		return JobApplication{}, s.mapError(getErr)
	} else if !found {
		return JobApplication{}, s.notFound("job", app.JobID)
	}
	if err := uow.Applications().Add(&app); err != nil {
		return JobApplication{}, s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "application.create", err, map[string]any{
		"owner_id": owner.String(),
		"job_id":   app.JobID,
	})
	if err != nil {
		return JobApplication{}, s.mapError(err)
	}
	return app, nil
}

func (s *Service) UpdateApplicationStatus(
	ctx context.Context,
	owner uuid.UUID,
	applicationID int64,
	next ApplicationStatus,
) (JobApplication, error) {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return JobApplication{}, err
	}
	defer uow.Discard()

	app, found, err := uow.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return JobApplication{}, s.mapError(err)
	}
	if !found {
		return JobApplication{}, s.notFound("application", applicationID)
	}
	if err := app.Transition(next, time.Now().UTC()); err != nil {
		return JobApplication{}, s.mapError(err)
	}
	if err := uow.Applications().Update(&app); err != nil {
		return JobApplication{}, s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "application.update_status", err, map[string]any{
		"owner_id":       owner.String(),
		"application_id": applicationID,
		"status":         string(next),
	})
	if err != nil {
		return JobApplication{}, s.mapError(err)
	}
	return app, nil
}

func (s *Service) RemoveApplication(ctx context.Context, owner uuid.UUID, id int64) error {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return err
	}
	defer uow.Discard()

	app, found, err := uow.Applications().GetByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if !found {
		return s.notFound("application", id)
	}
	if err := uow.Applications().Remove(&app); err != nil {
		return s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "application.remove", err, map[string]any{
		"owner_id":       owner.String(),
		"application_id": id,
	})
	return s.mapError(err)
}

func (s *Service) GetApplication(ctx context.Context, owner uuid.UUID, id int64) (JobApplication, bool, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return JobApplication{}, false, err
	}
	defer uow.Discard()
	app, found, err := uow.Applications().GetByID(ctx, id)
	if err != nil {
		return JobApplication{}, false, s.mapError(err)
	}
	return app, found, nil
}

func (s *Service) ListApplications(ctx context.Context, owner uuid.UUID) ([]JobApplication, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return nil, err
	}
	defer uow.Discard()
	apps, err := uow.Applications().GetAll(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return apps, nil
}

// Note operations.

func (s *Service) AddNote(ctx context.Context, owner uuid.UUID, applicationID int64, body string) (ApplicationNote, error) {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return ApplicationNote{}, err
	}
	defer uow.Discard()

	if _, found, getErr := uow.Applications().GetByID(ctx, applicationID); getErr != nil {
		return ApplicationNote{}, s.mapError(getErr)
	} else if !found {
		return ApplicationNote{}, s.notFound("application", applicationID)
	}

	note := ApplicationNote{
		Entity:           Entity{OwnerID: owner},
		JobApplicationID: applicationID,
		Body:             body,
	}
	if err := note.Validate(); err != nil {
		return ApplicationNote{}, s.mapError(err)
	}
	if err := uow.Notes().Add(&note); err != nil {
		return ApplicationNote{}, s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "note.add", err, map[string]any{
		"owner_id":       owner.String(),
		"application_id": applicationID,
	})
	if err != nil {
		return ApplicationNote{}, s.mapError(err)
	}
	return note, nil
}

func (s *Service) RemoveNote(ctx context.Context, owner uuid.UUID, id int64) error {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return err
	}
	defer uow.Discard()

	note, found, err := uow.Notes().GetByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if !found {
		return s.notFound("note", id)
	}
	if err := uow.Notes().Remove(&note); err != nil {
		return s.mapError(err)
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "note.remove", err, map[string]any{
		"owner_id": owner.String(),
		"note_id":  id,
	})
	return s.mapError(err)
}

func (s *Service) ListNotes(ctx context.Context, owner uuid.UUID, applicationID int64) ([]ApplicationNote, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return nil, err
	}
	defer uow.Discard()
	notes, err := uow.Notes().Find(ctx, Where("job_application_id", OpEq, applicationID))
	if err != nil {
		return nil, s.mapError(err)
	}
	return notes, nil
}

// Preferences operations.

// SavePreferences upserts the single preferences row for the owner.
func (s *Service) SavePreferences(ctx context.Context, owner uuid.UUID, prefs Preferences) (Preferences, error) {
	startedAt := time.Now().UTC()
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return Preferences{}, err
	}
	defer uow.Discard()

	prefs.OwnerID = owner
	if err := prefs.Validate(); err != nil {
		return Preferences{}, s.mapError(err)
	}

	existing, err := uow.Preferences().GetAll(ctx)
	if err != nil {
		return Preferences{}, s.mapError(err)
	}
	if len(existing) > 0 {
		prefs.ID = existing[0].ID
		prefs.CreatedAt = existing[0].CreatedAt
		if err := uow.Preferences().Update(&prefs); err != nil {
			return Preferences{}, s.mapError(err)
		}
	} else {
		prefs.ID = 0
		if err := uow.Preferences().Add(&prefs); err != nil {
			return Preferences{}, s.mapError(err)
		}
	}
	err = uow.Commit(ctx)
	s.observeOperation(ctx, startedAt, "preferences.save", err, map[string]any{"owner_id": owner.String()})
	if err != nil {
		return Preferences{}, s.mapError(err)
	}
	return prefs, nil
}

func (s *Service) GetPreferences(ctx context.Context, owner uuid.UUID) (Preferences, bool, error) {
	uow, err := s.NewUnitOfWork(owner)
	if err != nil {
		return Preferences{}, false, err
	}
	defer uow.Discard()
	existing, err := uow.Preferences().GetAll(ctx)
	if err != nil {
		return Preferences{}, false, s.mapError(err)
	}
	if len(existing) == 0 {
		return Preferences{}, false, nil
	}
	return existing[0], true, nil
}
