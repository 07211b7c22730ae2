package query

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
)

const (
	TypeGetJob           = "jobdeck.query.job.get"
	TypeListJobs         = "jobdeck.query.job.list"
	TypeFindJobs         = "jobdeck.query.job.find"
	TypeGetApplication   = "jobdeck.query.application.get"
	TypeListApplications = "jobdeck.query.application.list"
	TypeListNotes        = "jobdeck.query.note.list"
	TypeGetPreferences   = "jobdeck.query.preferences.get"
)

type GetJobMessage struct {
	Owner uuid.UUID
	JobID int64
}

func (GetJobMessage) Type() string { return TypeGetJob }

func (m GetJobMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.JobID <= 0 {
		return fmt.Errorf("query: job id is required")
	}
	return nil
}

type ListJobsMessage struct {
	Owner uuid.UUID
}

func (ListJobsMessage) Type() string { return TypeListJobs }

func (m ListJobsMessage) Validate() error {
	return validateOwner(m.Owner)
}

type FindJobsMessage struct {
	Owner     uuid.UUID
	Predicate core.Predicate
}

func (FindJobsMessage) Type() string { return TypeFindJobs }

func (m FindJobsMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.Predicate == nil {
		return fmt.Errorf("query: predicate is required")
	}
	return nil
}

type GetApplicationMessage struct {
	Owner         uuid.UUID
	ApplicationID int64
}

func (GetApplicationMessage) Type() string { return TypeGetApplication }

func (m GetApplicationMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.ApplicationID <= 0 {
		return fmt.Errorf("query: application id is required")
	}
	return nil
}

type ListApplicationsMessage struct {
	Owner uuid.UUID
}

func (ListApplicationsMessage) Type() string { return TypeListApplications }

func (m ListApplicationsMessage) Validate() error {
	return validateOwner(m.Owner)
}

type ListNotesMessage struct {
	Owner         uuid.UUID
	ApplicationID int64
}

func (ListNotesMessage) Type() string { return TypeListNotes }

func (m ListNotesMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.ApplicationID <= 0 {
		return fmt.Errorf("query: application id is required")
	}
	return nil
}

type GetPreferencesMessage struct {
	Owner uuid.UUID
}

func (GetPreferencesMessage) Type() string { return TypeGetPreferences }

func (m GetPreferencesMessage) Validate() error {
	return validateOwner(m.Owner)
}

func validateOwner(owner uuid.UUID) error {
	if owner == uuid.Nil {
		return fmt.Errorf("query: owner id is required")
	}
	return nil
}
