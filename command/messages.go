package command

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
)

const (
	TypeCreateJob               = "jobdeck.command.job.create"
	TypeUpdateJob               = "jobdeck.command.job.update"
	TypeRemoveJob               = "jobdeck.command.job.remove"
	TypeCreateApplication       = "jobdeck.command.application.create"
	TypeUpdateApplicationStatus = "jobdeck.command.application.update_status"
	TypeRemoveApplication       = "jobdeck.command.application.remove"
	TypeAddNote                 = "jobdeck.command.note.add"
	TypeRemoveNote              = "jobdeck.command.note.remove"
	TypeSavePreferences         = "jobdeck.command.preferences.save"
	TypeRegisterUser            = "jobdeck.command.user.register"
	TypeLoginUser               = "jobdeck.command.user.login"
	TypeLogoutUser              = "jobdeck.command.user.logout"
)

type CreateJobMessage struct {
	Owner uuid.UUID
	Job   core.Job
}

func (CreateJobMessage) Type() string { return TypeCreateJob }

func (m CreateJobMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if strings.TrimSpace(m.Job.Title) == "" {
		return fmt.Errorf("command: job title is required")
	}
	return nil
}

type UpdateJobMessage struct {
	Owner uuid.UUID
	Job   core.Job
}

func (UpdateJobMessage) Type() string { return TypeUpdateJob }

func (m UpdateJobMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.Job.ID <= 0 {
		return fmt.Errorf("command: job id is required")
	}
	if strings.TrimSpace(m.Job.Title) == "" {
		return fmt.Errorf("command: job title is required")
	}
	return nil
}

type RemoveJobMessage struct {
	Owner uuid.UUID
	JobID int64
}

func (RemoveJobMessage) Type() string { return TypeRemoveJob }

func (m RemoveJobMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.JobID <= 0 {
		return fmt.Errorf("command: job id is required")
	}
	return nil
}

type CreateApplicationMessage struct {
	Owner       uuid.UUID
	Application core.JobApplication
}

func (CreateApplicationMessage) Type() string { return TypeCreateApplication }

func (m CreateApplicationMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.Application.JobID <= 0 {
		return fmt.Errorf("command: application job id is required")
	}
	return nil
}

type UpdateApplicationStatusMessage struct {
	Owner         uuid.UUID
	ApplicationID int64
	Status        core.ApplicationStatus
}

func (UpdateApplicationStatusMessage) Type() string { return TypeUpdateApplicationStatus }

func (m UpdateApplicationStatusMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.ApplicationID <= 0 {
		return fmt.Errorf("command: application id is required")
	}
	if err := m.Status.Validate(); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	return nil
}

type RemoveApplicationMessage struct {
	Owner         uuid.UUID
	ApplicationID int64
}

func (RemoveApplicationMessage) Type() string { return TypeRemoveApplication }

func (m RemoveApplicationMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.ApplicationID <= 0 {
		return fmt.Errorf("command: application id is required")
	}
	return nil
}

type AddNoteMessage struct {
	Owner         uuid.UUID
	ApplicationID int64
	Body          string
}

func (AddNoteMessage) Type() string { return TypeAddNote }

func (m AddNoteMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.ApplicationID <= 0 {
		return fmt.Errorf("command: application id is required")
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("command: note body is required")
	}
	return nil
}

type RemoveNoteMessage struct {
	Owner  uuid.UUID
	NoteID int64
}

func (RemoveNoteMessage) Type() string { return TypeRemoveNote }

func (m RemoveNoteMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if m.NoteID <= 0 {
		return fmt.Errorf("command: note id is required")
	}
	return nil
}

type SavePreferencesMessage struct {
	Owner       uuid.UUID
	Preferences core.Preferences
}

func (SavePreferencesMessage) Type() string { return TypeSavePreferences }

func (m SavePreferencesMessage) Validate() error {
	if err := validateOwner(m.Owner); err != nil {
		return err
	}
	if err := m.Preferences.DesiredJobType.Validate(); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	return nil
}

type RegisterUserMessage struct {
	Input core.RegisterInput
}

func (RegisterUserMessage) Type() string { return TypeRegisterUser }

func (m RegisterUserMessage) Validate() error {
	if strings.TrimSpace(m.Input.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Input.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type LoginUserMessage struct {
	Email    string
	Password string
}

func (LoginUserMessage) Type() string { return TypeLoginUser }

func (m LoginUserMessage) Validate() error {
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type LogoutUserMessage struct {
	AccessToken string
}

func (LogoutUserMessage) Type() string { return TypeLogoutUser }

func (m LogoutUserMessage) Validate() error {
	if strings.TrimSpace(m.AccessToken) == "" {
		return fmt.Errorf("command: access token is required")
	}
	return nil
}

func validateOwner(owner uuid.UUID) error {
	if owner == uuid.Nil {
		return fmt.Errorf("command: owner id is required")
	}
	return nil
}
