package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
)

// MutatingService is the write surface commands delegate to; *core.Service
// satisfies it.
type MutatingService interface {
	CreateJob(ctx context.Context, owner uuid.UUID, job core.Job) (core.Job, error)
	UpdateJob(ctx context.Context, owner uuid.UUID, job core.Job) (core.Job, error)
	RemoveJob(ctx context.Context, owner uuid.UUID, id int64) error
	CreateApplication(ctx context.Context, owner uuid.UUID, app core.JobApplication) (core.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, owner uuid.UUID, applicationID int64, next core.ApplicationStatus) (core.JobApplication, error)
	RemoveApplication(ctx context.Context, owner uuid.UUID, id int64) error
	AddNote(ctx context.Context, owner uuid.UUID, applicationID int64, body string) (core.ApplicationNote, error)
	RemoveNote(ctx context.Context, owner uuid.UUID, id int64) error
	SavePreferences(ctx context.Context, owner uuid.UUID, prefs core.Preferences) (core.Preferences, error)
}

type AuthService interface {
	Register(ctx context.Context, in core.RegisterInput) (core.UserProfile, error)
	Login(ctx context.Context, email, password string) (core.AuthResult, error)
	Logout(ctx context.Context, accessToken string) error
}

type CreateJobCommand struct {
	service MutatingService
}

func NewCreateJobCommand(service MutatingService) *CreateJobCommand {
	return &CreateJobCommand{service: service}
}

func (c *CreateJobCommand) Execute(ctx context.Context, msg CreateJobMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: job service is required")
	}
	out, err := c.service.CreateJob(ctx, msg.Owner, msg.Job)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateJobCommand struct {
	service MutatingService
}

func NewUpdateJobCommand(service MutatingService) *UpdateJobCommand {
	return &UpdateJobCommand{service: service}
}

func (c *UpdateJobCommand) Execute(ctx context.Context, msg UpdateJobMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: job service is required")
	}
	out, err := c.service.UpdateJob(ctx, msg.Owner, msg.Job)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RemoveJobCommand struct {
	service MutatingService
}

func NewRemoveJobCommand(service MutatingService) *RemoveJobCommand {
	return &RemoveJobCommand{service: service}
}

func (c *RemoveJobCommand) Execute(ctx context.Context, msg RemoveJobMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: job service is required")
	}
	return c.service.RemoveJob(ctx, msg.Owner, msg.JobID)
}

type CreateApplicationCommand struct {
	service MutatingService
}

func NewCreateApplicationCommand(service MutatingService) *CreateApplicationCommand {
	return &CreateApplicationCommand{service: service}
}

func (c *CreateApplicationCommand) Execute(ctx context.Context, msg CreateApplicationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: application service is required")
	}
	out, err := c.service.CreateApplication(ctx, msg.Owner, msg.Application)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateApplicationStatusCommand struct {
	service MutatingService
}

func NewUpdateApplicationStatusCommand(service MutatingService) *UpdateApplicationStatusCommand {
	return &UpdateApplicationStatusCommand{service: service}
}

func (c *UpdateApplicationStatusCommand) Execute(ctx context.Context, msg UpdateApplicationStatusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: application service is required")
	}
	out, err := c.service.UpdateApplicationStatus(ctx, msg.Owner, msg.ApplicationID, msg.Status)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RemoveApplicationCommand struct {
	service MutatingService
}

func NewRemoveApplicationCommand(service MutatingService) *RemoveApplicationCommand {
	return &RemoveApplicationCommand{service: service}
}

func (c *RemoveApplicationCommand) Execute(ctx context.Context, msg RemoveApplicationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: application service is required")
	}
	return c.service.RemoveApplication(ctx, msg.Owner, msg.ApplicationID)
}

type AddNoteCommand struct {
	service MutatingService
}

func NewAddNoteCommand(service MutatingService) *AddNoteCommand {
	return &AddNoteCommand{service: service}
}

func (c *AddNoteCommand) Execute(ctx context.Context, msg AddNoteMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: note service is required")
	}
	out, err := c.service.AddNote(ctx, msg.Owner, msg.ApplicationID, msg.Body)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RemoveNoteCommand struct {
	service MutatingService
}

func NewRemoveNoteCommand(service MutatingService) *RemoveNoteCommand {
	return &RemoveNoteCommand{service: service}
}

func (c *RemoveNoteCommand) Execute(ctx context.Context, msg RemoveNoteMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: note service is required")
	}
	return c.service.RemoveNote(ctx, msg.Owner, msg.NoteID)
}

type SavePreferencesCommand struct {
	service MutatingService
}

func NewSavePreferencesCommand(service MutatingService) *SavePreferencesCommand {
	return &SavePreferencesCommand{service: service}
}

func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: preferences service is required")
	}
	out, err := c.service.SavePreferences(ctx, msg.Owner, msg.Preferences)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RegisterUserCommand struct {
	service AuthService
}

func NewRegisterUserCommand(service AuthService) *RegisterUserCommand {
	return &RegisterUserCommand{service: service}
}

func (c *RegisterUserCommand) Execute(ctx context.Context, msg RegisterUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: auth service is required")
	}
	out, err := c.service.Register(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LoginUserCommand struct {
	service AuthService
}

func NewLoginUserCommand(service AuthService) *LoginUserCommand {
	return &LoginUserCommand{service: service}
}

func (c *LoginUserCommand) Execute(ctx context.Context, msg LoginUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: auth service is required")
	}
	out, err := c.service.Login(ctx, msg.Email, msg.Password)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LogoutUserCommand struct {
	service AuthService
}

func NewLogoutUserCommand(service AuthService) *LogoutUserCommand {
	return &LogoutUserCommand{service: service}
}

func (c *LogoutUserCommand) Execute(ctx context.Context, msg LogoutUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: auth service is required")
	}
	return c.service.Logout(ctx, msg.AccessToken)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
