package jobdeck

import (
	"fmt"

	jobdeckcommand "github.com/jobdeck/jobdeck/command"
	"github.com/jobdeck/jobdeck/core"
	jobdeckquery "github.com/jobdeck/jobdeck/query"
)

var _ CommandQueryService = (*core.Service)(nil)

// CommandQueryService is the service surface the facade dispatches against.
// *core.Service satisfies it.
type CommandQueryService interface {
	jobdeckcommand.MutatingService
	jobdeckcommand.AuthService
	jobdeckquery.JobReader
	jobdeckquery.ApplicationReader
	jobdeckquery.PreferencesReader
}

type Commands struct {
	CreateJob               *jobdeckcommand.CreateJobCommand
	UpdateJob               *jobdeckcommand.UpdateJobCommand
	RemoveJob               *jobdeckcommand.RemoveJobCommand
	CreateApplication       *jobdeckcommand.CreateApplicationCommand
	UpdateApplicationStatus *jobdeckcommand.UpdateApplicationStatusCommand
	RemoveApplication       *jobdeckcommand.RemoveApplicationCommand
	AddNote                 *jobdeckcommand.AddNoteCommand
	RemoveNote              *jobdeckcommand.RemoveNoteCommand
	SavePreferences         *jobdeckcommand.SavePreferencesCommand
	RegisterUser            *jobdeckcommand.RegisterUserCommand
	LoginUser               *jobdeckcommand.LoginUserCommand
	LogoutUser              *jobdeckcommand.LogoutUserCommand
}

type Queries struct {
	GetJob           *jobdeckquery.GetJobQuery
	ListJobs         *jobdeckquery.ListJobsQuery
	FindJobs         *jobdeckquery.FindJobsQuery
	GetApplication   *jobdeckquery.GetApplicationQuery
	ListApplications *jobdeckquery.ListApplicationsQuery
	ListNotes        *jobdeckquery.ListNotesQuery
	GetPreferences   *jobdeckquery.GetPreferencesQuery
}

// Facade bundles the command and query handlers for one service so the
// endpoint layer wires a single value instead of twenty constructors.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("jobdeck: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateJob:               jobdeckcommand.NewCreateJobCommand(service),
		UpdateJob:               jobdeckcommand.NewUpdateJobCommand(service),
		RemoveJob:               jobdeckcommand.NewRemoveJobCommand(service),
		CreateApplication:       jobdeckcommand.NewCreateApplicationCommand(service),
		UpdateApplicationStatus: jobdeckcommand.NewUpdateApplicationStatusCommand(service),
		RemoveApplication:       jobdeckcommand.NewRemoveApplicationCommand(service),
		AddNote:                 jobdeckcommand.NewAddNoteCommand(service),
		RemoveNote:              jobdeckcommand.NewRemoveNoteCommand(service),
		SavePreferences:         jobdeckcommand.NewSavePreferencesCommand(service),
		RegisterUser:            jobdeckcommand.NewRegisterUserCommand(service),
		LoginUser:               jobdeckcommand.NewLoginUserCommand(service),
		LogoutUser:              jobdeckcommand.NewLogoutUserCommand(service),
	}
	facade.queries = Queries{
		GetJob:           jobdeckquery.NewGetJobQuery(service),
		ListJobs:         jobdeckquery.NewListJobsQuery(service),
		FindJobs:         jobdeckquery.NewFindJobsQuery(service),
		GetApplication:   jobdeckquery.NewGetApplicationQuery(service),
		ListApplications: jobdeckquery.NewListApplicationsQuery(service),
		ListNotes:        jobdeckquery.NewListNotesQuery(service),
		GetPreferences:   jobdeckquery.NewGetPreferencesQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
