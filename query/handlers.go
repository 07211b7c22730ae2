package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
)

// JobReader is the read surface queries delegate to; *core.Service satisfies
// it. Absence travels as a boolean, never as an error.
type JobReader interface {
	GetJob(ctx context.Context, owner uuid.UUID, id int64) (core.Job, bool, error)
	ListJobs(ctx context.Context, owner uuid.UUID) ([]core.Job, error)
	FindJobs(ctx context.Context, owner uuid.UUID, predicate core.Predicate) ([]core.Job, error)
}

type ApplicationReader interface {
	GetApplication(ctx context.Context, owner uuid.UUID, id int64) (core.JobApplication, bool, error)
	ListApplications(ctx context.Context, owner uuid.UUID) ([]core.JobApplication, error)
	ListNotes(ctx context.Context, owner uuid.UUID, applicationID int64) ([]core.ApplicationNote, error)
}

type PreferencesReader interface {
	GetPreferences(ctx context.Context, owner uuid.UUID) (core.Preferences, bool, error)
}

// GetJobResult wraps the lookup outcome so the Querier contract can surface
// absence without an error.
type GetJobResult struct {
	Job   core.Job
	Found bool
}

type GetApplicationResult struct {
	Application core.JobApplication
	Found       bool
}

type GetPreferencesResult struct {
	Preferences core.Preferences
	Found       bool
}

type GetJobQuery struct {
	reader JobReader
}

func NewGetJobQuery(reader JobReader) *GetJobQuery {
	return &GetJobQuery{reader: reader}
}

func (q *GetJobQuery) Query(ctx context.Context, msg GetJobMessage) (GetJobResult, error) {
	if q == nil || q.reader == nil {
		return GetJobResult{}, queryDependencyError("query: job reader is required")
	}
	job, found, err := q.reader.GetJob(ctx, msg.Owner, msg.JobID)
	if err != nil {
		return GetJobResult{}, err
	}
	return GetJobResult{Job: job, Found: found}, nil
}

type ListJobsQuery struct {
	reader JobReader
}

func NewListJobsQuery(reader JobReader) *ListJobsQuery {
	return &ListJobsQuery{reader: reader}
}

func (q *ListJobsQuery) Query(ctx context.Context, msg ListJobsMessage) ([]core.Job, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: job reader is required")
	}
	return q.reader.ListJobs(ctx, msg.Owner)
}

type FindJobsQuery struct {
	reader JobReader
}

func NewFindJobsQuery(reader JobReader) *FindJobsQuery {
	return &FindJobsQuery{reader: reader}
}

func (q *FindJobsQuery) Query(ctx context.Context, msg FindJobsMessage) ([]core.Job, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: job reader is required")
	}
	return q.reader.FindJobs(ctx, msg.Owner, msg.Predicate)
}

type GetApplicationQuery struct {
	reader ApplicationReader
}

func NewGetApplicationQuery(reader ApplicationReader) *GetApplicationQuery {
	return &GetApplicationQuery{reader: reader}
}

func (q *GetApplicationQuery) Query(ctx context.Context, msg GetApplicationMessage) (GetApplicationResult, error) {
	if q == nil || q.reader == nil {
		return GetApplicationResult{}, queryDependencyError("query: application reader is required")
	}
	app, found, err := q.reader.GetApplication(ctx, msg.Owner, msg.ApplicationID)
	if err != nil {
		return GetApplicationResult{}, err
	}
	return GetApplicationResult{Application: app, Found: found}, nil
}

type ListApplicationsQuery struct {
	reader ApplicationReader
}

func NewListApplicationsQuery(reader ApplicationReader) *ListApplicationsQuery {
	return &ListApplicationsQuery{reader: reader}
}

func (q *ListApplicationsQuery) Query(ctx context.Context, msg ListApplicationsMessage) ([]core.JobApplication, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: application reader is required")
	}
	return q.reader.ListApplications(ctx, msg.Owner)
}

type ListNotesQuery struct {
	reader ApplicationReader
}

func NewListNotesQuery(reader ApplicationReader) *ListNotesQuery {
	return &ListNotesQuery{reader: reader}
}

func (q *ListNotesQuery) Query(ctx context.Context, msg ListNotesMessage) ([]core.ApplicationNote, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: application reader is required")
	}
	return q.reader.ListNotes(ctx, msg.Owner, msg.ApplicationID)
}

type GetPreferencesQuery struct {
	reader PreferencesReader
}

func NewGetPreferencesQuery(reader PreferencesReader) *GetPreferencesQuery {
	return &GetPreferencesQuery{reader: reader}
}

func (q *GetPreferencesQuery) Query(ctx context.Context, msg GetPreferencesMessage) (GetPreferencesResult, error) {
	if q == nil || q.reader == nil {
		return GetPreferencesResult{}, queryDependencyError("query: preferences reader is required")
	}
	prefs, found, err := q.reader.GetPreferences(ctx, msg.Owner)
	if err != nil {
		return GetPreferencesResult{}, err
	}
	return GetPreferencesResult{Preferences: prefs, Found: found}, nil
}
