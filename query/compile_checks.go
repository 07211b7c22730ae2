package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/jobdeck/jobdeck/core"
)

var (
	_ gocmd.Querier[GetJobMessage, GetJobResult]                    = (*GetJobQuery)(nil)
	_ gocmd.Querier[ListJobsMessage, []core.Job]                    = (*ListJobsQuery)(nil)
	_ gocmd.Querier[FindJobsMessage, []core.Job]                    = (*FindJobsQuery)(nil)
	_ gocmd.Querier[GetApplicationMessage, GetApplicationResult]    = (*GetApplicationQuery)(nil)
	_ gocmd.Querier[ListApplicationsMessage, []core.JobApplication] = (*ListApplicationsQuery)(nil)
	_ gocmd.Querier[ListNotesMessage, []core.ApplicationNote]       = (*ListNotesQuery)(nil)
	_ gocmd.Querier[GetPreferencesMessage, GetPreferencesResult]    = (*GetPreferencesQuery)(nil)
)
