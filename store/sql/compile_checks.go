package sqlstore

import "github.com/jobdeck/jobdeck/core"

var (
	_ core.JobRepository             = (*Repository[core.Job, *jobRecord])(nil)
	_ core.JobApplicationRepository  = (*Repository[core.JobApplication, *jobApplicationRecord])(nil)
	_ core.ApplicationNoteRepository = (*Repository[core.ApplicationNote, *applicationNoteRecord])(nil)
	_ core.PreferencesRepository     = (*Repository[core.Preferences, *preferencesRecord])(nil)
)
