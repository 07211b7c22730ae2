package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateJobMessage]               = (*CreateJobCommand)(nil)
	_ gocmd.Commander[UpdateJobMessage]               = (*UpdateJobCommand)(nil)
	_ gocmd.Commander[RemoveJobMessage]               = (*RemoveJobCommand)(nil)
	_ gocmd.Commander[CreateApplicationMessage]       = (*CreateApplicationCommand)(nil)
	_ gocmd.Commander[UpdateApplicationStatusMessage] = (*UpdateApplicationStatusCommand)(nil)
	_ gocmd.Commander[RemoveApplicationMessage]       = (*RemoveApplicationCommand)(nil)
	_ gocmd.Commander[AddNoteMessage]                 = (*AddNoteCommand)(nil)
	_ gocmd.Commander[RemoveNoteMessage]              = (*RemoveNoteCommand)(nil)
	_ gocmd.Commander[SavePreferencesMessage]         = (*SavePreferencesCommand)(nil)
	_ gocmd.Commander[RegisterUserMessage]            = (*RegisterUserCommand)(nil)
	_ gocmd.Commander[LoginUserMessage]               = (*LoginUserCommand)(nil)
	_ gocmd.Commander[LogoutUserMessage]              = (*LogoutUserCommand)(nil)
)
