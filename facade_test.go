package jobdeck

import (
	"testing"

	jobdeckcommand "github.com/jobdeck/jobdeck/command"
	jobdeckquery "github.com/jobdeck/jobdeck/query"
)

type stubCommandQueryService struct {
	jobdeckcommand.MutatingService
	jobdeckcommand.AuthService
	jobdeckquery.JobReader
	jobdeckquery.ApplicationReader
	jobdeckquery.PreferencesReader
}

func TestNewFacade_RequiresService(t *testing.T) {
	if _, err := NewFacade(nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

func TestNewFacade_WiresAllHandlers(t *testing.T) {
	facade, err := NewFacade(stubCommandQueryService{})
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	commands := facade.Commands()
	if commands.CreateJob == nil || commands.UpdateJob == nil || commands.RemoveJob == nil {
		t.Fatalf("expected job commands to be wired")
	}
	if commands.CreateApplication == nil || commands.UpdateApplicationStatus == nil || commands.RemoveApplication == nil {
		t.Fatalf("expected application commands to be wired")
	}
	if commands.AddNote == nil || commands.RemoveNote == nil || commands.SavePreferences == nil {
		t.Fatalf("expected note and preferences commands to be wired")
	}
	if commands.RegisterUser == nil || commands.LoginUser == nil || commands.LogoutUser == nil {
		t.Fatalf("expected auth commands to be wired")
	}

	queries := facade.Queries()
	if queries.GetJob == nil || queries.ListJobs == nil || queries.FindJobs == nil {
		t.Fatalf("expected job queries to be wired")
	}
	if queries.GetApplication == nil || queries.ListApplications == nil || queries.ListNotes == nil {
		t.Fatalf("expected application queries to be wired")
	}
	if queries.GetPreferences == nil {
		t.Fatalf("expected preferences query to be wired")
	}

	if facade.Service() == nil {
		t.Fatalf("expected service accessor to return the wired service")
	}
}

func TestNilFacade_AccessorsReturnZeroValues(t *testing.T) {
	var facade *Facade
	if facade.Commands().CreateJob != nil {
		t.Fatalf("expected zero commands from nil facade")
	}
	if facade.Queries().GetJob != nil {
		t.Fatalf("expected zero queries from nil facade")
	}
	if facade.Service() != nil {
		t.Fatalf("expected nil service from nil facade")
	}
}
