package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
	"github.com/uptrace/bun"
)

type stagedOp func(ctx context.Context, tx bun.Tx) error

// UnitOfWork scopes staged writes to one request and one owner. Commit runs
// every staged operation inside a single transaction; the identity the store
// assigns on insert becomes visible on the entity only after Commit returns.
// A unit of work is not safe for concurrent use; each request gets its own.
type UnitOfWork struct {
	db    *bun.DB
	owner uuid.UUID

	staged    []stagedOp
	committed bool

	jobs         core.JobRepository
	applications core.JobApplicationRepository
	notes        core.ApplicationNoteRepository
	preferences  core.PreferencesRepository
}

func newUnitOfWork(db *bun.DB, owner uuid.UUID) *UnitOfWork {
	uow := &UnitOfWork{
		db:    db,
		owner: owner,
	}
	uow.jobs = newRepository(uow, jobHandlers())
	uow.applications = newRepository(uow, jobApplicationHandlers())
	uow.notes = newRepository(uow, applicationNoteHandlers())
	uow.preferences = newRepository(uow, preferencesHandlers())
	return uow
}

func (u *UnitOfWork) Owner() uuid.UUID {
	if u == nil {
		return uuid.Nil
	}
	return u.owner
}

func (u *UnitOfWork) Jobs() core.JobRepository {
	return u.jobs
}

func (u *UnitOfWork) Applications() core.JobApplicationRepository {
	return u.applications
}

func (u *UnitOfWork) Notes() core.ApplicationNoteRepository {
	return u.notes
}

func (u *UnitOfWork) Preferences() core.PreferencesRepository {
	return u.preferences
}

func (u *UnitOfWork) stage(op stagedOp) {
	u.staged = append(u.staged, op)
}

// Commit applies every staged change in order within one transaction. The
// first failure rolls back everything. A committed unit of work cannot be
// reused.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u == nil || u.db == nil {
		return fmt.Errorf("sqlstore: unit of work is not configured")
	}
	if u.committed {
		return fmt.Errorf("sqlstore: unit of work already committed")
	}
	if len(u.staged) == 0 {
		u.committed = true
		return nil
	}

	err := u.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, op := range u.staged {
			if err := op(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.staged = nil
	u.committed = true
	return nil
}

// Discard drops all staged changes without touching the store.
func (u *UnitOfWork) Discard() {
	if u == nil {
		return
	}
	u.staged = nil
}

var _ core.UnitOfWork = (*UnitOfWork)(nil)
