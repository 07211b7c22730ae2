package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
	"github.com/uptrace/bun"
)

// entityHandlers bind one domain type to its record type, mirroring the
// ModelHandlers shape the uuid-keyed stores use.
type entityHandlers[T any, R any] struct {
	NewRecord  func() R
	ToDomain   func(R) (T, error)
	FromDomain func(owner uuid.UUID, entity *T, now time.Time) R
	EntityID   func(entity *T) int64
	Sync       func(entity *T, record R)
	Relations  []string
}

// Repository is the single generic implementation behind every per-entity
// repository interface. Reads execute against the database immediately;
// writes stage closures on the owning unit of work and run inside its commit
// transaction. All operations are scoped to the bound owner.
type Repository[T any, R any] struct {
	db       bun.IDB
	uow      *UnitOfWork
	owner    uuid.UUID
	handlers entityHandlers[T, R]
}

func newRepository[T any, R any](uow *UnitOfWork, handlers entityHandlers[T, R]) *Repository[T, R] {
	return &Repository[T, R]{
		db:       uow.db,
		uow:      uow,
		owner:    uow.owner,
		handlers: handlers,
	}
}

func (r *Repository[T, R]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	if id <= 0 {
		return zero, false, nil
	}
	record := r.handlers.NewRecord()
	q := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", r.owner.String())
	for _, relation := range r.handlers.Relations {
		q = q.Relation(relation)
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		if err == sql.ErrNoRows {
			return zero, false, nil
		}
		return zero, false, classifyStoreError(err)
	}
	entity, err := r.handlers.ToDomain(record)
	if err != nil {
		return zero, false, err
	}
	return entity, true, nil
}

func (r *Repository[T, R]) GetAll(ctx context.Context) ([]T, error) {
	return r.selectMany(ctx, nil)
}

func (r *Repository[T, R]) Find(ctx context.Context, predicate core.Predicate) ([]T, error) {
	return r.selectMany(ctx, predicate)
}

func (r *Repository[T, R]) selectMany(ctx context.Context, predicate core.Predicate) ([]T, error) {
	var records []R
	q := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", r.owner.String())
	if predicate != nil {
		var err error
		q, err = applyPredicate(q, predicate)
		if err != nil {
			return nil, err
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, classifyStoreError(err)
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		entity, err := r.handlers.ToDomain(record)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func (r *Repository[T, R]) Add(entity *T) error {
	if entity == nil {
		return core.NewValidationError("entity", "entity is required")
	}
	if r.handlers.EntityID(entity) != 0 {
		return core.NewValidationError("id", "new entities must not carry an id")
	}
	r.uow.stage(func(ctx context.Context, tx bun.Tx) error {
		record := r.handlers.FromDomain(r.owner, entity, time.Now().UTC())
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return classifyStoreError(err)
		}
		r.handlers.Sync(entity, record)
		return nil
	})
	return nil
}

func (r *Repository[T, R]) AddRange(entities ...*T) error {
	for _, entity := range entities {
		if err := r.Add(entity); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T, R]) Update(entity *T) error {
	if entity == nil {
		return core.NewValidationError("entity", "entity is required")
	}
	if r.handlers.EntityID(entity) <= 0 {
		return core.NewValidationError("id", "updates require a persisted entity")
	}
	r.uow.stage(func(ctx context.Context, tx bun.Tx) error {
		record := r.handlers.FromDomain(r.owner, entity, time.Now().UTC())
		// created_at is written once at insert and owner_id is immutable;
		// neither may be rewritten by a full-overwrite update payload.
		res, err := tx.NewUpdate().
			Model(record).
			ExcludeColumn("created_at", "owner_id").
			WherePK().
			Where("?TableAlias.owner_id = ?", r.owner.String()).
			Exec(ctx)
		if err != nil {
			return classifyStoreError(err)
		}
		if affected, affErr := res.RowsAffected(); affErr == nil && affected == 0 {
			return errRowVanished(r.handlers.EntityID(entity))
		}
		r.handlers.Sync(entity, record)
		return nil
	})
	return nil
}

func (r *Repository[T, R]) Remove(entity *T) error {
	if entity == nil {
		return core.NewValidationError("entity", "entity is required")
	}
	if r.handlers.EntityID(entity) <= 0 {
		return core.NewValidationError("id", "removals require a persisted entity")
	}
	r.uow.stage(func(ctx context.Context, tx bun.Tx) error {
		record := r.handlers.FromDomain(r.owner, entity, time.Now().UTC())
		if _, err := tx.NewDelete().
			Model(record).
			WherePK().
			Where("?TableAlias.owner_id = ?", r.owner.String()).
			Exec(ctx); err != nil {
			return classifyStoreError(err)
		}
		return nil
	})
	return nil
}

func (r *Repository[T, R]) RemoveRange(entities ...*T) error {
	for _, entity := range entities {
		if err := r.Remove(entity); err != nil {
			return err
		}
	}
	return nil
}

func jobHandlers() entityHandlers[core.Job, *jobRecord] {
	return entityHandlers[core.Job, *jobRecord]{
		NewRecord: func() *jobRecord {
			return &jobRecord{}
		},
		ToDomain: func(record *jobRecord) (core.Job, error) {
			return record.toDomain()
		},
		FromDomain: jobFromDomain,
		EntityID: func(job *core.Job) int64 {
			return job.ID
		},
		Sync: func(job *core.Job, record *jobRecord) {
			job.ID = record.ID
			job.CreatedAt = record.CreatedAt
			job.UpdatedAt = record.UpdatedAt
		},
		Relations: []string{"Application"},
	}
}

func jobApplicationHandlers() entityHandlers[core.JobApplication, *jobApplicationRecord] {
	return entityHandlers[core.JobApplication, *jobApplicationRecord]{
		NewRecord: func() *jobApplicationRecord {
			return &jobApplicationRecord{}
		},
		ToDomain: func(record *jobApplicationRecord) (core.JobApplication, error) {
			return record.toDomain()
		},
		FromDomain: jobApplicationFromDomain,
		EntityID: func(app *core.JobApplication) int64 {
			return app.ID
		},
		Sync: func(app *core.JobApplication, record *jobApplicationRecord) {
			app.ID = record.ID
			app.CreatedAt = record.CreatedAt
			app.UpdatedAt = record.UpdatedAt
			app.AppliedAt = record.AppliedAt
			app.StatusUpdatedAt = record.StatusUpdatedAt
		},
		Relations: []string{"Notes"},
	}
}

func applicationNoteHandlers() entityHandlers[core.ApplicationNote, *applicationNoteRecord] {
	return entityHandlers[core.ApplicationNote, *applicationNoteRecord]{
		NewRecord: func() *applicationNoteRecord {
			return &applicationNoteRecord{}
		},
		ToDomain: func(record *applicationNoteRecord) (core.ApplicationNote, error) {
			return record.toDomain()
		},
		FromDomain: applicationNoteFromDomain,
		EntityID: func(note *core.ApplicationNote) int64 {
			return note.ID
		},
		Sync: func(note *core.ApplicationNote, record *applicationNoteRecord) {
			note.ID = record.ID
			note.CreatedAt = record.CreatedAt
			note.UpdatedAt = record.UpdatedAt
		},
	}
}

func preferencesHandlers() entityHandlers[core.Preferences, *preferencesRecord] {
	return entityHandlers[core.Preferences, *preferencesRecord]{
		NewRecord: func() *preferencesRecord {
			return &preferencesRecord{}
		},
		ToDomain: func(record *preferencesRecord) (core.Preferences, error) {
			return record.toDomain()
		},
		FromDomain: preferencesFromDomain,
		EntityID: func(prefs *core.Preferences) int64 {
			return prefs.ID
		},
		Sync: func(prefs *core.Preferences, record *preferencesRecord) {
			prefs.ID = record.ID
			prefs.CreatedAt = record.CreatedAt
			prefs.UpdatedAt = record.UpdatedAt
		},
	}
}
