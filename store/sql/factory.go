package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
	"github.com/uptrace/bun"
)

// RepositoryFactory owns the database handle and builds request-scoped units
// of work plus the process-wide profile store.
type RepositoryFactory struct {
	db *bun.DB

	profileStore *ProfileStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.profileStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

// NewUnitOfWork opens an owner-scoped unit of work. Every repository obtained
// from it filters by that owner.
func (f *RepositoryFactory) NewUnitOfWork(owner uuid.UUID) (core.UnitOfWork, error) {
	if f == nil || f.db == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is not configured")
	}
	if owner == uuid.Nil {
		return nil, fmt.Errorf("sqlstore: owner id is required")
	}
	return newUnitOfWork(f.db, owner), nil
}

func (f *RepositoryFactory) Profiles() core.ProfileStore {
	if f == nil || f.profileStore == nil {
		return nil
	}
	return f.profileStore
}

func (f *RepositoryFactory) initStores() error {
	profileRepo := repository.NewRepository[*userProfileRecord](f.db, profileHandlers())
	if validator, ok := profileRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid profile repository wiring: %w", err)
		}
	}
	f.profileStore = &ProfileStore{
		db:   f.db,
		repo: profileRepo,
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

var _ core.StoreProvider = (*RepositoryFactory)(nil)
