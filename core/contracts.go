package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// Op is a comparison operator pushed down to the store.
type Op string

const (
	OpEq  Op = "="
	OpNe  Op = "!="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "in"
)

// Predicate is a composable boolean expression over entity fields. Stores
// translate it into a native filter; rows are never loaded first.
type Predicate interface {
	isPredicate()
}

type FieldPredicate struct {
	Field string
	Op    Op
	Value any
}

func (FieldPredicate) isPredicate() {}

type AndPredicate struct {
	Predicates []Predicate
}

func (AndPredicate) isPredicate() {}

type OrPredicate struct {
	Predicates []Predicate
}

func (OrPredicate) isPredicate() {}

func Where(field string, op Op, value any) Predicate {
	return FieldPredicate{Field: field, Op: op, Value: value}
}

func And(predicates ...Predicate) Predicate {
	return AndPredicate{Predicates: predicates}
}

func Or(predicates ...Predicate) Predicate {
	return OrPredicate{Predicates: predicates}
}

// Repository is the uniform CRUD contract shared by all entity types. Reads
// execute immediately; Add, Update and Remove only stage changes against the
// owning unit of work. Nothing is durable until the unit of work commits.
type Repository[T any] interface {
	// GetByID returns the row and true, or the zero value and false when no
	// row matches. Absence is not an error.
	GetByID(ctx context.Context, id int64) (T, bool, error)
	GetAll(ctx context.Context) ([]T, error)
	Find(ctx context.Context, predicate Predicate) ([]T, error)
	Add(entity *T) error
	AddRange(entities ...*T) error
	Update(entity *T) error
	Remove(entity *T) error
	RemoveRange(entities ...*T) error
}

// Per-entity repository names exist for dependency-injection ergonomics and
// test substitution; they add no behavior over Repository[T].
type JobRepository interface {
	Repository[Job]
}

type JobApplicationRepository interface {
	Repository[JobApplication]
}

type ApplicationNoteRepository interface {
	Repository[ApplicationNote]
}

type PreferencesRepository interface {
	Repository[Preferences]
}

// UnitOfWork scopes staged changes to one request and one owner. All
// repositories obtained from it filter by that owner, and Commit applies
// every staged change in a single transaction.
type UnitOfWork interface {
	Owner() uuid.UUID
	Jobs() JobRepository
	Applications() JobApplicationRepository
	Notes() ApplicationNoteRepository
	Preferences() PreferencesRepository
	Commit(ctx context.Context) error
	Discard()
}

// ProfileStore persists provider-issued user records keyed by their UUID.
type ProfileStore interface {
	Upsert(ctx context.Context, profile UserProfile) (UserProfile, error)
	Get(ctx context.Context, id uuid.UUID) (UserProfile, bool, error)
}

// StoreProvider is what a repository factory exposes to the composition root.
type StoreProvider interface {
	NewUnitOfWork(owner uuid.UUID) (UnitOfWork, error)
	Profiles() ProfileStore
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// AuthBridge exchanges credentials with the external identity provider and
// normalizes responses and failures into the domain shapes above.
type AuthBridge interface {
	Register(ctx context.Context, in RegisterInput) (UserProfile, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Logout(ctx context.Context, accessToken string) error
}
