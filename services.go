package jobdeck

import "github.com/jobdeck/jobdeck/core"

type Config = core.Config

type IdentityConfig = core.IdentityConfig

type StorageConfig = core.StorageConfig

type Option = core.Option

type Service = core.Service

type Job = core.Job
type JobType = core.JobType
type JobApplication = core.JobApplication
type ApplicationStatus = core.ApplicationStatus
type ApplicationNote = core.ApplicationNote
type Preferences = core.Preferences
type SalaryRange = core.SalaryRange
type UserProfile = core.UserProfile
type AuthResult = core.AuthResult
type RegisterInput = core.RegisterInput

type UnitOfWork = core.UnitOfWork
type StoreProvider = core.StoreProvider
type ProfileStore = core.ProfileStore
type AuthBridge = core.AuthBridge
type Predicate = core.Predicate

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithStoreProvider     = core.WithStoreProvider
	WithAuthBridge        = core.WithAuthBridge
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
)

var (
	Where = core.Where
	And   = core.And
	Or    = core.Or
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewSalaryRange(min, max int64) (SalaryRange, error) {
	return core.NewSalaryRange(min, max)
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
