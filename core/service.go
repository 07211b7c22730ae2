package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Service is the composition core: resolved configuration, the store
// provider, and the auth bridge, behind one wiring surface for the endpoint
// layer.
type Service struct {
	config          Config
	logger          Logger
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	storeProvider   StoreProvider
	authBridge      AuthBridge
}

// storeFactory is satisfied by the sql store's RepositoryFactory without core
// importing the store package.
type storeFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("jobdeck", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("jobdeck"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, NewConfigurationError("core: load configuration: " + err.Error())
	}
	resolved, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, err
	}

	storeProvider := builder.storeProvider
	if storeProvider == nil {
		if factory, ok := builder.repositoryFactory.(storeFactory); ok {
			built, buildErr := factory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, buildErr
			}
			storeProvider = built
		}
	}
	if storeProvider == nil {
		return nil, NewConfigurationError("core: store provider is required")
	}
	if builder.authBridge == nil {
		return nil, NewConfigurationError("core: auth bridge is required")
	}

	return &Service{
		config:          resolved,
		logger:          logger,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		storeProvider:   storeProvider,
		authBridge:      builder.authBridge,
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Logger() Logger {
	if s == nil {
		return glog.Nop()
	}
	return s.logger
}

// NewUnitOfWork opens a request-scoped unit of work bound to one owner. The
// caller commits or discards it before the request ends.
func (s *Service) NewUnitOfWork(owner uuid.UUID) (UnitOfWork, error) {
	if s == nil || s.storeProvider == nil {
		return nil, NewConfigurationError("core: service is not configured")
	}
	if owner == uuid.Nil {
		return nil, NewValidationError("owner", "owner id is required")
	}
	return s.storeProvider.NewUnitOfWork(owner)
}

func (s *Service) Profiles() ProfileStore {
	if s == nil || s.storeProvider == nil {
		return nil
	}
	return s.storeProvider.Profiles()
}

// Register delegates to the auth bridge and records the provider-issued user
// locally on success.
func (s *Service) Register(ctx context.Context, in RegisterInput) (UserProfile, error) {
	startedAt := time.Now().UTC()
	if s == nil || s.authBridge == nil {
		return UserProfile{}, NewConfigurationError("core: auth bridge is not configured")
	}
	profile, err := s.authBridge.Register(ctx, in)
	s.observeOperation(ctx, startedAt, "auth.register", err, map[string]any{"email": in.Email})
	if err != nil {
		return UserProfile{}, s.mapError(err)
	}
	s.recordProfile(ctx, profile)
	return profile, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	startedAt := time.Now().UTC()
	if s == nil || s.authBridge == nil {
		return AuthResult{}, NewConfigurationError("core: auth bridge is not configured")
	}
	result, err := s.authBridge.Login(ctx, email, password)
	s.observeOperation(ctx, startedAt, "auth.login", err, map[string]any{"email": email})
	if err != nil {
		return AuthResult{}, s.mapError(err)
	}
	s.recordProfile(ctx, result.User)
	return result, nil
}

func (s *Service) Logout(ctx context.Context, accessToken string) error {
	startedAt := time.Now().UTC()
	if s == nil || s.authBridge == nil {
		return NewConfigurationError("core: auth bridge is not configured")
	}
	err := s.authBridge.Logout(ctx, accessToken)
	s.observeOperation(ctx, startedAt, "auth.logout", err, nil)
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// notFound builds mutation-target-missing errors through the configured
// error factory so embedders can decorate them.
func (s *Service) notFound(resource string, id int64) error {
	factory := goerrors.New
	if s != nil && s.errorFactory != nil {
		factory = s.errorFactory
	}
	return factory(
		fmt.Sprintf("core: %s %d not found", resource, id),
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorCodeNotFound)
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	if mapped := s.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

// recordProfile is best effort: a profile cache miss never fails the auth
// operation that produced it.
func (s *Service) recordProfile(ctx context.Context, profile UserProfile) {
	if s == nil || s.storeProvider == nil {
		return
	}
	store := s.storeProvider.Profiles()
	if store == nil {
		return
	}
	if err := profile.Validate(); err != nil {
		return
	}
	if _, err := store.Upsert(ctx, profile); err != nil {
		s.logError(ctx, "profile upsert failed", map[string]any{
			"profile_id": profile.ID.String(),
			"error":      err.Error(),
		})
	}
}
