package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
	"github.com/uptrace/bun"
)

// ProfileStore caches provider-issued user records so the endpoint layer can
// resolve display data without another provider round-trip.
type ProfileStore struct {
	db   *bun.DB
	repo repository.Repository[*userProfileRecord]
}

func (s *ProfileStore) Upsert(ctx context.Context, profile core.UserProfile) (core.UserProfile, error) {
	if s == nil || s.repo == nil {
		return core.UserProfile{}, fmt.Errorf("sqlstore: profile store is not configured")
	}
	if err := profile.Validate(); err != nil {
		return core.UserProfile{}, err
	}

	now := time.Now().UTC()
	record := &userProfileRecord{
		ID:        profile.ID.String(),
		Email:     strings.TrimSpace(profile.Email),
		FullName:  strings.TrimSpace(profile.FullName),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: now,
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	existing, found, err := s.load(ctx, profile.ID)
	if err != nil {
		return core.UserProfile{}, err
	}
	if !found {
		created, createErr := s.repo.Create(ctx, record)
		if createErr != nil {
			return core.UserProfile{}, classifyStoreError(createErr)
		}
		return created.toDomain()
	}

	record.CreatedAt = existing.CreatedAt
	updated, err := s.repo.Update(ctx, record, repository.UpdateByID(record.ID))
	if err != nil {
		return core.UserProfile{}, classifyStoreError(err)
	}
	return updated.toDomain()
}

func (s *ProfileStore) Get(ctx context.Context, id uuid.UUID) (core.UserProfile, bool, error) {
	if s == nil || s.db == nil {
		return core.UserProfile{}, false, fmt.Errorf("sqlstore: profile store is not configured")
	}
	record, found, err := s.load(ctx, id)
	if err != nil {
		return core.UserProfile{}, false, err
	}
	if !found {
		return core.UserProfile{}, false, nil
	}
	profile, err := record.toDomain()
	if err != nil {
		return core.UserProfile{}, false, err
	}
	return profile, true, nil
}

func (s *ProfileStore) load(ctx context.Context, id uuid.UUID) (*userProfileRecord, bool, error) {
	record := &userProfileRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, classifyStoreError(err)
	}
	return record, true, nil
}

var _ core.ProfileStore = (*ProfileStore)(nil)
