package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redirector/internal/config"
	"redirector/internal/model"
	"redirector/internal/repository"
	"redirector/pkg/util"

	"github.com/rs/zerolog/log"
)

// APIKeyService validates API keys and seeds the configured ones
type APIKeyService struct {
	store APIKeyStore
}

// NewAPIKeyService creates a new API Key Service
func NewAPIKeyService(store APIKeyStore) *APIKeyService {
	return &APIKeyService{store: store}
}

// Validate looks up rawKey by its hash. Unknown and inactive keys are reported
// as invalid rather than as errors.
func (s *APIKeyService) Validate(ctx context.Context, rawKey string) (*model.APIKeyValidation, error) {
	if rawKey == "" {
		return &model.APIKeyValidation{}, nil
	}

	key, err := s.store.GetAPIKeyByHash(ctx, util.HashAPIKey(rawKey))
	if errors.Is(err, repository.ErrNotFound) {
		return &model.APIKeyValidation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up API key: %w", err)
	}
	if !key.IsActive {
		return &model.APIKeyValidation{}, nil
	}

	if err := s.store.TouchAPIKey(ctx, key.ID, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Str("app", key.Name).Msg("Failed to record API key use")
	}

	return &model.APIKeyValidation{Valid: true, AppName: key.Name, Key: key}, nil
}

// EnsureKeys inserts every configured key that is not stored yet
func (s *APIKeyService) EnsureKeys(ctx context.Context, keys []config.BootstrapKey) error {
	for _, k := range keys {
		if k.Key == "" {
			log.Warn().Str("app", k.Name).Msg("Skipping bootstrap API key with empty value")
			continue
		}

		created, err := s.store.CreateAPIKeyIfAbsent(ctx, &model.APIKey{
			KeyHash:   util.HashAPIKey(k.Key),
			Name:      k.Name,
			CanCreate: k.CanCreate,
			CanRead:   k.CanRead,
			CanUpdate: k.CanUpdate,
			CanDelete: k.CanDelete,
			IsActive:  true,
		})
		if err != nil {
			return fmt.Errorf("failed to seed API key %q: %w", k.Name, err)
		}
		if created {
			log.Info().Str("app", k.Name).Msg("Seeded API key")
		}
	}
	return nil
}
