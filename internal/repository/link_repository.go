package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rowjay/link-batch-shortener/internal/constants"
	"github.com/rowjay/link-batch-shortener/internal/database"
	serviceErrors "github.com/rowjay/link-batch-shortener/internal/errors"
	"github.com/rowjay/link-batch-shortener/internal/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=link_repository.go -destination=../mocks/mock_link_repository.go -package=mocks

// LinkRepository is the record store: the whole collection lives as one JSON
// array under a single key. Records are only ever appended or cleared.
type LinkRepository interface {
	Append(ctx context.Context, records []models.LinkRecord) error
	LoadAll(ctx context.Context) ([]models.LinkRecord, error)
	ClearAll(ctx context.Context) error
}

type linkRepositoryImpl struct {
	store database.KeyValueStore
	key   string
}

func NewLinkRepository(store database.KeyValueStore, key string) LinkRepository {
	if key == "" {
		key = constants.StorageKey
	}
	return &linkRepositoryImpl{store: store, key: key}
}

func (r *linkRepositoryImpl) Append(ctx context.Context, records []models.LinkRecord) error {
	if len(records) == 0 {
		return nil
	}
	log.Debug().Int("count", len(records)).Str("key", r.key).Msg("Appending link records")

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	err := r.store.Update(ctx, r.key, func(current string, found bool) (string, error) {
		// Unlike reads, a write must not replace data it cannot parse.
		existing := []models.LinkRecord{}
		if found && current != "" {
			if err := json.Unmarshal([]byte(current), &existing); err != nil {
				return "", fmt.Errorf("stored records are not a valid array: %w", err)
			}
		}
		data, err := json.Marshal(append(existing, records...))
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to append link records")
		return serviceErrors.NewInternalError("repository.Append", "failed to persist records", err)
	}

	log.Info().Int("count", len(records)).Msg("Link records appended")
	return nil
}

// LoadAll never fails because of what is stored: a missing key, an empty value
// or unparsable data all read as an empty collection, and so does a backend
// that cannot be reached.
func (r *linkRepositoryImpl) LoadAll(ctx context.Context) ([]models.LinkRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	raw, found, err := r.store.GetItem(ctx, r.key)
	if err != nil {
		log.Warn().Err(err).Str("key", r.key).Msg("Failed to read link records, treating as empty")
		return []models.LinkRecord{}, nil
	}
	return r.decode(raw, found), nil
}

func (r *linkRepositoryImpl) ClearAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if err := r.store.RemoveItem(ctx, r.key); err != nil {
		log.Error().Err(err).Msg("Failed to clear link records")
		return serviceErrors.NewInternalError("repository.ClearAll", "failed to clear records", err)
	}
	log.Info().Str("key", r.key).Msg("All link records cleared")
	return nil
}

func (r *linkRepositoryImpl) decode(raw string, found bool) []models.LinkRecord {
	records := []models.LinkRecord{}
	if !found || raw == "" {
		return records
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Warn().Err(err).Str("key", r.key).Msg("Stored link records are not valid JSON, treating as empty")
		return []models.LinkRecord{}
	}
	if records == nil {
		// "null" decodes to a nil slice
		return []models.LinkRecord{}
	}
	return records
}
