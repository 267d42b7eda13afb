package services

import (
	"context"
	"time"

	"github.com/rowjay/link-batch-shortener/internal/constants"
	"github.com/rowjay/link-batch-shortener/internal/dto"
	"github.com/rowjay/link-batch-shortener/internal/errors"
	"github.com/rowjay/link-batch-shortener/internal/metrics"
	"github.com/rowjay/link-batch-shortener/internal/models"
	"github.com/rowjay/link-batch-shortener/internal/repository"
	"github.com/rowjay/link-batch-shortener/internal/utils"
	"github.com/rowjay/link-batch-shortener/internal/validator"
	"github.com/rs/zerolog/log"
)

type LinkService interface {
	ShortenBatch(ctx context.Context, req *dto.ShortenBatchRequest) (*dto.ShortenBatchResponse, error)
	Resolve(ctx context.Context, shortcode string) (*models.Resolution, error)
	GetStatistics(ctx context.Context) (*models.Statistics, error)
	ClearAll(ctx context.Context) error
}

type Options struct {
	ShortCodeLength int
	MaxRetries      int
	// EnforceUniqueShortcodes rejects user codes already in use and retries
	// generated codes that collide. Off by default: the store itself allows
	// duplicates and resolution picks the first match.
	EnforceUniqueShortcodes bool
	Metrics                 *metrics.Metrics
	Now                     func() time.Time
}

type linkServiceImpl struct {
	repo          repository.LinkRepository
	validator     *validator.LinkValidator
	generator     *utils.ShortCodeGenerator
	enforceUnique bool
	maxRetries    int
	metrics       *metrics.Metrics
	nowFunc       func() time.Time
}

func NewLinkService(repo repository.LinkRepository, opts Options) LinkService {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = constants.MaxRetries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &linkServiceImpl{
		repo:          repo,
		validator:     validator.NewLinkValidator(),
		generator:     utils.NewShortCodeGenerator(opts.ShortCodeLength),
		enforceUnique: opts.EnforceUniqueShortcodes,
		maxRetries:    opts.MaxRetries,
		metrics:       opts.Metrics,
		nowFunc:       opts.Now,
	}
}

// ShortenBatch is all-or-nothing: every submission is validated, and a single
// failure rejects the whole batch before anything is generated or stored.
func (s *linkServiceImpl) ShortenBatch(ctx context.Context, req *dto.ShortenBatchRequest) (*dto.ShortenBatchResponse, error) {
	fieldErrs := s.validator.ValidateBatch(req.URLs)

	taken := map[string]struct{}{}
	if s.enforceUnique {
		existing, err := s.repo.LoadAll(ctx)
		if err != nil {
			return nil, errors.NewInternalError("service.ShortenBatch", "failed to load existing records", err)
		}
		for _, rec := range existing {
			taken[rec.Shortcode] = struct{}{}
		}
		fieldErrs = append(fieldErrs, s.duplicateShortcodes(req.URLs, taken)...)
	}

	if len(fieldErrs) > 0 {
		s.metrics.IncRejectedBatch()
		log.Warn().Int("batch_size", len(req.URLs)).Int("errors", len(fieldErrs)).Msg("Batch rejected by validation")
		return nil, errors.NewBatchValidationError("service.ShortenBatch", fieldErrs)
	}

	now := s.nowFunc()
	records := make([]models.LinkRecord, 0, len(req.URLs))
	for _, sub := range req.URLs {
		code, err := s.shortcodeFor(sub.Shortcode, taken)
		if err != nil {
			return nil, err
		}

		// Already validated, cannot fail here.
		days, _ := validator.ParseValidityDays(string(sub.ValidityDays))

		records = append(records, models.LinkRecord{
			OriginalURL:  sub.OriginalURL,
			ShortenedURL: models.BuildShortenedURL(req.Origin, code),
			ExpiryDate:   expiryFor(now, days),
			Shortcode:    code,
		})
	}

	if err := s.repo.Append(ctx, records); err != nil {
		return nil, err
	}
	s.metrics.AddLinksCreated(len(records))

	return &dto.ShortenBatchResponse{Links: records}, nil
}

// Resolve never fails on unknown or expired codes; those are reported through
// the resolution state.
func (s *linkServiceImpl) Resolve(ctx context.Context, shortcode string) (*models.Resolution, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError("service.Resolve", "failed to load records", err)
	}

	resolution := &models.Resolution{State: models.NotFound}
	if rec := findRecord(records, shortcode); rec != nil {
		resolution.Record = rec
		if rec.IsExpired(s.nowFunc()) {
			resolution.State = models.FoundExpired
		} else {
			resolution.State = models.FoundActive
		}
	}

	s.metrics.IncResolution(string(resolution.State))
	log.Debug().Str("shortcode", shortcode).Str("state", string(resolution.State)).Msg("Short link resolved")
	return resolution, nil
}

func (s *linkServiceImpl) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError("service.GetStatistics", "failed to load records", err)
	}

	now := s.nowFunc()
	stats := &models.Statistics{
		Total: len(records),
		Links: make([]models.LinkStatus, 0, len(records)),
	}
	for _, rec := range records {
		stats.Links = append(stats.Links, models.LinkStatus{Record: rec, Expired: rec.IsExpired(now)})
	}
	s.metrics.SetStoredLinks(stats.Total)
	return stats, nil
}

func (s *linkServiceImpl) ClearAll(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return err
	}
	s.metrics.SetStoredLinks(0)
	return nil
}

func (s *linkServiceImpl) shortcodeFor(userSupplied string, taken map[string]struct{}) (string, error) {
	if userSupplied != "" || !s.enforceUnique {
		code, err := s.generator.Generate(userSupplied)
		if err != nil {
			return "", errors.NewInternalError("service.shortcodeFor", "failed to generate short code", err)
		}
		return code, nil
	}
	return s.generateUniqueShortCode(taken)
}

func (s *linkServiceImpl) generateUniqueShortCode(taken map[string]struct{}) (string, error) {
	for i := 0; i < s.maxRetries; i++ {
		code, err := s.generator.Generate("")
		if err != nil {
			return "", errors.NewInternalError("service.generateUniqueShortCode", "failed to generate short code", err)
		}
		if _, exists := taken[code]; !exists {
			taken[code] = struct{}{}
			return code, nil
		}
	}
	return "", errors.NewInternalError("service.generateUniqueShortCode", "failed to generate unique code", nil)
}

// duplicateShortcodes flags user codes that are already stored or repeated
// within the batch. Codes that fail the charset check are left to the validator.
func (s *linkServiceImpl) duplicateShortcodes(batch []dto.Submission, taken map[string]struct{}) []errors.FieldError {
	var result []errors.FieldError
	seen := map[string]struct{}{}
	for i, sub := range batch {
		if !utils.IsValidShortCode(sub.Shortcode) {
			continue
		}
		_, stored := taken[sub.Shortcode]
		_, repeated := seen[sub.Shortcode]
		if stored || repeated {
			result = append(result, validator.DuplicateShortcodeError(i, sub.Shortcode))
		}
		seen[sub.Shortcode] = struct{}{}
	}
	return result
}

// expiryFor adds whole calendar days in the caller's location, so month and
// year boundaries roll over, then stores the instant in UTC at millisecond
// precision.
func expiryFor(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days).UTC().Truncate(time.Millisecond)
}

// findRecord tries an exact shortcode match first and falls back to records
// whose shortened URL contains /r/{code}, each in stored order.
func findRecord(records []models.LinkRecord, shortcode string) *models.LinkRecord {
	if shortcode == "" {
		return nil
	}
	for i := range records {
		if records[i].MatchesShortcode(shortcode) {
			return &records[i]
		}
	}
	for i := range records {
		if records[i].MatchesShortenedPath(shortcode) {
			return &records[i]
		}
	}
	return nil
}
