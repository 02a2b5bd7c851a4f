package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go"

	"songcatalog/internal/models"
	"songcatalog/internal/stats"
	"songcatalog/internal/validation"
)

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLoadRetry sets how many times Load tries the API and the pause between tries
func WithLoadRetry(attempts uint, delay time.Duration) StoreOption {
	return func(s *Store) {
		if attempts > 0 {
			s.loadAttempts = attempts
		}
		if delay >= 0 {
			s.loadDelay = delay
		}
	}
}

// Store keeps a RecordSet converged with the remote API. Every mutation is
// validated locally, sent to the API, and applied to the record set only
// once the API accepts it.
type Store struct {
	api          API
	records      *RecordSet
	loadAttempts uint
	loadDelay    time.Duration
}

// NewStore creates an empty store backed by api
func NewStore(api API, opts ...StoreOption) *Store {
	s := &Store{
		api:          api,
		records:      NewRecordSet(),
		loadAttempts: 3,
		loadDelay:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Records exposes the underlying record set
func (s *Store) Records() *RecordSet {
	return s.records
}

// Load replaces the record set with the API's full listing. Transport errors
// and 5xx answers are retried; 4xx answers are not.
func (s *Store) Load(ctx context.Context) error {
	var songs []*models.Song
	err := retry.Do(
		func() error {
			var err error
			songs, err = s.api.List(ctx, Filter{})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.loadAttempts),
		retry.Delay(s.loadDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying song load", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return err
	}

	s.records.Reset(songs)
	slog.Debug("Loaded songs", "count", len(songs))
	return nil
}

// Add validates input, creates the song remotely and inserts the stored copy.
// Invalid input returns validation.Errors without calling the API.
func (s *Store) Add(ctx context.Context, input models.SongInput) (*models.Song, error) {
	if errs := validation.ValidateSong(input); !errs.Valid() {
		return nil, errs
	}

	song, err := s.api.Create(ctx, input.Normalize())
	if err != nil {
		return nil, err
	}
	s.records.Insert(song)
	return song, nil
}

// Edit validates input and replaces song id remotely and locally. When the
// API no longer has the song it is dropped locally as well.
func (s *Store) Edit(ctx context.Context, id string, input models.SongInput) (*models.Song, error) {
	if errs := validation.ValidateSong(input); !errs.Valid() {
		return nil, errs
	}

	song, err := s.api.Update(ctx, id, input.Normalize())
	if err != nil {
		if IsNotFound(err) {
			s.records.Remove(id)
		}
		return nil, err
	}

	if !s.records.Replace(song) {
		s.records.Insert(song)
	}
	return song, nil
}

// Delete removes song id remotely and locally. A song the API no longer has
// is still removed locally and is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil && !IsNotFound(err) {
		return err
	}
	s.records.Remove(id)
	return nil
}

// Filter returns the local songs matching filter
func (s *Store) Filter(filter Filter) []*models.Song {
	return filter.Apply(s.records.Snapshot())
}

// Summary computes the dashboard statistics over the local snapshot
func (s *Store) Summary(n int) stats.Summary {
	return stats.Summarize(s.records.Snapshot(), n)
}

// Breakdown computes one field's statistics over the local snapshot
func (s *Store) Breakdown(field models.Field, n int) stats.FieldBreakdown {
	return stats.Breakdown(s.records.Snapshot(), field, n)
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
