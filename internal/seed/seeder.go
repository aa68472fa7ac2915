package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/trogers1052/stock-dashboard/internal/generator"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// ErrSeedInProgress is returned when another seed run holds the lock
var ErrSeedInProgress = errors.New("another seed run is in progress")

// Store is the storage the seeder rebuilds
type Store interface {
	Reset() error
	InsertCompanies(ctx context.Context, companies []*models.Company) error
	InsertPricePoints(ctx context.Context, points []*models.PricePoint) error
}

// Publisher announces a completed seed run
type Publisher interface {
	PublishDatasetSeeded(ctx context.Context, event models.DatasetSeededEvent) error
}

// Locker guards against concurrent seed runs. Acquire reports false when
// the lock is already held.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Options configures a Seeder. Zero values fall back to the reference dataset.
type Options struct {
	Months    int
	Params    generator.Params
	Companies []*models.Company
	Source    generator.Source
	Now       func() time.Time
	Publisher Publisher
	Locker    Locker
}

// Result summarizes a completed run
type Result struct {
	Companies   int
	PricePoints int
	WindowStart time.Time
	WindowEnd   time.Time
}

// Seeder replaces the stored dataset with a freshly generated one
type Seeder struct {
	store  Store
	opts   Options
	logger logrus.FieldLogger
}

// NewSeeder creates a Seeder; a nil Source is not allowed
func NewSeeder(store Store, opts Options, logger logrus.FieldLogger) *Seeder {
	if opts.Months == 0 {
		opts.Months = 6
	}
	if opts.Params == (generator.Params{}) {
		opts.Params = generator.DefaultParams()
	}
	if opts.Companies == nil {
		opts.Companies = Catalog()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Seeder{store: store, opts: opts, logger: logger}
}

// Run destructively rebuilds the dataset. Any failure aborts the run.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	if s.opts.Source == nil {
		return nil, errors.New("seeder has no random source")
	}
	if err := ValidateCatalog(s.opts.Companies); err != nil {
		return nil, fmt.Errorf("invalid company catalog: %w", err)
	}

	if s.opts.Locker != nil {
		acquired, err := s.opts.Locker.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire seed lock: %w", err)
		}
		if !acquired {
			return nil, ErrSeedInProgress
		}
		defer func() {
			if err := s.opts.Locker.Release(context.WithoutCancel(ctx)); err != nil {
				s.logger.WithError(err).Warn("Failed to release seed lock")
			}
		}()
	}

	if err := s.store.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset store: %w", err)
	}
	s.logger.Info("Existing dataset removed")

	if err := s.store.InsertCompanies(ctx, s.opts.Companies); err != nil {
		return nil, fmt.Errorf("failed to insert companies: %w", err)
	}
	s.logger.WithField("companies", len(s.opts.Companies)).Info("Companies inserted")

	start, end := generator.Window(s.opts.Now(), s.opts.Months)
	var points []*models.PricePoint
	for _, c := range s.opts.Companies {
		series := generator.Generate(c.ID, start, end, s.opts.Params, s.opts.Source)
		s.logger.WithFields(logrus.Fields{
			"symbol": c.Symbol,
			"points": len(series),
		}).Debug("Generated price series")
		points = append(points, series...)
	}

	if err := s.store.InsertPricePoints(ctx, points); err != nil {
		return nil, fmt.Errorf("failed to insert price points: %w", err)
	}

	result := &Result{
		Companies:   len(s.opts.Companies),
		PricePoints: len(points),
		WindowStart: start,
		WindowEnd:   end,
	}
	s.logger.WithFields(logrus.Fields{
		"companies":    result.Companies,
		"price_points": result.PricePoints,
		"window_start": start.Format(models.DateLayout),
		"window_end":   end.Format(models.DateLayout),
	}).Info("Database initialized successfully with sample data")

	if s.opts.Publisher != nil {
		event := models.DatasetSeededEvent{
			EventType:   models.EventTypeDatasetSeeded,
			Companies:   result.Companies,
			PricePoints: result.PricePoints,
			WindowStart: start,
			WindowEnd:   end,
			Timestamp:   s.opts.Now(),
		}
		if err := s.opts.Publisher.PublishDatasetSeeded(ctx, event); err != nil {
			// The dataset is already committed
			s.logger.WithError(err).Warn("Failed to publish dataset seeded event")
		}
	}

	return result, nil
}
