package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// ProgressScanner walks every progress row in batches.
type ProgressScanner interface {
	EachBatch(ctx context.Context, size int, fn func(batch []models.CourseProgress) error) error
}

// SweepFailure is one row the sweep could not evaluate.
type SweepFailure struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	Err      string `json:"error"`
}

type SweepReport struct {
	Scanned  int            `json:"scanned"`
	Granted  int            `json:"granted"`
	Failures []SweepFailure `json:"failures"`
	Duration time.Duration  `json:"duration"`
}

// Failed reports whether any row failed.
func (r SweepReport) Failed() bool { return len(r.Failures) > 0 }

// Sweeper re-evaluates every stored snapshot. It heals grants that were
// missed when the catalog gained badges or an evaluation failed midway.
type Sweeper struct {
	scanner     ProgressScanner
	awards      *AwardService
	concurrency int
	batchSize   int
}

func NewSweeper(scanner ProgressScanner, awards *AwardService, concurrency, batchSize int) *Sweeper {
	if concurrency < 1 {
		concurrency = 1
	}
	if batchSize < 1 {
		batchSize = 200
	}
	return &Sweeper{scanner: scanner, awards: awards, concurrency: concurrency, batchSize: batchSize}
}

// Run evaluates all rows. Per-row failures go into the report; the returned
// error is reserved for failures of the scan itself or cancellation.
func (s *Sweeper) Run(ctx context.Context) (SweepReport, error) {
	start := time.Now()
	log := logger.Component("sweep")

	var (
		mu     sync.Mutex
		report SweepReport
	)

	err := s.scanner.EachBatch(ctx, s.batchSize, func(batch []models.CourseProgress) error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)

		for i := range batch {
			row := batch[i]
			g.Go(func() error {
				granted, err := s.awards.EvaluateSnapshot(gctx, row.Snapshot())

				mu.Lock()
				defer mu.Unlock()
				report.Scanned++
				report.Granted += len(granted)
				if err != nil {
					report.Failures = append(report.Failures, SweepFailure{
						UserID:   row.UserID,
						CourseID: row.CourseID,
						Err:      err.Error(),
					})
					log.Warn().Err(err).Str("user_id", row.UserID).Str("course_id", row.CourseID).Msg("sweep evaluation failed")
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		return ctx.Err()
	})

	report.Duration = time.Since(start)
	if err != nil {
		log.Error().Err(err).Int("scanned", report.Scanned).Msg("sweep aborted")
		return report, err
	}

	log.Info().
		Int("scanned", report.Scanned).
		Int("granted", report.Granted).
		Int("failures", len(report.Failures)).
		Dur("duration", report.Duration).
		Msg("sweep finished")
	return report, nil
}
