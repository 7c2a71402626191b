package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atb-as/webshop-e2e/internal/models"
)

// ErrRunNotFinished is returned when a run that is still in flight is recorded
var ErrRunNotFinished = errors.New("flow run has not finished")

// FlowRunRepository defines the interface for flow run persistence
type FlowRunRepository interface {
	Save(ctx context.Context, run *models.FlowRun) error
	ListSince(ctx context.Context, since time.Time) ([]*models.FlowRun, error)
	StalledAliases(ctx context.Context, since time.Time) ([]models.AliasCount, error)
}

// JournalService records flow runs and reports on them
type JournalService interface {
	Record(ctx context.Context, run *models.FlowRun) error
	FlakyAliases(ctx context.Context, since time.Time) ([]models.AliasCount, error)
	Report(ctx context.Context, since time.Time) (*models.JournalReport, error)
}

// JournalServiceImpl implements JournalService
type JournalServiceImpl struct {
	runRepo FlowRunRepository
}

// NewJournalService creates a new journal service
func NewJournalService(runRepo FlowRunRepository) JournalService {
	return &JournalServiceImpl{
		runRepo: runRepo,
	}
}

// Record stores a finished run
func (s *JournalServiceImpl) Record(ctx context.Context, run *models.FlowRun) error {
	if run == nil || run.ID == "" || run.Flow == "" {
		return fmt.Errorf("invalid flow run: %+v", run)
	}
	if !run.State.IsTerminal() {
		return fmt.Errorf("%w: %s is %s", ErrRunNotFinished, run.Flow, run.State)
	}

	if err := s.runRepo.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to record flow run: %w", err)
	}
	return nil
}

// FlakyAliases returns the aliases that stalled a flow since since
func (s *JournalServiceImpl) FlakyAliases(ctx context.Context, since time.Time) ([]models.AliasCount, error) {
	counts, err := s.runRepo.StalledAliases(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get flaky aliases: %w", err)
	}
	return counts, nil
}

// Report counts the runs since since by state, with the flaky aliases
func (s *JournalServiceImpl) Report(ctx context.Context, since time.Time) (*models.JournalReport, error) {
	runs, err := s.runRepo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list flow runs: %w", err)
	}

	report := &models.JournalReport{
		Runs:   len(runs),
		States: make(map[models.FlowState]int),
	}
	for _, run := range runs {
		report.States[run.State]++
	}

	if report.Stalled, err = s.FlakyAliases(ctx, since); err != nil {
		return nil, err
	}
	return report, nil
}
