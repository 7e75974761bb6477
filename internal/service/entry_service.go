package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/entry-compat/internal/compat"
	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/platform/logger"
)

// Scheme is the part of *compat.Compatibility the service depends on.
type Scheme interface {
	CorrectionsBreakdown(entry *domain.ComputedEntry) (map[string]float64, error)
	ProcessEntry(entry *domain.ComputedEntry) (bool, error)
}

var _ Scheme = (*compat.Compatibility)(nil)

// Rejection records why an entry was excluded from a batch.
type Rejection struct {
	EntryID uuid.UUID `json:"entry_id"`
	Formula string    `json:"formula"`
	Reason  string    `json:"reason"`
}

// BatchResult is the outcome of processing a batch. Accepted entries keep
// their input order and carry their new correction. Breakdowns[i] holds the
// per-rule corrections of Accepted[i]; entry ids are not assumed unique.
type BatchResult struct {
	Accepted   []*domain.ComputedEntry
	Rejected   []Rejection
	Breakdowns []map[string]float64
}

// EntryService provides entry correction operations
type EntryService interface {
	// Process applies the scheme to every entry. Incompatible entries are
	// reported in Rejected; an invalid entry aborts the batch.
	Process(ctx context.Context, scheme Scheme, entries []*domain.ComputedEntry) (*BatchResult, error)

	// Breakdown returns the per-rule corrections of one entry without
	// modifying it.
	Breakdown(scheme Scheme, entry *domain.ComputedEntry) (map[string]float64, error)
}

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	logger *slog.Logger
}

// NewEntryService creates a new EntryService
func NewEntryService(logger *slog.Logger) EntryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &entryServiceImpl{
		logger: logger.With(slog.String("component", "entry_service")),
	}
}

// Process implements EntryService.Process
func (s *entryServiceImpl) Process(
	ctx context.Context,
	scheme Scheme,
	entries []*domain.ComputedEntry,
) (*BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if scheme == nil {
		return nil, NewEntryServiceError("process", "no scheme", ErrNilScheme)
	}

	result := &BatchResult{
		Accepted:   make([]*domain.ComputedEntry, 0, len(entries)),
		Breakdowns: make([]map[string]float64, 0, len(entries)),
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			log.Warn("batch cancelled",
				slog.Int("processed", i),
				slog.Int("total", len(entries)))
			return nil, NewEntryServiceError("process", "cancelled", err)
		}
		if entry == nil {
			return nil, NewEntryServiceError("process", "nil entry", domain.ErrValidation)
		}
		if err := entry.Validate(); err != nil {
			log.Error("invalid entry in batch",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.EntryID.String()))
			return nil, NewEntryServiceError("process", "invalid entry", err)
		}

		formula := entry.Composition.ReducedFormula()
		breakdown, err := scheme.CorrectionsBreakdown(entry)
		if errors.Is(err, compat.ErrIncompatible) {
			log.Debug("entry rejected",
				slog.String("entry_id", entry.EntryID.String()),
				slog.String("formula", formula),
				slog.String("reason", err.Error()))
			result.Rejected = append(result.Rejected, Rejection{
				EntryID: entry.EntryID,
				Formula: formula,
				Reason:  err.Error(),
			})
			continue
		}
		if err != nil {
			log.Error("failed to evaluate entry",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.EntryID.String()),
				slog.String("formula", formula))
			return nil, NewEntryServiceError("process", "failed to evaluate "+formula, err)
		}

		ok, err := scheme.ProcessEntry(entry)
		if err != nil {
			return nil, NewEntryServiceError("process", "failed to correct "+formula, err)
		}
		if !ok {
			// The breakdown succeeded, so the scheme cannot reject the entry here.
			return nil, NewEntryServiceError("process", "scheme rejected "+formula+" inconsistently", compat.ErrIncompatible)
		}
		result.Accepted = append(result.Accepted, entry)
		result.Breakdowns = append(result.Breakdowns, breakdown)
	}

	log.Info("batch processed",
		slog.Int("input", len(entries)),
		slog.Int("accepted", len(result.Accepted)),
		slog.Int("rejected", len(result.Rejected)))
	return result, nil
}

// Breakdown implements EntryService.Breakdown
func (s *entryServiceImpl) Breakdown(scheme Scheme, entry *domain.ComputedEntry) (map[string]float64, error) {
	if scheme == nil {
		return nil, NewEntryServiceError("breakdown", "no scheme", ErrNilScheme)
	}
	if entry == nil {
		return nil, NewEntryServiceError("breakdown", "nil entry", domain.ErrValidation)
	}
	if err := entry.Validate(); err != nil {
		return nil, NewEntryServiceError("breakdown", "invalid entry", err)
	}

	breakdown, err := scheme.CorrectionsBreakdown(entry)
	if err != nil {
		s.logger.Debug("breakdown failed",
			slog.String("entry_id", entry.EntryID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}
	return breakdown, nil
}
