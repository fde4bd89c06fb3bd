package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
	"github.com/crashlens/crashlens/pkg/service/metrics"
	"github.com/crashlens/crashlens/pkg/service/query"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ReportUseCase generates reports over the dataset held by the repository
type ReportUseCase struct {
	repo    interfaces.Repository
	metrics interfaces.Metrics

	mu      sync.Mutex
	options map[*model.Dataset]*model.FilterOptions
}

var _ interfaces.Report = (*ReportUseCase)(nil)

// NewReport creates a new ReportUseCase. A nil metrics records nothing.
func NewReport(repo interfaces.Repository, m interfaces.Metrics) *ReportUseCase {
	if m == nil {
		m = metrics.Discard{}
	}
	uc := &ReportUseCase{
		repo:    repo,
		metrics: m,
		options: make(map[*model.Dataset]*model.FilterOptions),
	}
	if ds, err := repo.Dataset(context.Background()); err == nil {
		m.SetDatasetRows(ds.Len())
	}
	return uc
}

// Ready reports whether the dataset is loaded
func (uc *ReportUseCase) Ready(ctx context.Context) bool {
	_, err := uc.repo.Dataset(ctx)
	return err == nil
}

// FilterOptions lists the selectable values for each criterion. The dataset
// never changes after load so the result is computed once.
func (uc *ReportUseCase) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	ds, err := uc.repo.Dataset(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get dataset")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if opts, ok := uc.options[ds]; ok {
		return opts, nil
	}
	opts := query.FilterOptions(ds)
	uc.options[ds] = opts
	return opts, nil
}

// Generate filters the dataset by criteria and aggregates the matched rows
func (uc *ReportUseCase) Generate(ctx context.Context, criteria model.Criteria) (*model.Report, error) {
	start := time.Now()

	ds, err := uc.repo.Dataset(ctx)
	if err != nil {
		uc.metrics.RecordReport(metrics.OutcomeError, time.Since(start), 0)
		return nil, goerr.Wrap(err, "failed to get dataset")
	}

	view, err := query.Filter(query.NewView(ds), criteria)
	if err != nil {
		uc.metrics.RecordReport(metrics.OutcomeInvalid, time.Since(start), 0)
		return nil, goerr.Wrap(err, "failed to filter dataset", goerr.V("criteria", criteria))
	}

	report := query.Aggregate(view)
	report.ID = types.NewReportID()
	report.Criteria = criteria

	outcome := metrics.OutcomeSuccess
	if report.Empty {
		outcome = metrics.OutcomeEmpty
	}
	elapsed := time.Since(start)
	uc.metrics.RecordReport(outcome, elapsed, view.Len())

	ctxlog.From(ctx).Info("Report generated",
		"report_id", report.ID,
		"criteria", criteria,
		"matched", view.Len(),
		"total", ds.Len(),
		"elapsed", elapsed,
	)

	return report, nil
}
