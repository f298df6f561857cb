package analyzer

import (
	"context"
	"time"

	"github.com/chainwatch/chainwatch-go/internal/analysis"
	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/chainwatch/chainwatch-go/internal/openprices"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultCommodities is the standard watch list.
var DefaultCommodities = []string{"rice", "milk", "eggs", "oil", "wheat"}

// PriceFetcher fetches raw price pages for a keyword.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, keyword string) (*openprices.Page, error)
}

// Analyzer runs the risk engine over fetched price data. Both the batch scan
// and the interactive tools go through it, so there is exactly one
// implementation of the statistics pipeline.
type Analyzer struct {
	fetcher     PriceFetcher
	thresholds  analysis.Thresholds
	commodities []string
	maxParallel int
	pageCache   *gocache.Cache
	logger      *logrus.Logger
}

// Options configures an Analyzer.
type Options struct {
	Thresholds  analysis.Thresholds
	Commodities []string
	MaxParallel int           // concurrent fetches during a full scan
	CacheTTL    time.Duration // how long fetched pages stay reusable
}

// New creates an Analyzer.
func New(fetcher PriceFetcher, opts Options, logger *logrus.Logger) *Analyzer {
	if !opts.Thresholds.Valid() {
		opts.Thresholds = analysis.DefaultThresholds()
	}
	if len(opts.Commodities) == 0 {
		opts.Commodities = DefaultCommodities
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = 2
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		fetcher:     fetcher,
		thresholds:  opts.Thresholds,
		commodities: opts.Commodities,
		maxParallel: opts.MaxParallel,
		pageCache:   gocache.New(opts.CacheTTL, 2*opts.CacheTTL),
		logger:      logger,
	}
}

// Commodities returns the configured watch list.
func (a *Analyzer) Commodities() []string {
	out := make([]string, len(a.commodities))
	copy(out, a.commodities)
	return out
}

// Thresholds returns the tier cutoffs in use.
func (a *Analyzer) Thresholds() analysis.Thresholds {
	return a.thresholds
}

// AnalyzeCommodity fetches live price data for one commodity or free-text
// keyword and builds its report. The fetch error propagates; all arithmetic
// edge cases resolve to NO_DATA inside the engine.
func (a *Analyzer) AnalyzeCommodity(ctx context.Context, keyword string) (models.CommodityReport, error) {
	page, err := a.fetchPage(ctx, keyword)
	if err != nil {
		return models.CommodityReport{}, err
	}
	return analysis.BuildCommodityReport(keyword, page.Items, a.thresholds), nil
}

// AnalyzeAll analyzes every commodity on the watch list and assembles the
// full report. Each commodity produces an isolated result; a failed fetch is
// logged and recorded as NO_DATA with zero samples rather than aborting the
// scan. Result order follows the configured list.
func (a *Analyzer) AnalyzeAll(ctx context.Context) (*models.Report, error) {
	reports, err := a.AnalyzeMany(ctx, a.commodities)
	if err != nil {
		return nil, err
	}
	return &models.Report{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Commodities: reports,
	}, nil
}

// AnalyzeMany analyzes an arbitrary set of keywords with bounded concurrency,
// preserving input order. Fetch failures degrade to NO_DATA entries.
func (a *Analyzer) AnalyzeMany(ctx context.Context, keywords []string) ([]models.CommodityReport, error) {
	reports := make([]models.CommodityReport, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)

	for i, name := range keywords {
		g.Go(func() error {
			report, err := a.AnalyzeCommodity(gctx, name)
			if err != nil {
				a.logger.WithError(err).WithField("commodity", name).
					Warn("fetch failed, recording commodity as NO_DATA")
				report = models.CommodityReport{
					Name:     name,
					Status:   models.StatusNoData,
					Currency: "N/A",
				}
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// fetchPage returns a cached page when one is fresh enough, otherwise hits
// the API and caches the result.
func (a *Analyzer) fetchPage(ctx context.Context, keyword string) (*openprices.Page, error) {
	if cached, ok := a.pageCache.Get(keyword); ok {
		return cached.(*openprices.Page), nil
	}

	page, err := a.fetcher.FetchPrices(ctx, keyword)
	if err != nil {
		return nil, err
	}
	a.pageCache.SetDefault(keyword, page)
	return page, nil
}
