package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Harvester runs the fetch→extract→normalize→filter→dedupe pipeline for
// every configured source and merges the results into the month snapshot.
// Sources are processed sequentially; the known source list is small.
type Harvester struct {
	fetcher Fetcher
	store   Store
	clock   Clock
	ids     IDGenerator
	sources []Source
	chain   *Chain
	mirror  Mirror
	logger  *zap.Logger
}

// NewHarvester wires a Harvester from its collaborators.
func NewHarvester(
	fetcher Fetcher,
	store Store,
	clock Clock,
	ids IDGenerator,
	sources []Source,
	logger *zap.Logger,
) *Harvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harvester{
		fetcher: fetcher,
		store:   store,
		clock:   clock,
		ids:     ids,
		sources: sources,
		chain:   NewChain(),
		logger:  logger,
	}
}

// SetMirror attaches an optional snapshot mirror. Mirror failures are
// logged, never fatal.
func (h *Harvester) SetMirror(m Mirror) {
	h.mirror = m
}

// Run harvests all sources for the target month, merges the results into the
// stored snapshot and persists it. A failing source is logged and skipped;
// only storage failures abort the run. The returned count covers the items
// published for the categories harvested in this run.
func (h *Harvester) Run(ctx context.Context, year int, month time.Month) (int, error) {
	runID, err := h.ids.NewID()
	if err != nil {
		runID = "unknown"
	}
	log := h.logger.With(
		zap.String("run_id", runID),
		zap.Int("year", year),
		zap.Int("month", int(month)),
	)
	log.Info("Harvest run starting", zap.Int("sources", len(h.sources)))

	harvested := make(Payload)
	for _, src := range h.sources {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("harvest canceled: %w", err)
		}
		items, err := h.harvestSource(ctx, src, year, month)
		if err != nil {
			// One source failing never blocks the others, and its
			// category keeps whatever an earlier run published.
			TotalSourceFailures.Inc()
			log.Warn("Source failed; skipping for this run",
				zap.String("category", src.Category),
				zap.String("url", src.URL),
				zap.Error(err))
			continue
		}
		harvested[src.Category] = append(harvested[src.Category], items...)
		log.Info("Source harvested",
			zap.String("category", src.Category),
			zap.Int("items", len(items)))
	}

	// Categories fed by several sources need a second dedupe/sort pass over
	// the combined list. A source that succeeded with nothing for the month
	// still publishes its category as an empty list, not null.
	for category, items := range harvested {
		items = Dedupe(items)
		SortItems(items)
		if items == nil {
			items = []UpdateItem{}
		}
		harvested[category] = items
	}

	snap, err := h.store.Read(ctx, year, int(month))
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		snap = Snapshot{Payload: Payload{}}
	case err != nil:
		return 0, err
	}
	if snap.Payload == nil {
		snap.Payload = Payload{}
	}
	for category, items := range harvested {
		snap.Payload[category] = items
	}

	written, err := h.store.Write(ctx, year, int(month), snap.Payload)
	if err != nil {
		return 0, err
	}

	published := harvested.Items()
	TotalItemsPublished.Add(float64(published))
	log.Info("Snapshot persisted",
		zap.Int("published", published),
		zap.Int("total", written.Payload.Items()),
		zap.Time("last_updated", written.LastUpdated))

	if h.mirror != nil {
		if err := h.mirror.Mirror(ctx, year, int(month), written); err != nil {
			log.Warn("Snapshot mirror failed", zap.Error(err))
		}
	}
	return published, nil
}

// harvestSource runs the per-source pipeline and returns the month's items,
// deduplicated and in display order.
func (h *Harvester) harvestSource(ctx context.Context, src Source, year int, month time.Month) ([]UpdateItem, error) {
	TotalFetches.Inc()
	body, err := h.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	candidates, strategy, err := h.chain.Extract(body, src.URL)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		h.logger.Debug("No candidate rows extracted", zap.String("url", src.URL))
		return nil, nil
	}
	h.logger.Debug("Candidates extracted",
		zap.String("url", src.URL),
		zap.String("strategy", strategy),
		zap.Int("candidates", len(candidates)))

	items := make([]UpdateItem, 0, len(candidates))
	for _, c := range candidates {
		date, err := ParseDateToken(c.DateToken, year)
		if err != nil {
			// Discard, never default. A wrong month is worse than a
			// missing row.
			TotalRowsDiscarded.Inc()
			h.logger.Debug("Dropping row with unparseable date",
				zap.String("title", c.Title),
				zap.String("token", c.DateToken))
			continue
		}
		items = append(items, UpdateItem{
			Date:  date,
			Title: CleanText(c.Title),
			URL:   c.URL,
			Type:  src.ItemType(),
		})
	}

	items = FilterMonth(items, year, month)
	items = FilterKeywords(items, src.Keywords)
	items = Dedupe(items)
	SortItems(items)
	return items, nil
}
