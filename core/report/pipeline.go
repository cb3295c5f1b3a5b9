package report

import (
	"go.uber.org/zap"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/filter"
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// ViewState is the full user-controlled view configuration for one
// collection screen: the search box, the per-field filter rules, and the
// active column sort.
type ViewState struct {
	Query      string
	SearchKeys []string
	Rules      []filter.Rule
	Sort       SortSpec
}

// Pipeline derives the displayed subset of a fetched collection. The
// stages run in a fixed order: search the whole collection, filter the
// matches, then sort what remains.
type Pipeline struct {
	searcher *Searcher
	logger   *zap.Logger
}

// NewPipeline creates a pipeline with its own searcher. A nil logger is
// replaced with a no-op logger.
func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		searcher: NewSearcher(logger),
		logger:   logger,
	}
}

// Displayed computes the view over the given records. The input slice is
// never mutated; every stage works on its own copy or subset.
func (p *Pipeline) Displayed(records []record.Record, view ViewState) []record.Record {
	out := p.searcher.Search(records, view.Query, view.SearchKeys)
	out = filter.Apply(out, view.Rules)
	out = SortBy(out, view.Sort)

	p.logger.Debug("computed displayed view",
		zap.Int("fetched", len(records)),
		zap.Int("displayed", len(out)))
	return out
}

// Invalidate drops the cached search index. Call when the underlying
// collection changes.
func (p *Pipeline) Invalidate() {
	p.searcher.Invalidate()
}
