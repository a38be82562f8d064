// Package aggregator orchestrates a full aggregation run: concurrent
// multi-source fetch, inter-source deduplication, persistence, then capability
// tagging and problem matching over the newly inserted items. A run never
// fails outright, every stage degrades to collected error strings in the
// returned RunResult.
package aggregator

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/radar/pkg/domain"
	"github.com/umputun/radar/pkg/matcher"
	"github.com/umputun/radar/pkg/source"
)

//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/tag_store.go -pkg mocks -skip-ensure -fmt goimports . TagStore
//go:generate moq -out mocks/match_store.go -pkg mocks -skip-ensure -fmt goimports . MatchStore
//go:generate moq -out mocks/tagger.go -pkg mocks -skip-ensure -fmt goimports . Tagger

// ItemStore persists feed items with ignore-on-conflict semantics, returning
// only the rows actually inserted
type ItemStore interface {
	InsertItems(ctx context.Context, items []domain.FeedItem) ([]domain.FeedItem, error)
}

// TagStore resolves taxonomy slugs and persists item tags
type TagStore interface {
	SlugIDs(ctx context.Context) (map[string]int64, error)
	InsertTags(ctx context.Context, tags []domain.FeedItemTag) (int, error)
}

// MatchStore reads active problem fields and persists problem matches
type MatchStore interface {
	GetActiveProblemFields(ctx context.Context) ([]domain.ProblemField, error)
	InsertMatches(ctx context.Context, matches []domain.ProblemMatch) (int, error)
}

// Tagger classifies text against the capability taxonomy
type Tagger interface {
	Tag(title, summary string) []domain.TagResult
}

// Params holds aggregator dependencies
type Params struct {
	Adapters   []source.Adapter
	Tagger     Tagger
	Items      ItemStore
	Tags       TagStore
	Matches    MatchStore
	FetchLimit int // per-adapter limit hint, 0 means adapter default
}

// Aggregator runs the aggregation pipeline. One instance is reused across
// runs; it holds no per-run state.
type Aggregator struct {
	adapters   []source.Adapter
	tagger     Tagger
	items      ItemStore
	tags       TagStore
	matches    MatchStore
	fetchLimit int
}

// New creates an aggregator
func New(p Params) *Aggregator {
	return &Aggregator{
		adapters:   p.Adapters,
		tagger:     p.Tagger,
		items:      p.Items,
		tags:       p.Tags,
		matches:    p.Matches,
		fetchLimit: p.FetchLimit,
	}
}

// Run executes one aggregation pass: fetch from all adapters concurrently,
// deduplicate the batch, persist with upsert-ignore, then tag and match the
// inserted rows in parallel. All stage failures are reported through
// RunResult.Errors; the method itself never returns an error.
func (a *Aggregator) Run(ctx context.Context) domain.RunResult {
	result := domain.RunResult{Errors: []string{}}

	raw := a.fetchAll(ctx, &result)
	result.Fetched = len(raw)
	if len(raw) == 0 {
		lgr.Printf("[INFO] aggregation run finished, nothing fetched: %s", result)
		return result
	}

	inserted := a.persist(ctx, raw, &result)
	if len(inserted) == 0 {
		lgr.Printf("[INFO] aggregation run finished, nothing inserted: %s", result)
		return result
	}

	// tagging and matching are independent, run them in parallel
	var wg sync.WaitGroup
	var mu sync.Mutex // guards result

	wg.Add(2)
	go func() {
		defer wg.Done()
		tagged, err := a.tagInserted(ctx, inserted)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			lgr.Printf("[ERROR] tagging failed: %v", err)
			result.Errors = append(result.Errors, fmt.Sprintf("tagging: %v", err))
			return
		}
		result.Tagged = tagged
	}()
	go func() {
		defer wg.Done()
		matches, err := a.matchInserted(ctx, inserted)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			lgr.Printf("[ERROR] matching failed: %v", err)
			result.Errors = append(result.Errors, fmt.Sprintf("matching: %v", err))
			return
		}
		result.Matches = matches
	}()
	wg.Wait()

	lgr.Printf("[INFO] aggregation run finished: %s", result)
	return result
}

// adapterResult captures one adapter's outcome independently of the others
type adapterResult struct {
	name  string
	items []domain.FeedItem
	err   error
}

// fetchAll invokes every adapter concurrently and collects their outcomes.
// A failing or timed-out adapter contributes an error string, never aborts
// the stage.
func (a *Aggregator) fetchAll(ctx context.Context, result *domain.RunResult) []domain.FeedItem {
	results := make([]adapterResult, len(a.adapters))

	var wg sync.WaitGroup
	for i, adapter := range a.adapters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := adapter.Fetch(ctx, a.fetchLimit)
			results[i] = adapterResult{name: adapter.Name(), items: items, err: err}
		}()
	}
	wg.Wait()

	var raw []domain.FeedItem
	for _, res := range results {
		if res.err != nil {
			lgr.Printf("[WARN] adapter %s failed: %v", res.name, res.err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", res.name, res.err))
			continue
		}
		lgr.Printf("[DEBUG] adapter %s fetched %d items", res.name, len(res.items))
		raw = append(raw, res.items...)
	}
	return raw
}

// persist collapses batch-internal duplicate URLs (first occurrence wins) and
// upserts the remainder, returning only the rows inserted in this run.
// Duplicate count covers both batch-internal and cross-run duplicates.
func (a *Aggregator) persist(ctx context.Context, raw []domain.FeedItem, result *domain.RunResult) []domain.FeedItem {
	seen := make(map[string]struct{}, len(raw))
	deduped := make([]domain.FeedItem, 0, len(raw))
	for _, item := range raw {
		if item.SourceURL == "" {
			continue // malformed record, dropped silently
		}
		if _, ok := seen[item.SourceURL]; ok {
			continue
		}
		seen[item.SourceURL] = struct{}{}
		deduped = append(deduped, item)
	}
	if batchDups := len(raw) - len(deduped); batchDups > 0 {
		lgr.Printf("[DEBUG] dropped %d batch-internal duplicates", batchDups)
	}

	inserted, err := a.items.InsertItems(ctx, deduped)
	if err != nil {
		lgr.Printf("[ERROR] persist failed: %v", err)
		result.Errors = append(result.Errors, fmt.Sprintf("db insert: %v", err))
		return nil
	}

	result.Inserted = len(inserted)
	result.Duplicates = result.Fetched - result.Inserted
	return inserted
}

// tagInserted classifies the freshly inserted items and stores the resulting
// tags, returning how many tag rows were written
func (a *Aggregator) tagInserted(ctx context.Context, items []domain.FeedItem) (int, error) {
	slugIDs, err := a.tags.SlugIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("get slug ids: %w", err)
	}

	var tags []domain.FeedItemTag
	for _, item := range items {
		for _, tag := range a.tagger.Tag(item.Title, item.SummaryShort) {
			capID, ok := slugIDs[tag.Slug]
			if !ok {
				continue // tagger knows a slug the store doesn't, skip
			}
			tags = append(tags, domain.FeedItemTag{
				FeedItemID:   item.ID,
				CapabilityID: capID,
				Confidence:   tag.Confidence,
				AssignedBy:   "system",
			})
		}
	}
	if len(tags) == 0 {
		return 0, nil
	}

	inserted, err := a.tags.InsertTags(ctx, tags)
	if err != nil {
		return 0, fmt.Errorf("insert tags: %w", err)
	}
	return inserted, nil
}

// matchInserted scores the freshly inserted items against all active problem
// fields and stores the matches, returning how many match rows were written
func (a *Aggregator) matchInserted(ctx context.Context, items []domain.FeedItem) (int, error) {
	problems, err := a.matches.GetActiveProblemFields(ctx)
	if err != nil {
		return 0, fmt.Errorf("get active problem fields: %w", err)
	}
	if len(problems) == 0 {
		return 0, nil
	}

	results := matcher.MatchBatch(problems, items)
	if len(results) == 0 {
		return 0, nil
	}

	matches := make([]domain.ProblemMatch, len(results))
	for i, m := range results {
		matches[i] = domain.ProblemMatch{
			ProblemFieldID: m.ProblemFieldID,
			FeedItemID:     m.FeedItemID,
			Confidence:     m.Confidence,
			MatchMethod:    "keyword",
			MatchReason:    m.MatchReason,
		}
	}

	inserted, err := a.matches.InsertMatches(ctx, matches)
	if err != nil {
		return 0, fmt.Errorf("insert matches: %w", err)
	}
	return inserted, nil
}
