package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrTopicNotFound      = errors.New("topic not found in catalog")
)

// CatalogRepository provides access to the question catalog: the
// year/module/topic manifest, the per-topic bank files and the master
// list built from all of them.
type CatalogRepository struct {
	catalog entities.Catalog
	dataDir string
	logger  *zap.Logger

	master []entities.Question // built once by BuildMasterList, immutable afterwards
}

// NewCatalogRepository loads and parses the manifest. A missing or
// malformed manifest is fatal: the app must not start with a partial
// catalog.
func NewCatalogRepository(manifestPath, dataDir string, logger *zap.Logger) (*CatalogRepository, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read manifest: %w", ErrCatalogUnavailable, err)
	}

	var catalog entities.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %w", ErrCatalogUnavailable, err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: manifest is empty", ErrCatalogUnavailable)
	}

	return &CatalogRepository{
		catalog: catalog,
		dataDir: dataDir,
		logger:  logger,
	}, nil
}

// Years returns the catalog years in sorted order.
func (r *CatalogRepository) Years() []string {
	return sortedKeys(r.catalog)
}

// Modules returns the modules of a year in sorted order.
func (r *CatalogRepository) Modules(year string) []string {
	return sortedKeys(r.catalog[year])
}

// Topics returns the topics of a module in sorted order.
func (r *CatalogRepository) Topics(year, module string) []string {
	return sortedKeys(r.catalog[year][module])
}

// Resolve looks up the bank reference for the given coordinates.
func (r *CatalogRepository) Resolve(year, module, topic string) (string, bool) {
	return r.catalog.Resolve(year, module, topic)
}

// LoadBank reads and parses one bank file, tagging every question with
// its source topic. Per the bulk-load contract a broken bank yields an
// empty slice, not an error: one bad file must not block the catalog.
// Questions violating the answer-in-choices invariant are dropped.
func (r *CatalogRepository) LoadBank(_ context.Context, ref entities.BankRef) []entities.Question {
	data, err := os.ReadFile(filepath.Join(r.dataDir, ref.Path))
	if err != nil {
		r.logger.Warn("failed to read bank", zap.String("path", ref.Path), zap.Error(err))
		return nil
	}

	var questions []entities.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		r.logger.Warn("failed to parse bank", zap.String("path", ref.Path), zap.Error(err))
		return nil
	}

	out := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		if !q.Valid() {
			r.logger.Warn("dropping invalid question",
				zap.String("path", ref.Path),
				zap.String("question", q.Text),
			)
			continue
		}
		q.SourceTopic = ref.Topic
		out = append(out, q)
	}
	return out
}

// Refs returns every bank reference in the catalog in a stable sorted
// (year, module, topic) traversal.
func (r *CatalogRepository) Refs() []entities.BankRef {
	var refs []entities.BankRef
	for _, year := range r.Years() {
		for _, module := range r.Modules(year) {
			for _, topic := range r.Topics(year, module) {
				refs = append(refs, entities.BankRef{
					Year:   year,
					Module: module,
					Topic:  topic,
					Path:   r.catalog[year][module][topic],
				})
			}
		}
	}
	return refs
}

// BuildMasterList loads every bank concurrently and concatenates the
// results in manifest traversal order, so startup latency is bounded by
// the slowest bank rather than the sum. Any subset of banks may fail to
// load without aborting the build. The result is cached; the master
// list is read-only for the rest of the app lifetime.
func (r *CatalogRepository) BuildMasterList(ctx context.Context) []entities.Question {
	refs := r.Refs()
	banks := make([][]entities.Question, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			banks[i] = r.LoadBank(ctx, ref)
			return nil
		})
	}
	_ = g.Wait() // LoadBank never returns an error, failures load as empty banks

	var master []entities.Question
	for _, bank := range banks {
		master = append(master, bank...)
	}

	r.master = master
	r.logger.Info("master list built", zap.Int("questions", len(master)), zap.Int("banks", len(refs)))
	return master
}

// Master returns the master list built at startup. Empty until
// BuildMasterList has run.
func (r *CatalogRepository) Master() []entities.Question {
	return r.master
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
