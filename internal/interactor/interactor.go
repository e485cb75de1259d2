// Package interactor owns the in-memory catalog caches: the collection list
// kept in the active sort order, a single author slot, and an accumulator of
// fetched items.
//
// Fetch failures never touch the caches; the raw error is returned to the
// caller. Nothing is retried here.
package interactor

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"fakenft/internal/domain"
	"fakenft/internal/logging"
	"fakenft/internal/settings"
)

// Provider is the catalog collaborator the interactor fetches through.
type Provider interface {
	FetchCollections(ctx context.Context) ([]domain.Collection, error)
	FetchAuthor(ctx context.Context, id string) (domain.Author, error)
	FetchNFT(ctx context.Context, id string) (domain.NFT, error)
}

type Interactor struct {
	provider Provider
	prefs    settings.Store
	logger   *zap.Logger

	mu          sync.RWMutex
	collections []domain.Collection
	author      *domain.Author
	nfts        []domain.NFT
	sortState   domain.SortState
}

type Option func(*Interactor)

func WithLogger(logger *zap.Logger) Option {
	return func(i *Interactor) { i.logger = logger }
}

// New restores the persisted sort preference and loads all collections.
// onReady, when non-nil, is called exactly once with the raw fetch result,
// whether or not the fetch succeeded. On failure the cache stays empty.
func New(
	ctx context.Context,
	provider Provider,
	prefs settings.Store,
	onReady func([]domain.Collection, error),
	opts ...Option,
) *Interactor {
	i := &Interactor{
		provider: provider,
		prefs:    prefs,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = logging.OrNop(i.logger)
	i.sortState = i.savedSortState(ctx)

	collections, err := provider.FetchCollections(ctx)
	if err != nil {
		i.logger.Warn("initial collections fetch failed", zap.Error(err))
	} else {
		i.mu.Lock()
		i.collections = slices.Clone(collections)
		state := i.sortState
		i.mu.Unlock()
		if state.Kind == domain.SortByName {
			i.SortByName(state.Order)
		} else {
			i.SortByNFTCount(state.Order)
		}
	}
	if onReady != nil {
		onReady(collections, err)
	}
	return i
}

// Collections returns a copy of the cache in the active sort order.
func (i *Interactor) Collections() []domain.Collection {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.collections)
}

func (i *Interactor) CollectionCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.collections)
}

// CollectionAt reports false for any index outside the cache.
func (i *Interactor) CollectionAt(index int) (domain.Collection, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if index < 0 || index >= len(i.collections) {
		return domain.Collection{}, false
	}
	return i.collections[index], true
}

// ReloadCollections replaces the cache and re-applies the active sort order.
// A failed reload leaves the previous cache in place.
func (i *Interactor) ReloadCollections(ctx context.Context) ([]domain.Collection, error) {
	collections, err := i.provider.FetchCollections(ctx)
	if err != nil {
		i.logger.Warn("collections reload failed", zap.Error(err))
		return nil, err
	}
	i.mu.Lock()
	i.collections = slices.Clone(collections)
	sortCollections(i.collections, i.sortState)
	i.mu.Unlock()
	return collections, nil
}

func (i *Interactor) SortState() domain.SortState {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.sortState
}

func (i *Interactor) SortByName(order domain.SortOrder) {
	i.applySort(domain.SortState{Kind: domain.SortByName, Order: order})
}

func (i *Interactor) SortByNFTCount(order domain.SortOrder) {
	i.applySort(domain.SortState{Kind: domain.SortByNFTCount, Order: order})
}

func (i *Interactor) applySort(state domain.SortState) {
	if state.Order != domain.Descending {
		state.Order = domain.Ascending
	}
	// A storage failure is logged; the in-memory sort still applies.
	if err := i.prefs.Set(context.Background(), settings.SortTypeKey, string(state.Kind)); err != nil {
		i.logger.Warn("failed to persist sort preference",
			zap.String("kind", string(state.Kind)),
			zap.Error(err))
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sortState = state
	sortCollections(i.collections, state)
}

func (i *Interactor) savedSortState(ctx context.Context) domain.SortState {
	raw, ok, err := i.prefs.Get(ctx, settings.SortTypeKey)
	if err != nil {
		i.logger.Warn("failed to load sort preference", zap.Error(err))
		return domain.DefaultSortState
	}
	if !ok {
		return domain.DefaultSortState
	}
	return domain.ParseSortState(raw)
}

// sortCollections is stable: collections that compare equal keep their
// current relative order.
func sortCollections(collections []domain.Collection, state domain.SortState) {
	var cmp func(a, b domain.Collection) int
	switch state.Kind {
	case domain.SortByName:
		cmp = func(a, b domain.Collection) int { return strings.Compare(a.Name, b.Name) }
	default:
		cmp = func(a, b domain.Collection) int { return len(a.NFTs) - len(b.NFTs) }
	}
	if state.Order == domain.Descending {
		asc := cmp
		cmp = func(a, b domain.Collection) int { return asc(b, a) }
	}
	slices.SortStableFunc(collections, cmp)
}
