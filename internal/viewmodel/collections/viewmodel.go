// Package collections drives the collection list screen. Navigation and
// result state are two independent observable axes.
package collections

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"fakenft/internal/domain"
	"fakenft/internal/logging"
	"fakenft/internal/observable"
)

// DataSource is the cache the view model presents.
type DataSource interface {
	CollectionCount() int
	CollectionAt(index int) (domain.Collection, bool)
	ReloadCollections(ctx context.Context) ([]domain.Collection, error)
	SortByName(order domain.SortOrder)
	SortByNFTCount(order domain.SortOrder)
}

// Factory builds the data source on the first refresh. It must call onReady
// once with the initial fetch result.
type Factory func(ctx context.Context, onReady func([]domain.Collection, error)) DataSource

type ViewModel struct {
	factory Factory
	logger  *zap.Logger

	buildMu sync.Mutex
	mu      sync.RWMutex
	source  DataSource

	Navigation *observable.Value[NavigationState]
	Result     *observable.Value[ResultState]
}

func New(factory Factory, logger *zap.Logger) *ViewModel {
	return &ViewModel{
		factory:    factory,
		logger:     logging.OrNop(logger),
		Navigation: observable.New(NavigationState{Kind: NavigationBase}),
		Result:     observable.New(ResultState{Kind: ResultStart}),
	}
}

func (vm *ViewModel) CollectionCount() int {
	if src := vm.dataSource(); src != nil {
		return src.CollectionCount()
	}
	return 0
}

func (vm *ViewModel) CollectionAt(index int) (domain.Collection, bool) {
	if src := vm.dataSource(); src != nil {
		return src.CollectionAt(index)
	}
	return domain.Collection{}, false
}

// Refresh loads collections. The first call builds the data source; later
// calls reload through it.
func (vm *ViewModel) Refresh(ctx context.Context, isPullRefresh bool) {
	if isPullRefresh {
		vm.Result.Set(ResultState{Kind: ResultStart})
	} else {
		vm.Result.Set(ResultState{Kind: ResultLoading})
	}

	if src := vm.dataSource(); src != nil {
		_, err := src.ReloadCollections(ctx)
		vm.handleResult(err)
		return
	}

	vm.buildMu.Lock()
	if src := vm.dataSource(); src != nil {
		vm.buildMu.Unlock()
		_, err := src.ReloadCollections(ctx)
		vm.handleResult(err)
		return
	}
	var readyErr error
	src := vm.factory(ctx, func(_ []domain.Collection, err error) {
		readyErr = err
	})
	vm.mu.Lock()
	vm.source = src
	vm.mu.Unlock()
	vm.buildMu.Unlock()

	// published only once the source is reachable from subscribers
	vm.handleResult(readyErr)
}

func (vm *ViewModel) HandleAction(ctx context.Context, action Action) {
	switch a := action.(type) {
	case CollectionTapped:
		vm.Navigation.Set(NavigationState{Kind: NavigationCollectionDetails, Collection: a.Collection})

	case PullToRefresh:
		vm.Refresh(ctx, true)
		vm.Navigation.Set(NavigationState{Kind: NavigationBase})

	case SortTapped:
		vm.Navigation.Set(NavigationState{Kind: NavigationSortSelection})

	case SortSelected:
		vm.Result.Set(ResultState{Kind: ResultLoading})
		if src := vm.dataSource(); src != nil {
			switch a.Kind {
			case domain.SortByName:
				src.SortByName(domain.Ascending)
			default:
				src.SortByNFTCount(domain.Descending)
			}
		}
		vm.Navigation.Set(NavigationState{Kind: NavigationBase})
		vm.Result.Set(ResultState{Kind: ResultShow})

	case SortCancelled:
		vm.Navigation.Set(NavigationState{Kind: NavigationBase})

	default:
		vm.logger.Warn("unhandled action", zap.Any("action", action))
	}
}

func (vm *ViewModel) handleResult(err error) {
	if err != nil {
		vm.Result.Set(ResultState{Kind: ResultError, Err: err})
		return
	}
	vm.Result.Set(ResultState{Kind: ResultShow})
}

func (vm *ViewModel) dataSource() DataSource {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.source
}
