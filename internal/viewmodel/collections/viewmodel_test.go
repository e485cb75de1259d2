package collections

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakenft/internal/domain"
	"fakenft/internal/interactor"
	"fakenft/internal/network"
	"fakenft/internal/settings"
)

type stubProvider struct {
	mu          sync.Mutex
	collections []domain.Collection
	err         error
	fetches     int
}

func (s *stubProvider) FetchCollections(context.Context) ([]domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Collection(nil), s.collections...), nil
}

func (s *stubProvider) FetchAuthor(context.Context, string) (domain.Author, error) {
	return domain.Author{}, errors.New("unused")
}

func (s *stubProvider) FetchNFT(context.Context, string) (domain.NFT, error) {
	return domain.NFT{}, errors.New("unused")
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, s)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

func setup(t *testing.T, p *stubProvider) (*ViewModel, *recorder, *int) {
	t.Helper()
	builds := 0
	vm := New(func(ctx context.Context, onReady func([]domain.Collection, error)) DataSource {
		builds++
		return interactor.New(ctx, p, settings.NewMemory(), onReady)
	}, nil)
	rec := &recorder{}
	vm.Navigation.Subscribe(func(s NavigationState) { rec.add("nav:" + s.Kind.String()) })
	vm.Result.Subscribe(func(s ResultState) { rec.add("result:" + s.Kind.String()) })
	return vm, rec, &builds
}

func sample() []domain.Collection {
	return []domain.Collection{
		{ID: "1", Name: "Peach", NFTs: []string{"a"}},
		{ID: "2", Name: "Blue", NFTs: []string{"a", "b", "c"}},
		{ID: "3", Name: "Brown", NFTs: []string{"a", "b"}},
	}
}

func TestBeforeRefreshNothingIsAvailable(t *testing.T) {
	vm, _, _ := setup(t, &stubProvider{collections: sample()})
	assert.Zero(t, vm.CollectionCount())
	_, ok := vm.CollectionAt(0)
	assert.False(t, ok)
	assert.Equal(t, ResultStart, vm.Result.Get().Kind)
	assert.Equal(t, NavigationBase, vm.Navigation.Get().Kind)
}

func TestInitialRefreshBuildsSourceOnce(t *testing.T) {
	p := &stubProvider{collections: sample()}
	vm, rec, builds := setup(t, p)

	vm.Refresh(context.Background(), false)
	assert.Equal(t, []string{"result:loading", "result:show"}, rec.take())
	assert.Equal(t, 3, vm.CollectionCount())
	first, ok := vm.CollectionAt(0)
	require.True(t, ok)
	assert.Equal(t, "Blue", first.Name)

	vm.Refresh(context.Background(), false)
	assert.Equal(t, 1, *builds)
	assert.Equal(t, 2, p.fetches)
}

func TestShowStateSeesLoadedData(t *testing.T) {
	vm, _, _ := setup(t, &stubProvider{collections: sample()})
	var countOnShow int
	vm.Result.Subscribe(func(s ResultState) {
		if s.Kind == ResultShow {
			countOnShow = vm.CollectionCount()
		}
	})
	vm.Refresh(context.Background(), false)
	assert.Equal(t, 3, countOnShow)
}

func TestRefreshFailureReportsError(t *testing.T) {
	boom := &network.StatusError{StatusCode: 503}
	vm, rec, _ := setup(t, &stubProvider{err: boom})

	vm.Refresh(context.Background(), false)
	assert.Equal(t, []string{"result:loading", "result:error"}, rec.take())
	state := vm.Result.Get()
	assert.True(t, errors.Is(state.Err, boom))
	assert.Contains(t, state.Message(), "unavailable")
}

func TestPullToRefresh(t *testing.T) {
	p := &stubProvider{collections: sample()}
	vm, rec, _ := setup(t, p)
	vm.Refresh(context.Background(), false)
	rec.take()

	vm.HandleAction(context.Background(), PullToRefresh{})
	assert.Equal(t, []string{"result:start", "result:show", "nav:base"}, rec.take())
	assert.Equal(t, 2, p.fetches)
}

func TestPullToRefreshFailureKeepsData(t *testing.T) {
	p := &stubProvider{collections: sample()}
	vm, rec, _ := setup(t, p)
	vm.Refresh(context.Background(), false)
	rec.take()

	p.mu.Lock()
	p.err = errors.New("offline")
	p.mu.Unlock()
	vm.HandleAction(context.Background(), PullToRefresh{})
	assert.Equal(t, []string{"result:start", "result:error", "nav:base"}, rec.take())
	assert.Equal(t, 3, vm.CollectionCount())
}

func TestNavigationActions(t *testing.T) {
	vm, rec, _ := setup(t, &stubProvider{collections: sample()})
	c := sample()[0]

	vm.HandleAction(context.Background(), CollectionTapped{Collection: c})
	assert.Equal(t, NavigationCollectionDetails, vm.Navigation.Get().Kind)
	assert.Equal(t, "Peach", vm.Navigation.Get().Collection.Name)

	vm.HandleAction(context.Background(), SortTapped{})
	vm.HandleAction(context.Background(), SortCancelled{})
	assert.Equal(t, []string{"nav:collection-details", "nav:sort-selection", "nav:base"}, rec.take())
}

func TestSortSelected(t *testing.T) {
	vm, rec, _ := setup(t, &stubProvider{collections: sample()})
	vm.Refresh(context.Background(), false)
	rec.take()

	vm.HandleAction(context.Background(), SortSelected{Kind: domain.SortByName})
	assert.Equal(t, []string{"result:loading", "nav:base", "result:show"}, rec.take())
	var got []string
	for i := 0; i < vm.CollectionCount(); i++ {
		c, _ := vm.CollectionAt(i)
		got = append(got, c.Name)
	}
	assert.Equal(t, []string{"Blue", "Brown", "Peach"}, got)

	vm.HandleAction(context.Background(), SortSelected{Kind: domain.SortByNFTCount})
	c, _ := vm.CollectionAt(0)
	assert.Equal(t, "Blue", c.Name)
	c, _ = vm.CollectionAt(2)
	assert.Equal(t, "Peach", c.Name)
}

func TestSortSelectedBeforeRefreshIsHarmless(t *testing.T) {
	vm, rec, _ := setup(t, &stubProvider{collections: sample()})
	vm.HandleAction(context.Background(), SortSelected{Kind: domain.SortByName})
	assert.Equal(t, []string{"result:loading", "nav:base", "result:show"}, rec.take())
	assert.Zero(t, vm.CollectionCount())
}
