package mynft

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakenft/internal/domain"
	"fakenft/internal/network"
)

type stubProvider struct {
	mu       sync.Mutex
	profile  domain.Profile
	users    []domain.User
	nfts     map[string]domain.NFT
	failNext error
	updates  []domain.Profile
	nftErr   error
	usersErr error
}

func (s *stubProvider) FetchProfile(context.Context) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone(), nil
}

func (s *stubProvider) UpdateProfile(_ context.Context, p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return domain.Profile{}, err
	}
	s.updates = append(s.updates, p.Clone())
	s.profile = p.Clone()
	return p.Clone(), nil
}

func (s *stubProvider) FetchUsers(context.Context) ([]domain.User, error) {
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	return s.users, nil
}

func (s *stubProvider) FetchNFTs(_ context.Context, ids []string) ([]domain.NFT, error) {
	if s.nftErr != nil {
		return nil, s.nftErr
	}
	out := make([]domain.NFT, 0, len(ids))
	for _, id := range ids {
		n, ok := s.nfts[id]
		if !ok {
			return nil, &network.StatusError{StatusCode: 404}
		}
		out = append(out, n)
	}
	return out, nil
}

func newStub() *stubProvider {
	return &stubProvider{
		profile: domain.Profile{
			ID: "1", Name: "Joaquin Phoenix", Website: "https://example.com",
			NFTs: []string{"a", "b", "c"}, Likes: []string{"b"},
		},
		users: []domain.User{{ID: "u1", Name: "Ann"}},
		nfts: map[string]domain.NFT{
			"a": {ID: "a", Name: "Lilo", Price: 39.4, Rating: 3},
			"b": {ID: "b", Name: "Archie", Price: 1.5, Rating: 5},
			"c": {ID: "c", Name: "Spring", Price: 12, Rating: 1},
		},
	}
}

func cardNames(cards []domain.NFT) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestNewLoadsUsersAndProfile(t *testing.T) {
	vm := New(context.Background(), newStub())
	require.NotNil(t, vm.Profile.Get())
	assert.Equal(t, "Joaquin Phoenix", vm.Profile.Get().Name)
	assert.Len(t, vm.Users.Get(), 1)
	assert.Nil(t, vm.Cards.Get())
}

func TestNewReportsFailuresAsAlerts(t *testing.T) {
	p := newStub()
	p.usersErr = &network.StatusError{StatusCode: 500}
	var alerts []string
	vm := New(context.Background(), p, WithAlertHandler(func(s string) { alerts = append(alerts, s) }))
	assert.Nil(t, vm.Users.Get())
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "unavailable")
}

func TestSortCards(t *testing.T) {
	vm := New(context.Background(), newStub())
	require.NoError(t, vm.FetchCards(context.Background(), []string{"a", "b", "c"}))
	assert.Equal(t, []string{"Lilo", "Archie", "Spring"}, cardNames(vm.Cards.Get()))

	vm.SortCards(domain.SortCardsByPrice)
	assert.Equal(t, []string{"Archie", "Spring", "Lilo"}, cardNames(vm.Cards.Get()))

	vm.SortCards(domain.SortCardsByRating)
	assert.Equal(t, []string{"Archie", "Lilo", "Spring"}, cardNames(vm.Cards.Get()))

	vm.SortCards(domain.SortCardsByName)
	assert.Equal(t, []string{"Archie", "Lilo", "Spring"}, cardNames(vm.Cards.Get()))

	vm.SortCards(domain.SortCardsClose)
	assert.Equal(t, []string{"Archie", "Lilo", "Spring"}, cardNames(vm.Cards.Get()))
}

func TestSortCardsWithoutCardsIsNoop(t *testing.T) {
	vm := New(context.Background(), newStub())
	notified := 0
	vm.Cards.Subscribe(func([]domain.NFT) { notified++ })
	vm.SortCards(domain.SortCardsByPrice)
	assert.Zero(t, notified)
	assert.Nil(t, vm.Cards.Get())
}

func TestFetchCardsReappliesSelectedSort(t *testing.T) {
	vm := New(context.Background(), newStub())
	require.NoError(t, vm.FetchCards(context.Background(), []string{"a"}))
	vm.SortCards(domain.SortCardsByPrice)

	require.NoError(t, vm.FetchCards(context.Background(), []string{"a", "b", "c"}))
	assert.Equal(t, []string{"Archie", "Spring", "Lilo"}, cardNames(vm.Cards.Get()))
}

func TestFetchCardsFailureKeepsCards(t *testing.T) {
	vm := New(context.Background(), newStub())
	require.NoError(t, vm.FetchCards(context.Background(), []string{"a", "b"}))

	var alert string
	vm.Alerts.Subscribe(func(s string) { alert = s })
	err := vm.FetchCards(context.Background(), []string{"a", "missing"})
	require.Error(t, err)
	assert.Equal(t, []string{"Lilo", "Archie"}, cardNames(vm.Cards.Get()))
	assert.Contains(t, alert, "not found")
}

func TestChangeProfileReplacesLikesOnly(t *testing.T) {
	p := newStub()
	vm := New(context.Background(), p)

	require.NoError(t, vm.ChangeProfile(context.Background(), []string{"a", "c"}))
	require.Len(t, p.updates, 1)
	sent := p.updates[0]
	assert.Equal(t, []string{"a", "c"}, sent.Likes)
	assert.Equal(t, "Joaquin Phoenix", sent.Name)
	assert.Equal(t, []string{"a", "b", "c"}, sent.NFTs)
	assert.Equal(t, "1", sent.ID)

	assert.Equal(t, []string{"a", "c"}, vm.Profile.Get().Likes)
	assert.True(t, vm.IsLiked("c"))
	assert.False(t, vm.IsLiked("b"))
}

func TestChangeProfileFailureKeepsCache(t *testing.T) {
	p := newStub()
	vm := New(context.Background(), p)
	p.failNext = errors.New("offline")

	require.Error(t, vm.ChangeProfile(context.Background(), nil))
	assert.Equal(t, []string{"b"}, vm.Profile.Get().Likes)
	assert.Contains(t, vm.Alerts.Get(), "Network error")
}

func TestToggleLikeAndLikedCards(t *testing.T) {
	vm := New(context.Background(), newStub())
	require.NoError(t, vm.FetchCards(context.Background(), []string{"a", "b", "c"}))

	require.NoError(t, vm.ToggleLike(context.Background(), "a"))
	assert.ElementsMatch(t, []string{"Lilo", "Archie"}, cardNames(vm.LikedCards()))

	require.NoError(t, vm.ToggleLike(context.Background(), "b"))
	assert.Equal(t, []string{"Lilo"}, cardNames(vm.LikedCards()))
}

func TestUpdateProfileEditsSelectedFields(t *testing.T) {
	p := newStub()
	vm := New(context.Background(), p)
	name := "Joaquin"
	require.NoError(t, vm.UpdateProfile(context.Background(), ProfileEdit{Name: &name}))

	got := vm.Profile.Get()
	assert.Equal(t, "Joaquin", got.Name)
	assert.Equal(t, "https://example.com", got.Website)
	assert.Equal(t, []string{"b"}, got.Likes)
}
