// Package mynft drives the profile's "my NFTs" screen: the profile record,
// the user list and the cards for the profile's items.
package mynft

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"fakenft/internal/domain"
	"fakenft/internal/logging"
	"fakenft/internal/network"
	"fakenft/internal/observable"
)

type Provider interface {
	FetchProfile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	FetchUsers(ctx context.Context) ([]domain.User, error)
	FetchNFTs(ctx context.Context, ids []string) ([]domain.NFT, error)
}

// ProfileEdit carries the user-editable profile fields. Nil fields are left
// unchanged.
type ProfileEdit struct {
	Name        *string
	Avatar      *string
	Description *string
	Website     *string
}

type ViewModel struct {
	provider Provider
	logger   *zap.Logger

	// Profile is nil until the first successful fetch. Alerts carries
	// user-facing error text, one value per failure.
	Profile *observable.Value[*domain.Profile]
	Users   *observable.Value[[]domain.User]
	Cards   *observable.Value[[]domain.NFT]
	Alerts  *observable.Value[string]

	mu         sync.Mutex
	sortOption domain.NFTSortOption
}

type Option func(*ViewModel)

func WithLogger(logger *zap.Logger) Option {
	return func(vm *ViewModel) { vm.logger = logger }
}

// WithAlertHandler subscribes fn to alerts before the initial fetches run,
// so failures during construction are not missed.
func WithAlertHandler(fn func(string)) Option {
	return func(vm *ViewModel) { vm.Alerts.Subscribe(fn) }
}

// New fetches the user list and the profile.
func New(ctx context.Context, provider Provider, opts ...Option) *ViewModel {
	vm := &ViewModel{
		provider: provider,
		Profile:  observable.New[*domain.Profile](nil),
		Users:    observable.New[[]domain.User](nil),
		Cards:    observable.New[[]domain.NFT](nil),
		Alerts:   observable.New(""),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.logger = logging.OrNop(vm.logger)

	vm.fetchUsers(ctx)
	vm.fetchProfile(ctx)
	return vm
}

// FetchCards loads the cards for ids and re-applies the last sort option.
// The batch either fully replaces the cards or leaves them untouched.
func (vm *ViewModel) FetchCards(ctx context.Context, ids []string) error {
	nfts, err := vm.provider.FetchNFTs(ctx, ids)
	if err != nil {
		vm.alert("nft cards fetch failed", err)
		return err
	}
	vm.mu.Lock()
	option := vm.sortOption
	vm.mu.Unlock()
	if option == "" {
		vm.Cards.Set(nfts)
		return nil
	}
	vm.Cards.Set(sortCards(nfts, option))
	return nil
}

// SortCards reorders the loaded cards and remembers option for later fetches.
func (vm *ViewModel) SortCards(option domain.NFTSortOption) {
	cards := vm.Cards.Get()
	if cards == nil {
		return
	}
	vm.mu.Lock()
	vm.sortOption = option
	vm.mu.Unlock()
	vm.Cards.Set(sortCards(cards, option))
}

// ChangeProfile replaces the liked ids and stores whatever the server echoes.
func (vm *ViewModel) ChangeProfile(ctx context.Context, likedIDs []string) error {
	current := vm.Profile.Get()
	if current == nil {
		return nil
	}
	next := current.Clone()
	next.Likes = slices.Clone(likedIDs)
	if next.Likes == nil {
		next.Likes = []string{}
	}
	return vm.putProfile(ctx, next)
}

// ToggleLike adds or removes id from the liked list.
func (vm *ViewModel) ToggleLike(ctx context.Context, id string) error {
	current := vm.Profile.Get()
	if current == nil {
		return nil
	}
	likes := slices.Clone(current.Likes)
	if i := slices.Index(likes, id); i >= 0 {
		likes = slices.Delete(likes, i, i+1)
	} else {
		likes = append(likes, id)
	}
	return vm.ChangeProfile(ctx, likes)
}

func (vm *ViewModel) UpdateProfile(ctx context.Context, edit ProfileEdit) error {
	current := vm.Profile.Get()
	if current == nil {
		return nil
	}
	next := current.Clone()
	if edit.Name != nil {
		next.Name = *edit.Name
	}
	if edit.Avatar != nil {
		next.Avatar = *edit.Avatar
	}
	if edit.Description != nil {
		next.Description = *edit.Description
	}
	if edit.Website != nil {
		next.Website = *edit.Website
	}
	return vm.putProfile(ctx, next)
}

func (vm *ViewModel) IsLiked(id string) bool {
	p := vm.Profile.Get()
	return p != nil && p.HasLiked(id)
}

// LikedCards returns the loaded cards the profile has liked.
func (vm *ViewModel) LikedCards() []domain.NFT {
	p := vm.Profile.Get()
	if p == nil {
		return nil
	}
	var out []domain.NFT
	for _, n := range vm.Cards.Get() {
		if p.HasLiked(n.ID) {
			out = append(out, n)
		}
	}
	return out
}

func (vm *ViewModel) putProfile(ctx context.Context, next domain.Profile) error {
	saved, err := vm.provider.UpdateProfile(ctx, next)
	if err != nil {
		vm.alert("profile update failed", err)
		return err
	}
	vm.Profile.Set(&saved)
	return nil
}

func (vm *ViewModel) fetchUsers(ctx context.Context) {
	users, err := vm.provider.FetchUsers(ctx)
	if err != nil {
		vm.alert("users fetch failed", err)
		return
	}
	vm.Users.Set(users)
}

func (vm *ViewModel) fetchProfile(ctx context.Context) {
	profile, err := vm.provider.FetchProfile(ctx)
	if err != nil {
		vm.alert("profile fetch failed", err)
		return
	}
	vm.Profile.Set(&profile)
}

func (vm *ViewModel) alert(msg string, err error) {
	vm.logger.Warn(msg, zap.Error(err))
	vm.Alerts.Set(network.UserMessage(err))
}

func sortCards(nfts []domain.NFT, option domain.NFTSortOption) []domain.NFT {
	out := slices.Clone(nfts)
	switch option {
	case domain.SortCardsByPrice:
		slices.SortStableFunc(out, func(a, b domain.NFT) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortCardsByRating:
		slices.SortStableFunc(out, func(a, b domain.NFT) int { return cmp.Compare(b.Rating, a.Rating) })
	case domain.SortCardsByName:
		slices.SortStableFunc(out, func(a, b domain.NFT) int { return strings.Compare(a.Name, b.Name) })
	}
	return out
}
