package memory

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"fakenft/internal/domain"
	"fakenft/internal/seed"
	"fakenft/internal/store"
)

type Store struct {
	mu sync.RWMutex

	collections     map[string]domain.Collection
	collectionOrder []string
	nfts            map[string]domain.NFT
	nftOrder        []string
	users           map[string]domain.User
	userOrder       []string
	currencies      map[string]domain.Currency
	currencyOrder   []string

	profiles map[string]domain.Profile
	orders   map[string]domain.Order
	payments []domain.Payment
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string]domain.Collection),
		nfts:        make(map[string]domain.NFT),
		users:       make(map[string]domain.User),
		currencies:  make(map[string]domain.Currency),
		profiles:    make(map[string]domain.Profile),
		orders:      make(map[string]domain.Order),
	}
}

// Seed replaces the catalog with f, keeping fixture order for list reads.
func (s *Store) Seed(f seed.Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections, s.collectionOrder = index(f.Collections, func(c domain.Collection) string { return c.ID })
	s.nfts, s.nftOrder = index(f.NFTs, func(n domain.NFT) string { return n.ID })
	s.users, s.userOrder = index(f.Users, func(u domain.User) string { return u.ID })
	s.currencies, s.currencyOrder = index(f.Currencies, func(c domain.Currency) string { return c.ID })
	s.profiles = map[string]domain.Profile{f.Profile.ID: f.Profile.Clone()}
	s.orders = map[string]domain.Order{f.Order.ID: {ID: f.Order.ID, NFTs: slices.Clone(f.Order.NFTs)}}
	s.payments = nil
	return nil
}

func (s *Store) Collections() ([]domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.collections, s.collectionOrder), nil
}

func (s *Store) Collection(id string) (domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.collections, id)
}

func (s *Store) NFTs() ([]domain.NFT, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.nfts, s.nftOrder), nil
}

func (s *Store) NFT(id string) (domain.NFT, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.nfts, id)
}

func (s *Store) Users() ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.users, s.userOrder), nil
}

func (s *Store) User(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.users, id)
}

func (s *Store) Profile(id string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := get(s.profiles, id)
	if err != nil {
		return domain.Profile{}, err
	}
	return p.Clone(), nil
}

func (s *Store) SaveProfile(p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		return domain.Profile{}, store.ErrNotFound
	}
	s.profiles[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (s *Store) Order(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, err := get(s.orders, id)
	if err != nil {
		return domain.Order{}, err
	}
	o.NFTs = slices.Clone(o.NFTs)
	return o, nil
}

func (s *Store) SaveOrder(o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return domain.Order{}, store.ErrNotFound
	}
	o.NFTs = slices.Clone(o.NFTs)
	if o.NFTs == nil {
		o.NFTs = []string{}
	}
	s.orders[o.ID] = o
	return domain.Order{ID: o.ID, NFTs: slices.Clone(o.NFTs)}, nil
}

func (s *Store) Currencies() ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.currencies, s.currencyOrder), nil
}

func (s *Store) Currency(id string) (domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.currencies, id)
}

func (s *Store) Pay(orderID, currencyID string) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.currencies[currencyID]; !ok {
		return domain.Payment{}, store.ErrNotFound
	}
	o, ok := s.orders[orderID]
	if !ok {
		return domain.Payment{}, store.ErrNotFound
	}
	payment := domain.Payment{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Success: len(o.NFTs) > 0,
	}
	if payment.Success {
		o.NFTs = []string{}
		s.orders[orderID] = o
	}
	s.payments = append(s.payments, payment)
	return payment, nil
}

func index[T any](items []T, id func(T) string) (map[string]T, []string) {
	m := make(map[string]T, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		k := id(item)
		if _, dup := m[k]; !dup {
			order = append(order, k)
		}
		m[k] = item
	}
	return m, order
}

func list[T any](m map[string]T, order []string) []T {
	out := make([]T, 0, len(order))
	for _, id := range order {
		out = append(out, m[id])
	}
	return out
}

func get[T any](m map[string]T, id string) (T, error) {
	v, ok := m[id]
	if !ok {
		var zero T
		return zero, store.ErrNotFound
	}
	return v, nil
}
