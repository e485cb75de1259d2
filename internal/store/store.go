package store

import (
	"errors"

	"fakenft/internal/domain"
	"fakenft/internal/seed"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence contract used by the mock marketplace API.
type Store interface {
	Seed(f seed.Fixture) error

	Collections() ([]domain.Collection, error)
	Collection(id string) (domain.Collection, error)

	NFTs() ([]domain.NFT, error)
	NFT(id string) (domain.NFT, error)

	Users() ([]domain.User, error)
	User(id string) (domain.User, error)

	Profile(id string) (domain.Profile, error)
	SaveProfile(p domain.Profile) (domain.Profile, error)

	Order(id string) (domain.Order, error)
	SaveOrder(o domain.Order) (domain.Order, error)

	Currencies() ([]domain.Currency, error)
	Currency(id string) (domain.Currency, error)

	// Pay settles the order with the given currency. An empty order yields
	// an unsuccessful payment; a successful one clears the order.
	Pay(orderID, currencyID string) (domain.Payment, error)
}
