// Package seed holds the fixture data the mock marketplace starts from.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fakenft/internal/domain"
)

//go:embed fixture.yaml
var defaultFixture []byte

type Fixture struct {
	Users       []domain.User       `yaml:"users"`
	Collections []domain.Collection `yaml:"collections"`
	NFTs        []domain.NFT        `yaml:"nfts"`
	Profile     domain.Profile      `yaml:"profile"`
	Order       domain.Order        `yaml:"order"`
	Currencies  []domain.Currency   `yaml:"currencies"`
}

// Default returns the embedded fixture.
func Default() (Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file. An empty path selects the embedded fixture.
func Load(path string) (Fixture, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// Validate checks ids are present and unique per kind.
func (f Fixture) Validate() error {
	if f.Profile.ID == "" {
		return errors.New("seed: profile id is required")
	}
	if f.Order.ID == "" {
		return errors.New("seed: order id is required")
	}
	if err := uniqueIDs("users", f.Users, func(u domain.User) string { return u.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("collections", f.Collections, func(c domain.Collection) string { return c.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("nfts", f.NFTs, func(n domain.NFT) string { return n.ID }); err != nil {
		return err
	}
	return uniqueIDs("currencies", f.Currencies, func(c domain.Currency) string { return c.ID })
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		v := id(item)
		if v == "" {
			return fmt.Errorf("seed: %s[%d] has no id", kind, i)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("seed: duplicate %s id %q", kind, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
