package postgres

import (
	"errors"
	"os"
	"testing"

	"fakenft/internal/seed"
	"fakenft/internal/store"
)

var _ store.Store = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	s, err := NewStore(url)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	f, err := seed.Default()
	if err != nil {
		t.Fatalf("default fixture: %v", err)
	}
	if _, err := s.db.Exec(`truncate collections, nfts, users, profiles, orders, currencies, payments`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if err := s.Seed(f); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestCatalogReads(t *testing.T) {
	s := openTestStore(t)
	collections, err := s.Collections()
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	if len(collections) != 3 || collections[0].Name != "Peach" {
		t.Fatalf("unexpected collections: %+v", collections)
	}
	n, err := s.NFT("69")
	if err != nil || n.Name != "Ellsa" || len(n.Images) != 1 {
		t.Fatalf("nft 69 = %+v, %v", n, err)
	}
	if _, err := s.User("404"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileAndPaymentWrites(t *testing.T) {
	s := openTestStore(t)
	p, err := s.Profile("1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	p.Likes = []string{"1"}
	saved, err := s.SaveProfile(p)
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if len(saved.Likes) != 1 || saved.Likes[0] != "1" {
		t.Fatalf("likes = %v", saved.Likes)
	}

	payment, err := s.Pay("1", "1")
	if err != nil || !payment.Success {
		t.Fatalf("pay = %+v, %v", payment, err)
	}
	order, _ := s.Order("1")
	if len(order.NFTs) != 0 {
		t.Fatalf("order not cleared: %v", order.NFTs)
	}
}
