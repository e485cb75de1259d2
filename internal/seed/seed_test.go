package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFixtureIsValid(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("default fixture: %v", err)
	}
	if len(f.Collections) == 0 || len(f.NFTs) == 0 || len(f.Currencies) == 0 {
		t.Fatalf("default fixture is missing data: %+v", f)
	}
	if f.Profile.ID != "1" || f.Order.ID != "1" {
		t.Fatalf("profile/order ids = %q/%q, want 1/1", f.Profile.ID, f.Order.ID)
	}

	known := make(map[string]bool, len(f.NFTs))
	for _, n := range f.NFTs {
		known[n.ID] = true
	}
	for _, c := range f.Collections {
		for _, id := range c.NFTs {
			if !known[id] {
				t.Fatalf("collection %s references unknown nft %s", c.Name, id)
			}
		}
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	raw := `
profile: {id: "1"}
order: {id: "1"}
currencies:
  - {id: "1", name: BTC}
  - {id: "1", name: ETH}
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
