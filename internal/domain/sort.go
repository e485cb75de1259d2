package domain

type SortKind string

const (
	SortByName     SortKind = "byName"
	SortByNFTCount SortKind = "byNFTQuantity"
)

type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

type SortState struct {
	Kind  SortKind
	Order SortOrder
}

// DefaultSortState is used when no preference has been persisted.
var DefaultSortState = SortState{Kind: SortByNFTCount, Order: Descending}

// ParseSortState restores a persisted preference. Only the kind is stored, so
// the direction is the kind's default.
func ParseSortState(raw string) SortState {
	if SortKind(raw) == SortByName {
		return SortState{Kind: SortByName, Order: Ascending}
	}
	return DefaultSortState
}

// NFTSortOption orders the cards on the "my NFTs" screen.
type NFTSortOption string

const (
	SortCardsByPrice  NFTSortOption = "price"
	SortCardsByRating NFTSortOption = "rating"
	SortCardsByName   NFTSortOption = "name"
	SortCardsClose    NFTSortOption = "close"
)
