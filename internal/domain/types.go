package domain

import "slices"

type Collection struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Cover       string   `json:"cover" yaml:"cover"`
	NFTs        []string `json:"nfts" yaml:"nfts"`
	Description string   `json:"description" yaml:"description"`
	Author      string   `json:"author" yaml:"author"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`
}

type NFT struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Images      []string `json:"images" yaml:"images"`
	Rating      int      `json:"rating" yaml:"rating"`
	Price       float64  `json:"price" yaml:"price"`
	Author      string   `json:"author" yaml:"author"`
	Description string   `json:"description" yaml:"description"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`
}

// User is a marketplace participant. Authors of collections are users.
type User struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Avatar      string   `json:"avatar" yaml:"avatar"`
	Description string   `json:"description" yaml:"description"`
	Website     string   `json:"website" yaml:"website"`
	NFTs        []string `json:"nfts" yaml:"nfts"`
	Rating      string   `json:"rating" yaml:"rating"`
}

type Author = User

type Profile struct {
	Name        string   `json:"name" yaml:"name"`
	Avatar      string   `json:"avatar" yaml:"avatar"`
	Description string   `json:"description" yaml:"description"`
	Website     string   `json:"website" yaml:"website"`
	NFTs        []string `json:"nfts" yaml:"nfts"`
	Likes       []string `json:"likes" yaml:"likes"`
	ID          string   `json:"id" yaml:"id"`
}

// Clone returns a deep copy, so edits never alias the cached record.
func (p Profile) Clone() Profile {
	p.NFTs = slices.Clone(p.NFTs)
	p.Likes = slices.Clone(p.Likes)
	return p
}

func (p Profile) HasLiked(id string) bool { return slices.Contains(p.Likes, id) }

type Order struct {
	ID   string   `json:"id" yaml:"id"`
	NFTs []string `json:"nfts" yaml:"nfts"`
}

type Currency struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
	Success bool   `json:"success"`
}

// NFTCard is an item decorated with the flags derived from profile and order
// state.
type NFTCard struct {
	NFT
	Liked   bool `json:"liked"`
	Ordered bool `json:"ordered"`
}

func Cards(nfts []NFT, profile Profile, order Order) []NFTCard {
	out := make([]NFTCard, 0, len(nfts))
	for _, n := range nfts {
		out = append(out, NFTCard{
			NFT:     n,
			Liked:   slices.Contains(profile.Likes, n.ID),
			Ordered: slices.Contains(order.NFTs, n.ID),
		})
	}
	return out
}
