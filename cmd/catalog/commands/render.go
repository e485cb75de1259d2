package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fakenft/internal/domain"
	"fakenft/internal/viewmodel/collections"
)

func printCollections(out io.Writer, vm *collections.ViewModel) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i := 0; i < vm.CollectionCount(); i++ {
		c, ok := vm.CollectionAt(i)
		if !ok {
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%d items\n", i, c.Name, len(c.NFTs))
	}
	_ = tw.Flush()
}

func printNFTs(out io.Writer, nfts []domain.NFT, liked func(string) bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, n := range nfts {
		mark := " "
		if liked != nil && liked(n.ID) {
			mark = "♥"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f ETH\n", mark, n.ID, n.Name, stars(n.Rating), n.Price)
	}
	_ = tw.Flush()
}

func printCards(out io.Writer, cards []domain.NFTCard) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range cards {
		var flags []string
		if c.Liked {
			flags = append(flags, "liked")
		}
		if c.Ordered {
			flags = append(flags, "in cart")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f ETH\t%s\n", c.ID, c.Name, stars(c.Rating), c.Price, strings.Join(flags, ","))
	}
	_ = tw.Flush()
}

func stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
