package interactor

import (
	"context"

	"go.uber.org/zap"

	"fakenft/internal/domain"
)

// FetchAuthor overwrites the author slot on success.
func (i *Interactor) FetchAuthor(ctx context.Context, id string) (domain.Author, error) {
	author, err := i.provider.FetchAuthor(ctx, id)
	if err != nil {
		i.logger.Warn("author fetch failed", zap.String("author_id", id), zap.Error(err))
		return domain.Author{}, err
	}
	i.mu.Lock()
	i.author = &author
	i.mu.Unlock()
	return author, nil
}

func (i *Interactor) ClearAuthor() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.author = nil
}

func (i *Interactor) CurrentAuthor() (domain.Author, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.author == nil {
		return domain.Author{}, false
	}
	return *i.author, true
}

// FetchNFT appends the item on success. Items are not deduplicated: fetching
// the same id twice stores it twice.
func (i *Interactor) FetchNFT(ctx context.Context, id string) (domain.NFT, error) {
	nft, err := i.provider.FetchNFT(ctx, id)
	if err != nil {
		i.logger.Warn("nft fetch failed", zap.String("nft_id", id), zap.Error(err))
		return domain.NFT{}, err
	}
	i.mu.Lock()
	i.nfts = append(i.nfts, nft)
	i.mu.Unlock()
	return nft, nil
}

func (i *Interactor) ClearNFTs() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.nfts = nil
}

func (i *Interactor) NFTCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.nfts)
}

func (i *Interactor) NFTAt(index int) (domain.NFT, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if index < 0 || index >= len(i.nfts) {
		return domain.NFT{}, false
	}
	return i.nfts[index], true
}
