package catalog

import (
	"context"
	"net/http"
	"net/url"

	"fakenft/internal/domain"
	"fakenft/internal/network"
)

const (
	collectionsPath = "/api/v1/collections"
	nftPath         = "/api/v1/nft"
	usersPath       = "/api/v1/users"
)

// DataProvider fetches catalog records from the marketplace API.
type DataProvider struct {
	client  *network.Client
	baseURL string
}

func NewDataProvider(client *network.Client, baseURL string) *DataProvider {
	return &DataProvider{client: client, baseURL: baseURL}
}

func (p *DataProvider) FetchCollections(ctx context.Context) ([]domain.Collection, error) {
	var out []domain.Collection
	if err := p.get(ctx, collectionsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *DataProvider) FetchAuthor(ctx context.Context, id string) (domain.Author, error) {
	var out domain.Author
	if err := p.get(ctx, usersPath+"/"+url.PathEscape(id), &out); err != nil {
		return domain.Author{}, err
	}
	return out, nil
}

func (p *DataProvider) FetchNFT(ctx context.Context, id string) (domain.NFT, error) {
	var out domain.NFT
	if err := p.get(ctx, nftPath+"/"+url.PathEscape(id), &out); err != nil {
		return domain.NFT{}, err
	}
	return out, nil
}

func (p *DataProvider) FetchNFTs(ctx context.Context) ([]domain.NFT, error) {
	var out []domain.NFT
	if err := p.get(ctx, nftPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *DataProvider) get(ctx context.Context, path string, out any) error {
	endpoint, err := network.URL(p.baseURL, path, nil)
	if err != nil {
		return err
	}
	return p.client.Send(ctx, network.Request{Endpoint: endpoint, Method: http.MethodGet}, out)
}
