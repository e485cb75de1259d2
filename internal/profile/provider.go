package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"fakenft/internal/domain"
	"fakenft/internal/network"
)

const (
	profilePath = "/api/v1/profile/1"
	usersPath   = "/api/v1/users"
	nftPath     = "/api/v1/nft"
)

// DataProvider reads and writes the current user's profile.
type DataProvider struct {
	client   *network.Client
	baseURL  string
	parallel int
}

// NewDataProvider builds a provider that fetches at most parallel items at a
// time when resolving an id list.
func NewDataProvider(client *network.Client, baseURL string, parallel int) *DataProvider {
	if parallel <= 0 {
		parallel = 1
	}
	return &DataProvider{client: client, baseURL: baseURL, parallel: parallel}
}

func (p *DataProvider) FetchProfile(ctx context.Context) (domain.Profile, error) {
	var out domain.Profile
	if err := p.send(ctx, http.MethodGet, profilePath, nil, &out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

// UpdateProfile sends the whole record and returns what the server stored.
func (p *DataProvider) UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	var out domain.Profile
	if err := p.send(ctx, http.MethodPut, profilePath, profile, &out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

func (p *DataProvider) FetchUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := p.send(ctx, http.MethodGet, usersPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchNFTs resolves ids in order. Any single failure fails the whole batch.
func (p *DataProvider) FetchNFTs(ctx context.Context, ids []string) ([]domain.NFT, error) {
	out := make([]domain.NFT, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallel)
	for i, id := range ids {
		g.Go(func() error {
			var nft domain.NFT
			if err := p.send(gctx, http.MethodGet, nftPath+"/"+url.PathEscape(id), nil, &nft); err != nil {
				return fmt.Errorf("fetch nft %s: %w", id, err)
			}
			out[i] = nft
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *DataProvider) send(ctx context.Context, method, path string, body, out any) error {
	endpoint, err := network.URL(p.baseURL, path, nil)
	if err != nil {
		return err
	}
	return p.client.Send(ctx, network.Request{Endpoint: endpoint, Method: method, Body: body}, out)
}
