package order

import (
	"context"
	"net/http"
	"net/url"

	"fakenft/internal/domain"
	"fakenft/internal/network"
)

const (
	orderPath      = "/api/v1/orders/1"
	paymentPath    = "/api/v1/orders/1/payment"
	currenciesPath = "/api/v1/currencies"
)

type DataProvider struct {
	client  *network.Client
	baseURL string
}

func NewDataProvider(client *network.Client, baseURL string) *DataProvider {
	return &DataProvider{client: client, baseURL: baseURL}
}

func (p *DataProvider) FetchOrder(ctx context.Context) (domain.Order, error) {
	var out domain.Order
	if err := p.send(ctx, http.MethodGet, orderPath, nil, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

// UpdateOrder replaces the cart contents with ids.
func (p *DataProvider) UpdateOrder(ctx context.Context, ids []string) (domain.Order, error) {
	if ids == nil {
		ids = []string{}
	}
	var out domain.Order
	body := domain.Order{ID: "1", NFTs: ids}
	if err := p.send(ctx, http.MethodPut, orderPath, body, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

func (p *DataProvider) FetchCurrencies(ctx context.Context) ([]domain.Currency, error) {
	var out []domain.Currency
	if err := p.send(ctx, http.MethodGet, currenciesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Pay settles the current order in the given currency.
func (p *DataProvider) Pay(ctx context.Context, currencyID string) (domain.Payment, error) {
	var out domain.Payment
	if err := p.send(ctx, http.MethodGet, paymentPath+"/"+url.PathEscape(currencyID), nil, &out); err != nil {
		return domain.Payment{}, err
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
