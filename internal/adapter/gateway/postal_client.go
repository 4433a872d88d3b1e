package gateway

import (
	"context"
	"net/url"
	"time"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

// PostalClient fetches carrier options from the postal-pricing collaborator.
type PostalClient struct {
	c *Client
}

func NewPostalClient(baseURL string, timeout time.Duration) *PostalClient {
	return &PostalClient{c: newClient(baseURL, timeout)}
}

type carriersResponse struct {
	Carriers []domain.CarrierOption `json:"carriers"`
}

func (p *PostalClient) Carriers(ctx context.Context, businessID, countryCode, cityName string) ([]domain.CarrierOption, error) {
	q := url.Values{}
	q.Set("businessId", businessID)
	q.Set("country", countryCode)
	q.Set("city", cityName)

	var resp carriersResponse
	if err := p.c.doJSON(ctx, "GET", "/v1/postal-pricing?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Carriers, nil
}

var _ usecase.PostalGateway = (*PostalClient)(nil)
