package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

// FeeClient calls the fee-calculation collaborator for geolocation mode.
type FeeClient struct {
	c *Client
}

func NewFeeClient(baseURL string, timeout time.Duration) *FeeClient {
	return &FeeClient{c: newClient(baseURL, timeout)}
}

type feeRequest struct {
	BusinessID string  `json:"businessId"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

type feeResponse struct {
	FeeCents int64 `json:"feeCents"`
}

// QuoteFee returns the delivery fee for the coordinates. Classified failures
// (OUTSIDE_DELIVERY_AREA, DELIVERY_NOT_AVAILABLE) come back as *GatewayError
// so the resolver can map them; everything else is a plain transport error.
func (f *FeeClient) QuoteFee(ctx context.Context, businessID string, lat, lng float64) (int64, error) {
	var resp feeResponse
	err := f.c.doJSON(ctx, "POST", "/v1/delivery-fee", feeRequest{
		BusinessID: businessID,
		Lat:        lat,
		Lng:        lng,
	}, &resp)
	if err != nil {
		var re *RemoteError
		if errors.As(err, &re) && re.Code != "" {
			return 0, &usecase.GatewayError{Code: re.Code, Message: re.Message}
		}
		return 0, err
	}
	return resp.FeeCents, nil
}

var _ usecase.FeeGateway = (*FeeClient)(nil)
