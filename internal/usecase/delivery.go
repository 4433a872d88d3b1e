package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"time"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

var ErrUnknownCarrier = errors.New("unknown carrier")

// FeeResolver resolves delivery eligibility and fee per (session, tenant) and
// keeps the latest quote. Resolutions are stamped with a generation counter;
// a completion whose input is no longer the newest is discarded so an
// in-flight stale call can never overwrite state produced by a newer one
// (last write wins by input recency, not completion order).
type FeeResolver struct {
	fees    FeeGateway
	postal  PostalGateway
	timeout time.Duration

	mu        sync.Mutex
	sessions  map[string]*quoteSession
	lastSweep time.Time
}

// quoteIdleTTL bounds how long untouched quote state is kept. Cart sessions
// live for days, but quote state is cheap to rebuild from the next input.
const quoteIdleTTL = 12 * time.Hour

type quoteSession struct {
	gen     uint64
	quote   domain.DeliveryQuote
	touched time.Time

	// postal mode
	countryCode string
	cityName    string
	carriers    []domain.CarrierOption
	carrier     string
}

func NewFeeResolver(fees FeeGateway, postal PostalGateway, timeout time.Duration) *FeeResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FeeResolver{
		fees:     fees,
		postal:   postal,
		timeout:  timeout,
		sessions: make(map[string]*quoteSession),
	}
}

func quoteKey(sessionID, businessID string) string { return sessionID + "\x00" + businessID }

func (r *FeeResolver) session(key string) *quoteSession {
	now := time.Now()
	r.sweep(now)
	qs, ok := r.sessions[key]
	if !ok {
		qs = &quoteSession{quote: domain.DeliveryQuote{Kind: domain.QuoteNone}}
		r.sessions[key] = qs
	}
	qs.touched = now
	return qs
}

// sweep evicts quote state idle past quoteIdleTTL. Called with mu held; runs
// at most once per quarter TTL so hot paths stay cheap.
func (r *FeeResolver) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < quoteIdleTTL/4 {
		return
	}
	r.lastSweep = now
	for k, qs := range r.sessions {
		if now.Sub(qs.touched) > quoteIdleTTL {
			delete(r.sessions, k)
		}
	}
}

// ResolveGeo runs a geolocation fee check for the given coordinates and
// returns the resulting quote. The stored session quote is updated only when
// no newer resolution started in the meantime.
func (r *FeeResolver) ResolveGeo(ctx context.Context, sessionID, businessID string, lat, lng float64) domain.DeliveryQuote {
	key := quoteKey(sessionID, businessID)

	r.mu.Lock()
	qs := r.session(key)
	qs.gen++
	myGen := qs.gen
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	feeCents, err := r.fees.QuoteFee(ctx, businessID, lat, lng)
	quote := classifyFeeResult(feeCents, err)

	r.mu.Lock()
	defer r.mu.Unlock()
	if qs.gen == myGen {
		qs.quote = quote
	}
	return quote
}

// classifyFeeResult maps a gateway answer onto a DeliveryQuote. Every non-Fee
// outcome clamps the fee to 0: the error state is the signal, and a stale fee
// must not silently carry over.
func classifyFeeResult(feeCents int64, err error) domain.DeliveryQuote {
	if err == nil {
		return domain.DeliveryQuote{Kind: domain.QuoteFee, FeeCents: feeCents}
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		switch ge.Code {
		case CodeOutsideDeliveryArea:
			return domain.DeliveryQuote{
				Kind:          domain.QuoteOutsideArea,
				MaxDistanceKm: parseDistance(ge.Message),
				Reason:        ge.Message,
			}
		case CodeDeliveryNotAvailable:
			return domain.DeliveryQuote{Kind: domain.QuoteUnavailable, Reason: ge.Message}
		}
	}
	return domain.DeliveryQuote{Kind: domain.QuoteFailed, Reason: err.Error()}
}

var distanceRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseDistance extracts the first number from a human-readable message like
// "delivery limited to 7.5 km". Best effort; 0 when nothing parseable.
func parseDistance(msg string) float64 {
	m := distanceRe.FindString(msg)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// SetPostalZone fetches carrier options for a postal zone. Switching country
// or city invalidates any prior carrier selection and resets the fee to the
// tenant default until a new selection is made.
func (r *FeeResolver) SetPostalZone(ctx context.Context, sessionID, businessID, countryCode, cityName string, defaultFeeCents int64) ([]domain.CarrierOption, domain.DeliveryQuote, error) {
	key := quoteKey(sessionID, businessID)

	r.mu.Lock()
	qs := r.session(key)
	qs.gen++
	myGen := qs.gen
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	carriers, err := r.postal.Carriers(ctx, businessID, countryCode, cityName)
	if err != nil {
		quote := domain.DeliveryQuote{Kind: domain.QuoteFailed, Reason: err.Error()}
		r.mu.Lock()
		if qs.gen == myGen {
			qs.quote = quote
		}
		r.mu.Unlock()
		return nil, quote, err
	}

	quote := domain.DeliveryQuote{Kind: domain.QuoteFee, FeeCents: defaultFeeCents}
	r.mu.Lock()
	defer r.mu.Unlock()
	if qs.gen == myGen {
		qs.countryCode = countryCode
		qs.cityName = cityName
		qs.carriers = carriers
		qs.carrier = ""
		qs.quote = quote
	}
	return carriers, quote, nil
}

// SelectCarrier picks one of the carriers fetched for the current zone.
func (r *FeeResolver) SelectCarrier(sessionID, businessID, carrierName string) (domain.DeliveryQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qs := r.session(quoteKey(sessionID, businessID))
	for _, c := range qs.carriers {
		if c.Name == carrierName {
			qs.carrier = c.Name
			qs.quote = domain.DeliveryQuote{Kind: domain.QuoteFee, FeeCents: c.PriceCents}
			return qs.quote, nil
		}
	}
	return qs.quote, ErrUnknownCarrier
}

// PostalSelection returns the current zone+carrier choice, if complete.
func (r *FeeResolver) PostalSelection(sessionID, businessID string) (domain.PostalSelection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qs := r.session(quoteKey(sessionID, businessID))
	if qs.countryCode == "" || qs.cityName == "" || qs.carrier == "" {
		return domain.PostalSelection{}, false
	}
	return domain.PostalSelection{CountryCode: qs.countryCode, CityName: qs.cityName, Carrier: qs.carrier}, true
}

// Current returns the latest stored quote for the session.
func (r *FeeResolver) Current(sessionID, businessID string) domain.DeliveryQuote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session(quoteKey(sessionID, businessID)).quote
}

// Reset clears any delivery error and restores the tenant base fee. Called
// when the customer switches fulfillment away from delivery; the assembler
// applies the fee only while delivery is the chosen mode.
func (r *FeeResolver) Reset(sessionID, businessID string, baseFeeCents int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qs := r.session(quoteKey(sessionID, businessID))
	qs.gen++ // invalidate any in-flight resolution
	qs.quote = domain.DeliveryQuote{Kind: domain.QuoteFee, FeeCents: baseFeeCents}
	qs.countryCode, qs.cityName, qs.carriers, qs.carrier = "", "", nil, ""
}
