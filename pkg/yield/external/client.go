// Package external queries a third-party yield API behind a circuit breaker.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// ErrNoData means the API answered but had no figure for the query.
var ErrNoData = errors.New("yield api: no data")

type Query struct {
	Crop           string
	District       string
	State          string
	SoilType       string
	Season         string
	IrrigationType string
}

type response struct {
	YieldPerAcre *float64 `json:"yield_quintals_per_acre"`
	Source       string   `json:"source"`
}

type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

// New returns a client that stops calling the API for openFor after fails
// consecutive failures.
func New(baseURL string, hc *http.Client, fails uint32, openFor time.Duration) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "yield-api",
		Timeout: openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= fails
		},
		// an empty answer is not an outage
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, ErrNoData) },
	})
	return &Client{baseURL: baseURL, http: hc, cb: cb}
}

// YieldPerAcre returns quintals per acre and the source label reported by
// the API (the base URL when it reports none).
func (c *Client) YieldPerAcre(ctx context.Context, q Query) (float64, string, error) {
	out, err := c.cb.Execute(func() (any, error) { return c.fetch(ctx, q) })
	if err != nil {
		return 0, "", err
	}
	r := out.(*response)
	src := r.Source
	if src == "" {
		src = c.baseURL
	}
	return *r.YieldPerAcre, src, nil
}

func (c *Client) fetch(ctx context.Context, q Query) (*response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("yield api url: %w", err)
	}
	v := u.Query()
	v.Set("crop", q.Crop)
	v.Set("district", q.District)
	v.Set("state", q.State)
	v.Set("soil_type", q.SoilType)
	v.Set("season", q.Season)
	v.Set("irrigation_type", q.IrrigationType)
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yield api: status %d", resp.StatusCode)
	}
	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("yield api: decode: %w", err)
	}
	if r.YieldPerAcre == nil {
		return nil, ErrNoData
	}
	return &r, nil
}

func (c *Client) State() gobreaker.State { return c.cb.State() }
