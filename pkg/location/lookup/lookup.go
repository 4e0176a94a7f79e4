// Package lookup resolves pincodes and coordinates to administrative areas
// through public APIs.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrNotFound = errors.New("Pincode not found")

// localPincodes answers without a network call.
var localPincodes = map[string]Pincode{
	"563101": {Pincode: "563101", District: "Kolar", State: "Karnataka"},
}

type Pincode struct {
	Pincode  string `json:"pincode"`
	District string `json:"district"`
	State    string `json:"state"`
}

type Address struct {
	Village   string  `json:"village"`
	District  string  `json:"district"`
	State     string  `json:"state"`
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Client struct {
	pincodeURL string // pincode is appended
	geocodeURL string
	http       *http.Client
}

func New(pincodeURL, geocodeURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{pincodeURL: pincodeURL, geocodeURL: geocodeURL, http: hc}
}

// ValidPincode reports whether s is six digits.
func ValidPincode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "alpha-farm-app/1.0")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", req.URL.Host, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) Pincode(ctx context.Context, pin string) (*Pincode, error) {
	if p, ok := localPincodes[pin]; ok {
		return &p, nil
	}
	var body []struct {
		Status     string `json:"Status"`
		PostOffice []struct {
			District string `json:"District"`
			State    string `json:"State"`
		} `json:"PostOffice"`
	}
	if err := c.getJSON(ctx, c.pincodeURL+url.PathEscape(pin), &body); err != nil {
		return nil, fmt.Errorf("pincode lookup: %w", err)
	}
	if len(body) == 0 || body[0].Status != "Success" || len(body[0].PostOffice) == 0 {
		return nil, ErrNotFound
	}
	po := body[0].PostOffice[0]
	if po.District == "" && po.State == "" {
		return nil, ErrNotFound
	}
	return &Pincode{Pincode: pin, District: po.District, State: po.State}, nil
}

func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Address, error) {
	u, err := url.Parse(c.geocodeURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	u.RawQuery = q.Encode()

	var body struct {
		Address map[string]string `json:"address"`
	}
	if err := c.getJSON(ctx, u.String(), &body); err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := body.Address[k]; v != "" {
				return v
			}
		}
		return ""
	}
	return &Address{
		Village:   first("village", "hamlet", "suburb"),
		District:  first("district", "county"),
		State:     first("state"),
		Pincode:   first("postcode"),
		Latitude:  lat,
		Longitude: lng,
	}, nil
}
