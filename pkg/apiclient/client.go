// Package apiclient talks to the farmer API on behalf of the planning CLI.
// It backs draft.Session as both yield estimator and plan submitter.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"alphafarm/entities"
	"alphafarm/pkg/draft"
	"alphafarm/pkg/plan/types"
)

// APIError is a non-2xx answer. Detail is the server's message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc}
}

var (
	_ draft.Estimator = (*Client)(nil)
	_ draft.Submitter = (*Client)(nil)
)

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Detail: e.Detail}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SendOTP asks for a code. In dev mode the server echoes it back.
func (c *Client) SendOTP(ctx context.Context, phone, mode string) (string, error) {
	var out struct {
		OTP string `json:"otp"`
	}
	err := c.do(ctx, http.MethodPost, "/farmer/send-otp", map[string]string{"phone": phone, "mode": mode}, &out)
	return out.OTP, err
}

// VerifyOTP exchanges a code for a token and keeps it on the client.
func (c *Client) VerifyOTP(ctx context.Context, phone, code, name, mode string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"phone": phone, "otp": code, "name": name, "mode": mode}
	if err := c.do(ctx, http.MethodPost, "/farmer/verify-otp", in, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

func (c *Client) EstimateYield(ctx context.Context, q draft.YieldQuery) (float64, error) {
	v := url.Values{}
	v.Set("crop", q.Crop)
	v.Set("acres", strconv.FormatFloat(q.Acres, 'f', -1, 64))
	for k, s := range map[string]string{
		"soil_type":       q.SoilType,
		"season":          q.Season,
		"irrigation_type": q.IrrigationType,
		"district":        q.District,
		"state":           q.State,
	} {
		if s != "" {
			v.Set(k, s)
		}
	}
	var est types.YieldEstimate
	if err := c.do(ctx, http.MethodGet, "/farmer/yield-estimate?"+v.Encode(), nil, &est); err != nil {
		return 0, err
	}
	return est.ExpectedYield, nil
}

func (c *Client) SubmitPlan(ctx context.Context, req types.CreatePlanRequest) error {
	return c.do(ctx, http.MethodPost, "/farmer/crop-plan", req, nil)
}

// Lands returns the farmer's approved lands with the acreage already taken
// by pending or approved plans.
func (c *Client) Lands(ctx context.Context) ([]draft.LandInfo, error) {
	var (
		lands []entities.Land
		plans []entities.CropPlan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/farmer/land?only_approved=true", nil, &lands) })
	g.Go(func() error { return c.do(gctx, http.MethodGet, "/farmer/crop-plan", nil, &plans) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	committed := map[uint]float64{}
	for _, p := range plans {
		if p.ApprovalStatus == entities.StatusRejected {
			continue
		}
		committed[p.LandID] += p.TotalAcresAllocated
	}
	out := make([]draft.LandInfo, 0, len(lands))
	for _, l := range lands {
		out = append(out, draft.LandInfo{
			ID:            l.LandID,
			TotalArea:     l.LandArea,
			CommittedArea: committed[l.LandID],
			SoilType:      l.SoilType,
			District:      l.District,
			State:         l.State,
		})
	}
	return out, nil
}
