// Package cmsclient talks to the association's headless content store
// (a Sanity-style HTTP API): declarative read queries with bound
// parameters, plus the one patch mutation the site needs for RSVP counts.
package cmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/metrics"
)

const requestTimeout = 10 * time.Second

// Client wraps the content store's HTTP API
type Client struct {
	baseURL    string
	dataset    string
	token      string // write token, needed for mutations only
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a content store client. baseURL is the API root,
// e.g. https://<project>.api.sanity.io/v2021-10-21.
func NewClient(baseURL, dataset, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		dataset: dataset,
		token:   token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// queryResponse is the store's read-query envelope
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	MS     float64         `json:"ms"`
}

// Query runs a declarative read query with bound parameters and decodes
// the result into out.
func (c *Client) Query(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode query param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build query request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCMSQueryDuration("query", "failed", time.Since(start))
		return fmt.Errorf("content store query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordCMSQueryDuration("query", "failed", time.Since(start))
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("content store query returned %d: %s", resp.StatusCode, string(body))
	}
	metrics.RecordCMSQueryDuration("query", "success", time.Since(start))

	var envelope queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode query response: %w", err)
	}

	c.logger.Debug("content store query completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("store_ms", envelope.MS))

	if out == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode query result: %w", err)
	}
	return nil
}

// mutateRequest is the store's mutation envelope
type mutateRequest struct {
	Mutations []interface{} `json:"mutations"`
}

type mutateResponse struct {
	Results []struct {
		ID       string          `json:"id"`
		Document json.RawMessage `json:"document"`
	} `json:"results"`
}

// Mutate submits mutations and returns the resulting documents when the
// store is asked to echo them back.
func (c *Client) Mutate(ctx context.Context, mutations []interface{}, returnDocuments bool) (*mutateResponse, error) {
	body, err := json.Marshal(mutateRequest{Mutations: mutations})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mutations: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnDocuments=%t", c.baseURL, c.dataset, returnDocuments)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCMSQueryDuration("mutate", "failed", time.Since(start))
		return nil, fmt.Errorf("content store mutation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordCMSQueryDuration("mutate", "failed", time.Since(start))
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("content store mutation returned %d: %s", resp.StatusCode, string(respBody))
	}
	metrics.RecordCMSQueryDuration("mutate", "success", time.Since(start))

	var result mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode mutation response: %w", err)
	}
	return &result, nil
}
