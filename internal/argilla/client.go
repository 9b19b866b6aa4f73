package argilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"

	"github.com/agentuity/go-common/logger"
)

var (
	// Version is set from the main package at startup.
	Version = "dev"
)

// Client talks to an Argilla server's HTTP API.
type Client struct {
	ctx     context.Context
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// APIError carries the request context of a failed Argilla API call.
type APIError struct {
	URL      string
	Method   string
	Status   int
	Body     string
	TheError error
}

func (e *APIError) Error() string {
	if e == nil || e.TheError == nil {
		return ""
	}
	return e.TheError.Error()
}

func NewAPIError(url, method string, status int, body string, err error) *APIError {
	return &APIError{
		URL:      url,
		Method:   method,
		Status:   status,
		Body:     body,
		TheError: err,
	}
}

func NewClient(ctx context.Context, logger logger.Logger, baseURL, apiKey string) *Client {
	return &Client{
		ctx:     ctx,
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  http.DefaultClient,
	}
}

type apiErrorResponse struct {
	Detail string `json:"detail"`
}

func UserAgent() string {
	version := Version
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				version = setting.Value
			}
		}
	}
	return "Ultralabel CLI/" + version
}

// Do sends one JSON request against the Argilla API.
func (c *Client) Do(method, path string, payload interface{}, response interface{}) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return NewAPIError(c.baseURL, method, 0, "", fmt.Errorf("error parsing base url: %w", err))
	}
	u.Path = path

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return NewAPIError(u.String(), method, 0, "", fmt.Errorf("error marshalling payload: %w", err))
		}
	}
	c.logger.Trace("sending request: %s %s", method, u.String())

	req, err := http.NewRequestWithContext(c.ctx, method, u.String(), bytes.NewBuffer(body))
	if err != nil {
		return NewAPIError(u.String(), method, 0, "", fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent())
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Argilla-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return NewAPIError(u.String(), method, 0, "", fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()
	c.logger.Debug("response status: %s", resp.Status)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewAPIError(u.String(), method, 0, "", fmt.Errorf("error reading response body: %w", err))
	}

	if resp.StatusCode > 299 {
		if strings.Contains(resp.Header.Get("content-type"), "application/json") {
			var apiResponse apiErrorResponse
			if err := json.Unmarshal(respBody, &apiResponse); err == nil && apiResponse.Detail != "" {
				return NewAPIError(u.String(), method, resp.StatusCode, string(respBody), fmt.Errorf("%s", apiResponse.Detail))
			}
		}
		return NewAPIError(u.String(), method, resp.StatusCode, string(respBody), fmt.Errorf("request failed with status (%s)", resp.Status))
	}

	if response != nil {
		if err := json.Unmarshal(respBody, &response); err != nil {
			return NewAPIError(u.String(), method, resp.StatusCode, string(respBody), fmt.Errorf("error JSON decoding response: %w", err))
		}
	}
	return nil
}

type datasetResponse struct {
	ID string `json:"id"`
}

type recordsRequest struct {
	Items []Record `json:"items"`
}

// PushRecords uploads records to a dataset on the Argilla server in batches.
func (c *Client) PushRecords(dataset string, records []Record) error {
	var ds datasetResponse
	if err := c.Do("GET", "/api/v1/datasets/"+dataset, nil, &ds); err != nil {
		return fmt.Errorf("failed to resolve dataset %q: %w", dataset, err)
	}
	const batchSize = 100
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		payload := recordsRequest{Items: records[start:end]}
		if err := c.Do("POST", fmt.Sprintf("/api/v1/datasets/%s/records", ds.ID), payload, nil); err != nil {
			return fmt.Errorf("failed to push records %d-%d: %w", start, end, err)
		}
		c.logger.Debug("pushed %d records to dataset %s", end-start, dataset)
	}
	return nil
}
