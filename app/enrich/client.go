package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds one normalization round-trip.
const DefaultTimeout = 10 * time.Second

// Client calls the external text-normalization service that standardizes the
// free-text program and university fields. The pipeline treats the service
// as an opaque per-record function; any failure degrades the record to its
// unenriched fields instead of aborting the batch.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for the given service endpoint. An empty
// endpoint yields a disabled client whose Normalize is a pass-through.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

type normalizeRequest struct {
	Program    string `json:"program"`
	University string `json:"university"`
}

type normalizeResponse struct {
	Program    string `json:"llm-generated-program"`
	University string `json:"llm-generated-university"`
}

// Normalize returns the standardized program and university names. On any
// transport or decoding failure the raw inputs come back together with the
// error, so the caller can log it and load the record unenriched.
func (c *Client) Normalize(ctx context.Context, program, university string) (string, string, error) {
	if !c.Enabled() {
		return program, university, nil
	}

	body, err := json.Marshal(normalizeRequest{Program: program, University: university})
	if err != nil {
		return program, university, fmt.Errorf("marshal normalize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return program, university, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return program, university, fmt.Errorf("normalize call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return program, university, fmt.Errorf("normalization service error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded normalizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return program, university, fmt.Errorf("decode normalize response: %w", err)
	}

	// an empty service answer must not hollow out the record
	if decoded.Program == "" {
		decoded.Program = program
	}
	if decoded.University == "" {
		decoded.University = university
	}

	return decoded.Program, decoded.University, nil
}
