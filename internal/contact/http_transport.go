package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPTransport posts the form as JSON to the submission endpoint.
type HTTPTransport struct {
	URL    string
	Client *http.Client
}

func NewHTTPTransport(url string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransport) Send(ctx context.Context, fields Fields) (*Response, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post submission: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	resp := &Response{StatusCode: res.StatusCode}
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if err := json.Unmarshal(raw, &resp.Result); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return resp, nil
	}

	var failure Failure
	if err := json.Unmarshal(raw, &failure); err != nil {
		return nil, fmt.Errorf("decode error response (status %d): %w", res.StatusCode, err)
	}
	resp.Failure = &failure
	return resp, nil
}
