package beautify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type formatRequest struct {
	Content  string `json:"content"`
	Template string `json:"template"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
}

func (c *Client) Format(ctx context.Context, rawText, template string) (string, error) {
	body, err := json.Marshal(formatRequest{Content: rawText, Template: template})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/format", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("beautify: bad status: %s", resp.Status)
	}

	var out formatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Formatted == "" {
		return "", fmt.Errorf("beautify: empty formatted content")
	}
	return out.Formatted, nil
}
