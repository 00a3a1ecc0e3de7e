package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
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

// searchItem mirrors the provider's wire format.
type searchItem struct {
	ID          string `json:"job_id"`
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	City        string `json:"job_city"`
	Country     string `json:"job_country"`
	Description string `json:"job_description"`
	ApplyLink   string `json:"job_apply_link"`
	IsRemote    bool   `json:"job_is_remote"`
	MinSalary   int    `json:"job_min_salary"`
	MaxSalary   int    `json:"job_max_salary"`
	PostedUnix  int64  `json:"job_posted_at_timestamp"`
}

type searchResponse struct {
	Data []searchItem `json:"data"`
}

func (c *Client) Search(ctx context.Context, query, location string) ([]Listing, error) {
	q := url.Values{}
	q.Set("query", strings.TrimSpace(query))
	if location != "" {
		q.Set("location", location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jobsearch: bad status: %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]Listing, 0, len(body.Data))
	for _, it := range body.Data {
		if it.Title == "" {
			continue
		}
		out = append(out, normalize(it))
	}
	return out, nil
}

func normalize(it searchItem) Listing {
	l := Listing{
		ExternalID:  it.ID,
		Title:       strings.TrimSpace(it.Title),
		Company:     strings.TrimSpace(it.Employer),
		Description: strings.TrimSpace(it.Description),
		URL:         it.ApplyLink,
		Remote:      it.IsRemote,
	}

	switch {
	case it.City != "" && it.Country != "":
		l.Location = it.City + ", " + it.Country
	case it.City != "":
		l.Location = it.City
	default:
		l.Location = it.Country
	}

	if it.MinSalary > 0 && it.MaxSalary > 0 {
		l.Salary = fmt.Sprintf("%d-%d", it.MinSalary, it.MaxSalary)
	} else if it.MinSalary > 0 {
		l.Salary = fmt.Sprintf("%d+", it.MinSalary)
	}

	if it.PostedUnix > 0 {
		t := time.Unix(it.PostedUnix, 0).UTC()
		l.PostedAt = &t
	}

	return l
}
