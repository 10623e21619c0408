package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docshelf/internal/catalog/model"
)

// Client reads the authoritative document list from the catalog API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// rawDocument is the wire shape of one fetched record; the instants
// arrive as ISO-8601 strings under capitalized keys.
type rawDocument struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Contributors []model.Contributor `json:"contributors"`
	Version      model.Version       `json:"version"`
	Attachments  []string            `json:"attachments"`
	CreatedAt    time.Time           `json:"CreatedAt"`
	UpdatedAt    time.Time           `json:"UpdatedAt"`
}

// Documents fetches GET {base}/documents. Any non-2xx status is an error.
func (c *Client) Documents(ctx context.Context) ([]model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/documents", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch documents: unexpected status %d", resp.StatusCode)
	}

	var raw []rawDocument
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]model.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, model.Document{
			ID:           r.ID,
			Title:        r.Title,
			Contributors: r.Contributors,
			Version:      r.Version,
			Attachments:  r.Attachments,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return docs, nil
}
