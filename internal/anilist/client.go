package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AniList GraphQL API endpoint (public)
const defaultBaseURL = "https://graphql.anilist.co"

// batchSize is AniList's page-size ceiling; status lookups never send
// more ids than fit one page.
const batchSize = 50

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 12 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

// Media mirrors the AniList media selection used across this service.
type Media struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
		Medium     string `json:"medium"`
	} `json:"coverImage"`
	SiteURL        string `json:"siteUrl"`
	Status         string `json:"status"`
	AiringSchedule struct {
		Edges []struct {
			Node struct {
				AiringAt        int64 `json:"airingAt"`
				TimeUntilAiring int64 `json:"timeUntilAiring"`
				Episode         int   `json:"episode"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"airingSchedule"`
}

const searchQuery = `
query ($search: String) {
  Page {
    media(search: $search, type: ANIME) {
      id
      title { romaji english native }
      coverImage { extraLarge large medium }
      siteUrl
      status
      airingSchedule {
        edges {
          node { airingAt timeUntilAiring episode }
        }
      }
    }
  }
}`

const mediaByIDQuery = `
query ($id: Int) {
  Media(id: $id, type: ANIME) {
    id
    title { romaji english native }
    coverImage { extraLarge large medium }
    siteUrl
    status
    airingSchedule {
      edges {
        node { airingAt timeUntilAiring episode }
      }
    }
  }
}`

const statusQuery = `
query ($ids: [Int], $perPage: Int) {
  Page(perPage: $perPage) {
    media(id_in: $ids, type: ANIME) {
      id
      status
    }
  }
}`

func (c *Client) post(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("anilist: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("anilist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("anilist: request: %w", err)
	}

	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("anilist: status %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("anilist: decode: %w", err)
	}
	return nil
}

// FetchStatuses resolves the airing status for the given show ids in
// batches of 50. A failed batch contributes nothing and does not
// affect the other batches; ids AniList does not know are simply
// absent from the result. No request is made for an empty id list.
func (c *Client) FetchStatuses(ctx context.Context, ids []int) map[int]string {
	out := make(map[int]string, len(ids))

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		var resp struct {
			Data struct {
				Page struct {
					Media []struct {
						ID     int    `json:"id"`
						Status string `json:"status"`
					} `json:"media"`
				} `json:"Page"`
			} `json:"data"`
		}
		if err := c.post(ctx, statusQuery, map[string]any{"ids": batch, "perPage": batchSize}, &resp); err != nil {
			log.Printf("[anilist] status batch of %d: %v", len(batch), err)
			continue
		}

		for _, m := range resp.Data.Page.Media {
			if m.Status != "" {
				out[m.ID] = m.Status
			}
		}
	}
	return out
}

// Search looks up anime by title.
func (c *Client) Search(ctx context.Context, title string) ([]Media, error) {
	var resp struct {
		Data struct {
			Page struct {
				Media []Media `json:"media"`
			} `json:"Page"`
		} `json:"data"`
	}
	if err := c.post(ctx, searchQuery, map[string]any{"search": title}, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Page.Media, nil
}

// FetchByID fetches a single anime by its AniList id.
func (c *Client) FetchByID(ctx context.Context, id int) (*Media, error) {
	var resp struct {
		Data struct {
			Media *Media `json:"Media"`
		} `json:"data"`
	}
	if err := c.post(ctx, mediaByIDQuery, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Media == nil {
		return nil, fmt.Errorf("anilist: no media for id %d", id)
	}
	return resp.Data.Media, nil
}
