package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is one snippet from a live web lookup.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher answers real-time questions the document base cannot.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// DuckDuckGoClient queries the DuckDuckGo Instant Answer API. No API key,
// no per-result web scraping, abstracts and related topics only.
type DuckDuckGoClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Searcher = &DuckDuckGoClient{}

func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		BaseURL: "https://api.duckduckgo.com",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (c *DuckDuckGoClient) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		c.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo: status %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.Unmarshal(bodyBytes, &answer); err != nil {
		return nil, fmt.Errorf("duckduckgo: decode: %w", err)
	}

	var results []Result
	if answer.Answer != "" {
		results = append(results, Result{Title: answer.Heading, Snippet: answer.Answer})
	}
	if answer.AbstractText != "" {
		results = append(results, Result{
			Title:   answer.Heading,
			Snippet: answer.AbstractText,
			URL:     answer.AbstractURL,
		})
	}
	for _, topic := range answer.RelatedTopics {
		if len(results) >= 3 {
			break
		}
		if strings.TrimSpace(topic.Text) == "" {
			continue
		}
		results = append(results, Result{Snippet: topic.Text, URL: topic.FirstURL})
	}

	return results, nil
}
