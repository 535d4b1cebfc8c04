package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var Categories = []string{
	"business", "entertainment", "technology", "government",
	"sports", "world", "video", "finance",
}

type BingClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	// pause between category calls, the API rate-limits bursts
	pause time.Duration
}

func NewBingClient(apiKey string) *BingClient {
	return &BingClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.bing.microsoft.com/v7.0",
		pause:      500 * time.Millisecond,
	}
}

func (c *BingClient) FetchAll() (map[string][]Article, error) {
	articles := make(map[string][]Article, len(Categories)+2)

	for _, category := range Categories {
		fetched, err := c.FetchCategory(category, 12)
		if err != nil {
			return nil, err
		}
		articles[category] = fetched
		time.Sleep(c.pause)
	}

	top, err := c.FetchTop(20)
	if err != nil {
		return nil, err
	}
	articles["top"] = top

	trending, err := c.FetchTrending()
	if err != nil {
		return nil, err
	}
	articles["trending"] = trending

	return articles, nil
}

func (c *BingClient) FetchCategory(category string, count int) ([]Article, error) {
	endpoint := fmt.Sprintf(
		"%s/news/search?q=%s&count=%d&originalImg=true",
		c.baseURL, url.QueryEscape(category), count,
	)
	return c.fetch(endpoint, category)
}

func (c *BingClient) FetchTop(count int) ([]Article, error) {
	endpoint := fmt.Sprintf("%s/news?mkt=en-us&count=%d", c.baseURL, count)
	return c.fetch(endpoint, "top")
}

func (c *BingClient) FetchTrending() ([]Article, error) {
	endpoint := c.baseURL + "/news/trendingtopics"
	return c.fetch(endpoint, "trending")
}

func (c *BingClient) fetch(endpoint, label string) ([]Article, error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("news %s request: %w", label, err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news %s fetch: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news %s fetch: unexpected status %d", label, resp.StatusCode)
	}

	var raw bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("news %s decode: %w", label, err)
	}

	articles := make([]Article, 0, len(raw.Value))
	for _, item := range raw.Value {
		a := Article{
			Name:          item.Name,
			Description:   item.Description,
			URL:           item.URL,
			DatePublished: item.DatePublished,
			ImageURL:      item.Image.Thumbnail.ContentURL,
		}
		if len(item.Provider) > 0 {
			a.Provider = item.Provider[0].Name
		}
		if a.URL == "" {
			a.URL = item.WebSearchURL
		}
		articles = append(articles, a)
	}

	return articles, nil
}

type bingResponse struct {
	Value []bingItem `json:"value"`
}

type bingItem struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	URL           string         `json:"url"`
	WebSearchURL  string         `json:"webSearchUrl"`
	DatePublished string         `json:"datePublished"`
	Image         bingImage      `json:"image"`
	Provider      []bingProvider `json:"provider"`
}

type bingImage struct {
	Thumbnail bingThumbnail `json:"thumbnail"`
}

type bingThumbnail struct {
	ContentURL string `json:"contentUrl"`
}

type bingProvider struct {
	Name string `json:"name"`
}
