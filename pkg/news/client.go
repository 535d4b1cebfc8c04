package news

import "time"

type Article struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	ImageURL      string `json:"image_url,omitempty"`
	Provider      string `json:"provider,omitempty"`
	DatePublished string `json:"date_published,omitempty"`
}

// Document is the singleton cache overwritten wholesale on each refresh.
type Document struct {
	Categories  map[string][]Article `json:"categories"`
	LastUpdated time.Time            `json:"last_updated"`
}

type Fetcher interface {
	FetchAll() (map[string][]Article, error)
}
