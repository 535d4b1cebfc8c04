package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newTestClient(srv *httptest.Server) *BingClient {
	return &BingClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
		baseURL:    srv.URL,
	}
}

func TestFetchCategory(t *testing.T) {
	payload := map[string]interface{}{
		"value": []map[string]interface{}{
			{
				"name":          "Markets Rally on Earnings",
				"description":   "Stocks rose after a strong earnings week.",
				"url":           "https://example.com/markets-rally",
				"datePublished": "2026-08-30T11:02:00Z",
				"image": map[string]interface{}{
					"thumbnail": map[string]interface{}{
						"contentUrl": "https://example.com/thumb.jpg",
					},
				},
				"provider": []map[string]interface{}{
					{"name": "Example Wire"},
				},
			},
		},
	}

	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	articles, err := client.FetchCategory("business", 12)

	assert.Equal(t, nil, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, "Markets Rally on Earnings", a.Name)
	assert.Equal(t, "Stocks rose after a strong earnings week.", a.Description)
	assert.Equal(t, "https://example.com/markets-rally", a.URL)
	assert.Equal(t, "https://example.com/thumb.jpg", a.ImageURL)
	assert.Equal(t, "Example Wire", a.Provider)
}

func TestFetchTrending_FallsBackToWebSearchURL(t *testing.T) {
	payload := map[string]interface{}{
		"value": []map[string]interface{}{
			{
				"name":         "Trending Topic",
				"webSearchUrl": "https://example.com/search?q=topic",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	articles, err := client.FetchTrending()

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "https://example.com/search?q=topic", articles[0].URL)
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.FetchTop(20)

	assert.NotEqual(t, nil, err)
}

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"value": []map[string]interface{}{
				{"name": "Item", "url": "https://example.com/item"},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	articles, err := client.FetchAll()

	assert.Equal(t, nil, err)
	assert.Equal(t, len(Categories)+2, len(articles))
	assert.Equal(t, 1, len(articles["top"]))
	assert.Equal(t, 1, len(articles["trending"]))
	assert.Equal(t, 1, len(articles["business"]))
}
