package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// WebSource scrapes store/price pairs from an HTML price-feed page.
// On any failure or an empty parse it falls back to the mock generator, so
// callers always get a usable comparison.
type WebSource struct {
	feedURL    string
	httpClient *http.Client
	fallback   Source
}

// NewWebSource creates a price source backed by an HTML feed at feedURL.
func NewWebSource(feedURL string, fallback Source) *WebSource {
	return &WebSource{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		fallback: fallback,
	}
}

// Compare fetches `<feedURL>?item=<name>` and extracts one comparison per
// `.price-row` element (`.store` name, `.price` dollar amount).
func (w *WebSource) Compare(ctx context.Context, item string) ([]Comparison, error) {
	comparisons, err := w.fetch(ctx, item)
	if err != nil || len(comparisons) == 0 {
		slog.Warn("price feed unavailable, using mock prices", "item", item, "error", err)
		return w.fallback.Compare(ctx, item)
	}

	sort.Slice(comparisons, func(i, j int) bool { return comparisons[i].Price < comparisons[j].Price })
	return comparisons, nil
}

func (w *WebSource) fetch(ctx context.Context, item string) ([]Comparison, error) {
	req, err := http.NewRequestWithContext(ctx, "GET",
		w.feedURL+"?item="+url.QueryEscape(item), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create price feed request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed error: status=%d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price feed HTML: %w", err)
	}

	// Strip scripts and styles before reading text content.
	doc.Find("script, style").Remove()

	var comparisons []Comparison
	doc.Find(".price-row").Each(func(_ int, s *goquery.Selection) {
		store := strings.TrimSpace(s.Find(".store").Text())
		priceText := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s.Find(".price").Text()), "$"))
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil || store == "" || price <= 0 {
			return
		}
		comparisons = append(comparisons, Comparison{Store: store, Price: round2(price)})
	})
	return comparisons, nil
}
