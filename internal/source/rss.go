package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	rssSourceName    = "rss"
	rssFetchTimeout  = 10 * time.Second
	rssUserAgent     = "Mozilla/5.0 (compatible; newsforge/1.0; +https://github.com/dtroshin/newsforge)"
	rssItemsPerFeed  = 5
	rssPublishedForm = "Jan 2, 2006"
)

// RSSSource fetches headlines from RSS/Atom feeds, taking the top few
// items of each feed. Feeds are fetched one at a time; a failing feed is
// reported and skipped, never fatal.
type RSSSource struct {
	feeds []string
}

// NewRSS creates an RSS/Atom source. At least one feed URL is required.
func NewRSS(feeds []string) (*RSSSource, error) {
	if len(feeds) == 0 {
		return nil, errors.New("rss: at least one feed URL is required")
	}
	return &RSSSource{feeds: feeds}, nil
}

func (rs *RSSSource) Name() string {
	return rssSourceName
}

func (rs *RSSSource) Fetch(ctx context.Context) ([]Headline, error) {
	var headlines []Headline
	var lastErr error

	for _, feedURL := range rs.feeds {
		items, err := fetchFeed(ctx, feedURL)
		if err != nil {
			fmt.Printf("  rss: %s: %v\n", feedURL, err)
			lastErr = err
			continue
		}
		headlines = append(headlines, items...)
	}

	if len(headlines) == 0 && lastErr != nil {
		return nil, fmt.Errorf("rss: no feed could be fetched: %w", lastErr)
	}
	return headlines, nil
}

// rssTransport injects a User-Agent header into every request.
type rssTransport struct {
	base http.RoundTripper
}

func (t *rssTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", rssUserAgent)
	return t.base.RoundTrip(req)
}

func fetchFeed(ctx context.Context, feedURL string) ([]Headline, error) {
	ctx, cancel := context.WithTimeout(ctx, rssFetchTimeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.Client = &http.Client{
		Timeout:   rssFetchTimeout,
		Transport: &rssTransport{base: http.DefaultTransport},
	}
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, err)
	}

	return headlinesFromFeed(feed, feedURL), nil
}

func headlinesFromFeed(feed *gofeed.Feed, feedURL string) []Headline {
	label := feedLabel(feed, feedURL)

	var headlines []Headline
	for _, item := range feed.Items {
		if len(headlines) == rssItemsPerFeed {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" || item.Link == "" {
			continue
		}
		headlines = append(headlines, Headline{
			Text:      title,
			Source:    label,
			Link:      item.Link,
			Published: itemPublished(item),
		})
	}
	return headlines
}

func feedLabel(feed *gofeed.Feed, feedURL string) string {
	if feed.Title != "" {
		return feed.Title
	}
	return feedURL
}

func itemPublished(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(rssPublishedForm)
	}
	if item.Published != "" {
		return item.Published
	}
	return "Unknown"
}
