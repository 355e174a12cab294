package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/ports"
)

// Browser-like identity reduces trivial bot blocking on public pages.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/117.0.0.0 Safari/537.36"

// Elements whose subtrees carry no summarizable content.
const strippedElements = "script, style, img, input, nav, footer, header"

// Scraper fetches one page and reduces it to title plus cleaned text.
type Scraper struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.Scraper = (*Scraper)(nil)

// New wires an HTTP client; the default applies a 10 second timeout.
func New(client *http.Client, logger *slog.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Scraper{client: client, logger: logger}
}

// Scrape performs one GET and cleans the response. All failures are folded
// into the returned result; the pipeline decides whether to continue.
func (s *Scraper) Scrape(ctx context.Context, target string) domain.ScrapeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return s.failure(target, "Network error", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return s.failure(target, "Network error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return s.failure(target, "Network error", fmt.Errorf("server returned %s", resp.Status))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return s.failure(target, "Parsing error", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = domain.NoTitleFallback
	}

	doc.Find(strippedElements).Remove()

	return domain.ScrapeResult{
		Title:  title,
		Text:   extractText(doc),
		URL:    target,
		Status: domain.ScrapeSuccess,
	}
}

func (s *Scraper) failure(target, kind string, err error) domain.ScrapeResult {
	if s.logger != nil {
		s.logger.Debug("scrape failed", "url", target, "kind", kind, "error", err)
	}
	return domain.ScrapeResult{
		URL:    target,
		Status: domain.ScrapeError,
		Error:  fmt.Sprintf("%s: %v", kind, err),
	}
}

// extractText serializes the remaining body text nodes in document order,
// one trimmed non-empty line each. Head content (title, meta) stays out of
// the text.
func extractText(doc *goquery.Document) string {
	nodes := doc.Find("body").Nodes
	if len(nodes) == 0 {
		nodes = doc.Selection.Nodes
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, line := range strings.Split(n.Data, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, node := range nodes {
		walk(node)
	}

	return strings.Join(lines, "\n")
}
