// Package scrape pulls article metadata and body text out of news pages.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const DefaultMaxBytes = 1500000

var (
	ErrDomainNotAllowed = errors.New("domain not allowed")
	ErrBadURL           = errors.New("bad url")
)

type Page struct {
	Title    string
	Summary  string
	Content  string
	ImageURL string
}

// Fetcher downloads pages from an allow-list of hosts. A host matches an
// entry equal to it or to one of its parent domains.
type Fetcher struct {
	client   *http.Client
	allow    []string
	maxBytes int64
}

func NewFetcher(allowed []string, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	allow := make([]string, 0, len(allowed))
	for _, h := range allowed {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow = append(allow, h)
		}
	}
	return &Fetcher{client: client, allow: allow, maxBytes: DefaultMaxBytes}
}

func (f *Fetcher) Allowed(host string) bool {
	host = strings.ToLower(host)
	for _, d := range f.allow {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func (f *Fetcher) Fetch(ctx context.Context, raw string) (*Page, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrBadURL
	}
	if !f.Allowed(u.Hostname()) {
		return nil, ErrDomainNotAllowed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "alpha-farm-app/1.0")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u.Host, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, err
	}
	return Parse(b, resp.Header.Get("Content-Type"))
}

// Parse extracts a Page from an html or plain text body.
func Parse(b []byte, contentType string) (*Page, error) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "text/plain"):
		text := cleanWhitespace(string(b))
		return &Page{Title: firstLine(text), Summary: firstLine(text), Content: text}, nil
	case strings.Contains(ct, "text/html"), ct == "":
	default:
		return nil, fmt.Errorf("unsupported content-type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	meta := func(keys ...string) string {
		for _, k := range keys {
			sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, k, k)
			if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	p := &Page{
		Title:    meta("og:title", "twitter:title"),
		Summary:  meta("og:description", "description"),
		ImageURL: meta("og:image", "twitter:image"),
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	// main content: article/main headers, paragraphs and list items
	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	p.Content = cleanWhitespace(strings.Join(parts, "\n"))
	if p.Summary == "" {
		p.Summary = strings.TrimSpace(sel.Find("p").First().Text())
	}
	return p, nil
}

var wsRX = regexp.MustCompile(`\s+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(wsRX.ReplaceAllString(s, "\n"))
}

func firstLine(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if len(line) > 120 {
		line = line[:120]
	}
	return line
}
