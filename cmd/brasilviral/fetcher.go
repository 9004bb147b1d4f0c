// cmd/brasilviral/fetcher.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

var (
	junkPhrases = []string{
		"clique aqui",
		"acesse",
		"edição",
		"veja também",
		"compartilhe",
		"leia mais",
		"publicidade",
	}
	timestampLine = regexp.MustCompile(`^\d{1,2}h`)
	skipLinkParts = []string{
		"facebook.com", "twitter.com", "instagram.com", "youtube.com",
		"whatsapp.com", "login", "cadastro", "assine", "newsletter",
		"javascript:", "mailto:", "#",
	}
)

type topicsProvider interface {
	Topics(ctx context.Context) []string
}

// NewsAgent scrapes the configured sources, scores candidates against
// trending topics and filters out already published stories.
type NewsAgent struct {
	client   *http.Client
	limiter  *rate.Limiter
	cache    *NewsCache
	trending topicsProvider
	sources  map[string][]string
}

// NewNewsAgent wires an agent over a link cache and source list.
func NewNewsAgent(cache *NewsCache, sources map[string][]string) *NewsAgent {
	return &NewsAgent{
		client:   &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(ScrapeRequestsPerS), 1),
		cache:    cache,
		trending: NewTrendingProvider(),
		sources:  sources,
	}
}

// FetchCategory gathers up to count fresh, non-duplicate articles for a
// category, sorted by viral score.
func (a *NewsAgent) FetchCategory(ctx context.Context, category string, count int, published []PublishedRecord) ([]Article, error) {
	sources, ok := a.sources[category]
	if !ok {
		return nil, NewValidationError("FETCH_001", fmt.Sprintf("no sources for category %q", category))
	}

	topics := a.trending.Topics(ctx)

	var articles []Article
	for _, src := range sources {
		found, err := a.scrapeSource(ctx, src, category, topics)
		if err != nil {
			GetLogger().Warning("Source %s failed: %v", src, err)
			continue
		}
		articles = append(articles, found...)
	}

	var fresh []Article
	for _, art := range articles {
		if IsAlreadyPublished(art, published) {
			GetLogger().Debug("Skipping duplicate: %s", art.Title)
			continue
		}
		fresh = append(fresh, art)
	}

	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].ViralScore > fresh[j].ViralScore
	})
	if len(fresh) > count {
		fresh = fresh[:count]
	}
	if len(fresh) == 0 {
		return nil, NewNotFoundError("FETCH_002", fmt.Sprintf("no fresh articles for %s", category))
	}
	return fresh, nil
}

// scrapeSource crawls a homepage, follows article links on the same
// domain and extracts the stories behind them.
func (a *NewsAgent) scrapeSource(ctx context.Context, sourceURL, category string, topics []string) ([]Article, error) {
	doc, err := a.fetchDocument(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, NewValidationError("FETCH_001", fmt.Sprintf("bad source url %s: %v", sourceURL, err))
	}

	links := a.collectLinks(doc, base)

	var articles []Article
	for _, link := range links {
		if len(articles) >= MaxLinksPerSource {
			break
		}
		if art, ok := a.cache.Get(link); ok {
			articles = append(articles, art)
			continue
		}

		art, err := a.extractArticle(ctx, link, category, topics)
		if err != nil {
			GetLogger().Debug("Skipping %s: %v", link, err)
			continue
		}
		a.cache.Put(link, art)
		articles = append(articles, art)
	}

	if err := a.cache.Save(); err != nil {
		GetLogger().Warning("Could not save news cache: %v", err)
	}
	return articles, nil
}

// collectLinks returns deduplicated same-domain article links.
func (a *NewsAgent) collectLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		for _, part := range skipLinkParts {
			if strings.Contains(strings.ToLower(href), part) {
				return
			}
		}

		u, err := base.Parse(href)
		if err != nil {
			return
		}
		if u.Host != base.Host {
			return
		}
		u.Fragment = ""
		abs := u.String()
		if abs == base.String() || seen[abs] {
			return
		}
		// Homepage and section links carry little path; articles do.
		if len(strings.Trim(u.Path, "/")) < 10 {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})
	return links
}

// extractArticle downloads a page and pulls title plus body paragraphs.
func (a *NewsAgent) extractArticle(ctx context.Context, link, category string, topics []string) (Article, error) {
	doc, err := a.fetchDocument(ctx, link)
	if err != nil {
		return Article{}, err
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		return Article{}, NewNotFoundError("FETCH_003", "page has no title")
	}

	content := extractParagraphs(doc)
	if wordCount(content) < MinContentWords {
		// Cluttered layouts defeat the selector pass; let readability try.
		if text, ok := a.readabilityFallback(link); ok {
			content = text
		}
	}
	if wordCount(content) < MinContentWords {
		return Article{}, NewNotFoundError("FETCH_003", fmt.Sprintf("content too short (%d words)", wordCount(content)))
	}

	return Article{
		Title:      title,
		Content:    content,
		SourceURL:  link,
		Category:   category,
		ViralScore: CalculateViralScore(title, content, topics),
		Timestamp:  time.Now(),
	}, nil
}

// extractParagraphs joins the page's usable paragraphs, dropping boiler
// plate lines and anything shorter than MinParagraphLen characters.
func extractParagraphs(doc *goquery.Document) string {
	var paras []string
	doc.Find("article p, .article-content p, .post-content p, .content p, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !usableParagraph(text) {
			return true
		}
		for _, p := range paras {
			if p == text {
				return true
			}
		}
		paras = append(paras, text)
		return len(paras) < MaxParagraphs
	})
	return strings.Join(paras, "\n\n")
}

func usableParagraph(text string) bool {
	if len(text) < MinParagraphLen {
		return false
	}
	if timestampLine.MatchString(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, junk := range junkPhrases {
		if strings.Contains(lower, junk) {
			return false
		}
	}
	return true
}

func (a *NewsAgent) readabilityFallback(link string) (string, bool) {
	article, err := readability.FromURL(link, DefaultTimeout)
	if err != nil {
		GetLogger().Debug("Readability failed for %s: %v", link, err)
		return "", false
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", false
	}
	var paras []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if usableParagraph(line) {
			paras = append(paras, line)
			if len(paras) >= MaxParagraphs {
				break
			}
		}
	}
	return strings.Join(paras, "\n\n"), len(paras) > 0
}

// fetchDocument gets a URL respecting the rate limit and decodes the
// body regardless of charset, which matters for ISO-8859-1 sites.
func (a *NewsAgent) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, NewTimeoutError("FETCH_002", "rate limiter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, NewValidationError("FETCH_001", fmt.Sprintf("bad url %s: %v", pageURL, err))
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, NewFetchError("FETCH_002", fmt.Sprintf("request to %s failed", pageURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewFetchError("FETCH_002", fmt.Sprintf("%s returned status %d", pageURL, resp.StatusCode), nil)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, NewFetchError("FETCH_003", fmt.Sprintf("charset detection for %s", pageURL), err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, NewFetchError("FETCH_003", fmt.Sprintf("parse %s", pageURL), err)
	}
	return doc, nil
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
