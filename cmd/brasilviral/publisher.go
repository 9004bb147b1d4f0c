// cmd/brasilviral/publisher.go
package main

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const postDateLayout = "02/01/2006 às 15:04"

var nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
var slugSpaces = regexp.MustCompile(`\s+`)

const defaultArticleTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - BrasilViral</title>
<meta name="description" content="{{.Description}}">
<link rel="stylesheet" href="/css/style.css">
</head>
<body>
<header class="site-header">
  <h1><a href="/">BrasilViral</a></h1>
  <nav>
    <a href="/categorias/esportes/">Esportes</a>
    <a href="/categorias/economia/">Economia</a>
    <a href="/categorias/politica/">Política</a>
    <a href="/categorias/tecnologia/">Tecnologia</a>
    <a href="/categorias/entretenimento/">Entretenimento</a>
    <a href="/categorias/curiosidades/">Curiosidades</a>
  </nav>
</header>
<main class="article-page">
  <article>
    <span class="article-category">{{.CategoryName}}</span>
    <h1>{{.Title}}</h1>
    <p class="post-date">{{.PostDate}}</p>
    <div class="article-featured-image">
      <img src="{{.ImageURL}}" alt="{{.Title}}">
    </div>
    <div class="article-content">
{{.Content}}
    </div>
  </article>
</main>
<footer class="site-footer">
  <p>&copy; {{.Year}} BrasilViral. Conteúdo gerado automaticamente.</p>
</footer>
</body>
</html>
`

// Publisher renders rewritten articles to HTML files and records them
// in the published registry.
type Publisher struct {
	baseDir  string
	tmpl     *template.Template
	registry *Registry
}

// NewPublisher loads the article template, preferring an on-disk
// override at scripts/template_noticia.html.
func NewPublisher(baseDir string, registry *Registry) (*Publisher, error) {
	tmplText := defaultArticleTemplate
	override := filepath.Join(baseDir, "scripts", "template_noticia.html")
	if data, err := os.ReadFile(override); err == nil {
		tmplText = string(data)
	}

	tmpl, err := template.New("article").Parse(tmplText)
	if err != nil {
		return nil, NewError(ErrorKindInternal, "PUBLISH_001", "parse article template", err)
	}
	return &Publisher{baseDir: baseDir, tmpl: tmpl, registry: registry}, nil
}

type articlePage struct {
	Title        string
	Description  string
	CategoryName string
	PostDate     string
	ImageURL     string
	Content      template.HTML
	Year         int
}

// Publish writes the article's HTML page and appends it to the registry.
func (p *Publisher) Publish(art RewrittenArticle) (PublishInfo, error) {
	now := time.Now()
	slug := Slugify(art.Title)
	filename := fmt.Sprintf("%s-%d.html", slug, now.Unix())
	relPath := filepath.Join(CategoriesDir, art.Category, filename)
	absPath := filepath.Join(p.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return PublishInfo{}, NewError(ErrorKindInternal, "PUBLISH_001", "create category dir", err)
	}

	page := articlePage{
		Title:        art.Title,
		Description:  summarize(art.OriginalContent, 160),
		CategoryName: CategoryNames[art.Category],
		PostDate:     now.Format(postDateLayout),
		ImageURL:     art.ImageURL,
		// Content passed through paragraph wrapping; the rest of the
		// page is escaped by the template engine.
		Content: template.HTML(art.Content),
		Year:    now.Year(),
	}

	f, err := os.Create(absPath)
	if err != nil {
		return PublishInfo{}, NewError(ErrorKindInternal, "PUBLISH_001", fmt.Sprintf("create %s", absPath), err)
	}
	if err := p.tmpl.Execute(f, page); err != nil {
		f.Close()
		os.Remove(absPath)
		return PublishInfo{}, NewError(ErrorKindInternal, "PUBLISH_002", fmt.Sprintf("render %s", absPath), err)
	}
	if err := f.Close(); err != nil {
		return PublishInfo{}, NewError(ErrorKindInternal, "PUBLISH_001", fmt.Sprintf("close %s", absPath), err)
	}

	urlPath := "/" + filepath.ToSlash(relPath)
	rec := PublishedRecord{
		Title:            art.Title,
		Category:         art.Category,
		SourceURL:        art.SourceURL,
		Filepath:         relPath,
		URLPath:          urlPath,
		PublishTimestamp: now,
	}
	if err := p.registry.Add(rec); err != nil {
		return PublishInfo{}, err
	}

	GetLogger().Info("Published %s -> %s", art.Title, relPath)
	return PublishInfo{
		Title:    art.Title,
		Category: art.Category,
		Filepath: absPath,
		URLPath:  urlPath,
	}, nil
}

// Slugify lowercases, strips accents and reduces a title to a URL slug
// of at most 50 characters.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(title))
	if err != nil {
		plain = strings.ToLower(title)
	}
	plain = nonSlugChars.ReplaceAllString(plain, "")
	plain = slugSpaces.ReplaceAllString(strings.TrimSpace(plain), "-")
	if len(plain) > 50 {
		plain = plain[:50]
		plain = strings.TrimRight(plain, "-")
	}
	return plain
}

// summarize returns the first sentence-ish chunk of text up to max runes.
func summarize(text string, max int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	cut := string(r[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
