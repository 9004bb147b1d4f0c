package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Dólar sobe após decisão do Copom", "dolar-sobe-apos-decisao-do-copom"},
		{"Seleção vence: 3 a 0!", "selecao-vence-3-a-0"},
		{"  Espaços   extras  ", "espacos-extras"},
		{"Ação & reação", "acao-reacao"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyLengthCap(t *testing.T) {
	long := strings.Repeat("palavra ", 20)
	got := Slugify(long)
	if len(got) > 50 {
		t.Errorf("slug too long (%d): %q", len(got), got)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug has trailing hyphen: %q", got)
	}
}

func newTestPublisher(t *testing.T) (*Publisher, *Registry, string) {
	t.Helper()
	base := t.TempDir()
	registry := NewRegistry(filepath.Join(base, PathPublished))
	pub, err := NewPublisher(base, registry)
	if err != nil {
		t.Fatal(err)
	}
	return pub, registry, base
}

func testRewritten(title string) RewrittenArticle {
	return RewrittenArticle{
		Article: Article{
			Title:     title,
			Content:   "<p>Primeiro parágrafo da notícia reescrita.</p>\n<p>Segundo parágrafo.</p>",
			SourceURL: "https://example.com/original",
			Category:  "economia",
		},
		OriginalTitle:    title,
		OriginalContent:  "Primeiro parágrafo da notícia reescrita.",
		ImageURL:         "/images/foto.jpg",
		RewriteTimestamp: time.Now(),
	}
}

func TestPublishWritesPageAndRegistry(t *testing.T) {
	pub, registry, base := newTestPublisher(t)

	info, err := pub.Publish(testRewritten("Dólar dispara e assusta o mercado"))
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(info.Filepath)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{
		"Dólar dispara e assusta o mercado",
		`class="post-date"`,
		`class="article-featured-image"`,
		"<p>Primeiro parágrafo da notícia reescrita.</p>",
		"/images/foto.jpg",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	if !strings.HasPrefix(info.URLPath, "/categorias/economia/dolar-dispara") {
		t.Errorf("unexpected url path %q", info.URLPath)
	}
	if registry.Len() != 1 {
		t.Errorf("expected 1 registry record, got %d", registry.Len())
	}

	// Registry must have been persisted atomically to disk.
	reloaded := NewRegistry(filepath.Join(base, PathPublished))
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 1 {
		t.Error("registry not persisted")
	}
}

func TestPublishEscapesTitle(t *testing.T) {
	pub, _, _ := newTestPublisher(t)

	art := testRewritten(`Golpe usa <script>alert("x")</script> em site`)
	info, err := pub.Publish(art)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(info.Filepath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `<script>alert`) {
		t.Error("title script tag was not escaped")
	}
}

func TestPublishUsesTemplateOverride(t *testing.T) {
	base := t.TempDir()
	override := filepath.Join(base, "scripts", "template_noticia.html")
	if err := os.MkdirAll(filepath.Dir(override), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("<html><h1>site</h1><h1>{{.Title}}</h1></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry(filepath.Join(base, PathPublished))
	pub, err := NewPublisher(base, registry)
	if err != nil {
		t.Fatal(err)
	}

	info, err := pub.Publish(testRewritten("Título de teste"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(info.Filepath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<h1>site</h1>") {
		t.Error("template override was not used")
	}
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("palavra ", 50)
	got := summarize(long, 30)
	if len([]rune(got)) > 34 {
		t.Errorf("summary too long: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated summary should end with ellipsis: %q", got)
	}

	if got := summarize("curto", 30); got != "curto" {
		t.Errorf("short text must pass through, got %q", got)
	}
}
