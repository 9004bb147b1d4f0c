// cmd/brasilviral/images.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var ptStopwords = map[string]bool{
	"de": true, "da": true, "do": true, "das": true, "dos": true,
	"a": true, "o": true, "as": true, "os": true, "um": true, "uma": true,
	"e": true, "em": true, "no": true, "na": true, "nos": true, "nas": true,
	"por": true, "para": true, "com": true, "sem": true, "que": true,
	"se": true, "sobre": true, "após": true, "até": true, "mais": true,
	"menos": true, "como": true, "quando": true, "seu": true, "sua": true,
}

var sourceBonus = map[string]float64{
	"pexels":  1.2,
	"pixabay": 1.1,
	"google":  1.0,
}

var defaultImages = map[string]string{
	"esportes":       "/images/default-esportes.jpg",
	"economia":       "/images/default-economia.jpg",
	"politica":       "/images/default-politica.jpg",
	"tecnologia":     "/images/default-tecnologia.jpg",
	"entretenimento": "/images/default-entretenimento.jpg",
	"curiosidades":   "/images/default-curiosidades.jpg",
}

// ImageAgent finds a cover image for an article, trying Pixabay, then a
// Google Images scrape, then a per-category placeholder.
type ImageAgent struct {
	client      *http.Client
	pixabayKey  string
	pixabayBase string
	googleBase  string
	cachePath   string
	mu          sync.Mutex
	cache       map[string]ImageInfo
	rng         *rand.Rand
}

// NewImageAgent wires an agent with the production endpoints.
func NewImageAgent(pixabayKey, cachePath string, rng *rand.Rand) *ImageAgent {
	a := &ImageAgent{
		client:      &http.Client{Timeout: DefaultTimeout},
		pixabayKey:  pixabayKey,
		pixabayBase: "https://pixabay.com/api/",
		googleBase:  "https://www.google.com/search",
		cachePath:   cachePath,
		cache:       make(map[string]ImageInfo),
		rng:         rng,
	}
	if err := loadJSON(cachePath, &a.cache); err != nil {
		GetLogger().Warning("Could not load image cache: %v", err)
	}
	if a.cache == nil {
		a.cache = make(map[string]ImageInfo)
	}
	return a
}

// FindImage returns the best image for an article title and category.
// It never fails; the placeholder is the floor.
func (a *ImageAgent) FindImage(ctx context.Context, title, category string) ImageInfo {
	key := cacheKeyFor(title, category)
	a.mu.Lock()
	if img, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return img
	}
	a.mu.Unlock()

	query := ExtractKeywords(title, category)

	var candidates []ImageInfo
	if a.pixabayKey != "" {
		found, err := a.searchPixabay(ctx, query)
		if err != nil {
			GetLogger().Warning("Pixabay search failed: %v", err)
		}
		candidates = append(candidates, found...)
	}
	if len(candidates) == 0 {
		found, err := a.searchGoogleImages(ctx, query)
		if err != nil {
			GetLogger().Warning("Google Images search failed: %v", err)
		}
		candidates = append(candidates, found...)
	}

	img := a.pickBest(candidates)
	if img.URL == "" {
		img = placeholderImage(category)
	}

	a.mu.Lock()
	a.cache[key] = img
	a.mu.Unlock()
	if err := saveJSON(a.cachePath, a.cache); err != nil {
		GetLogger().Warning("Could not save image cache: %v", err)
	}
	return img
}

// pickBest ranks candidates by click potential and picks one of the top
// three at random, so repeated posts don't all share an image.
func (a *ImageAgent) pickBest(candidates []ImageInfo) ImageInfo {
	if len(candidates) == 0 {
		return ImageInfo{}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return clickPotential(candidates[i]) > clickPotential(candidates[j])
	})
	top := candidates
	if len(top) > 3 {
		top = top[:3]
	}
	return top[a.rng.Intn(len(top))]
}

func clickPotential(img ImageInfo) float64 {
	score := float64(img.Width*img.Height) / 1e6
	if bonus, ok := sourceBonus[img.Source]; ok {
		score *= bonus
	}
	return score
}

type pixabayResponse struct {
	Hits []struct {
		WebformatURL string `json:"webformatURL"`
		PreviewURL   string `json:"previewURL"`
		PageURL      string `json:"pageURL"`
		ImageWidth   int    `json:"imageWidth"`
		ImageHeight  int    `json:"imageHeight"`
	} `json:"hits"`
}

func (a *ImageAgent) searchPixabay(ctx context.Context, query string) ([]ImageInfo, error) {
	params := url.Values{}
	params.Set("key", a.pixabayKey)
	params.Set("q", query)
	params.Set("lang", "pt")
	params.Set("image_type", "photo")
	params.Set("safesearch", "true")
	params.Set("per_page", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.pixabayBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewValidationError("IMAGE_001", fmt.Sprintf("pixabay request: %v", err))
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, NewError(ErrorKindExternalService, "IMAGE_001", "pixabay", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, NewError(ErrorKindExternalService, "IMAGE_001", fmt.Sprintf("pixabay status %d", resp.StatusCode), nil)
	}

	var body pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewError(ErrorKindExternalService, "IMAGE_001", "pixabay decode", err)
	}

	var images []ImageInfo
	for _, hit := range body.Hits {
		if hit.WebformatURL == "" {
			continue
		}
		images = append(images, ImageInfo{
			URL:       hit.WebformatURL,
			Thumbnail: hit.PreviewURL,
			Source:    "pixabay",
			SourceURL: hit.PageURL,
			Width:     hit.ImageWidth,
			Height:    hit.ImageHeight,
		})
	}
	return images, nil
}

func (a *ImageAgent) searchGoogleImages(ctx context.Context, query string) ([]ImageInfo, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("tbm", "isch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.googleBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewValidationError("IMAGE_002", fmt.Sprintf("google request: %v", err))
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, NewError(ErrorKindExternalService, "IMAGE_002", "google images", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, NewError(ErrorKindExternalService, "IMAGE_002", fmt.Sprintf("google images status %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, NewError(ErrorKindExternalService, "IMAGE_002", "google images parse", err)
	}

	var images []ImageInfo
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		// The first img on the results page is the Google logo.
		if i == 0 || len(images) >= 10 {
			return
		}
		src, ok := s.Attr("src")
		if !ok || !strings.HasPrefix(src, "http") {
			return
		}
		images = append(images, ImageInfo{
			URL:    src,
			Source: "google",
			Width:  400,
			Height: 300,
		})
	})
	return images, nil
}

// Localize downloads a remote image into images/<category>/ so pages do
// not hotlink third-party hosts. It returns the site-relative path, or
// the original URL when the download fails or the image is a placeholder.
func (a *ImageAgent) Localize(ctx context.Context, img ImageInfo, baseDir, category string) string {
	if img.IsDefault || !strings.HasPrefix(img.URL, "http") {
		return img.URL
	}
	dir := filepath.Join(baseDir, ImagesDir, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		GetLogger().Warning("Could not create image dir %s: %v", dir, err)
		return img.URL
	}
	name := hashKey(img.URL) + ".jpg"
	dest := filepath.Join(dir, name)
	rel := "/" + ImagesDir + "/" + category + "/" + name
	if _, err := os.Stat(dest); err == nil {
		return rel
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return img.URL
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	resp, err := a.client.Do(req)
	if err != nil {
		GetLogger().Warning("Image download failed for %s: %v", img.URL, err)
		return img.URL
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return img.URL
	}
	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return img.URL
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return img.URL
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return img.URL
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return img.URL
	}
	return rel
}

func placeholderImage(category string) ImageInfo {
	u, ok := defaultImages[category]
	if !ok {
		u = "/images/default-news.jpg"
	}
	return ImageInfo{URL: u, Source: "default", IsDefault: true}
}

// ExtractKeywords builds an image search query from a title: proper
// nouns and non-stopwords, plus the category name in Portuguese.
func ExtractKeywords(title, category string) string {
	var keywords []string
	for _, w := range strings.Fields(title) {
		bare := strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if bare == "" {
			continue
		}
		lower := strings.ToLower(bare)
		isProper := unicode.IsUpper([]rune(bare)[0]) && len(keywords) > 0
		if ptStopwords[lower] && !isProper {
			continue
		}
		if len(bare) < 3 && !isProper {
			continue
		}
		keywords = append(keywords, bare)
		if len(keywords) >= 4 {
			break
		}
	}
	if name, ok := CategoryNames[category]; ok {
		keywords = append(keywords, name)
	}
	return strings.Join(keywords, " ")
}

func cacheKeyFor(title, category string) string {
	// Truncate on runes so accented titles keep valid UTF-8 keys.
	r := []rune(title)
	if len(r) > 50 {
		r = r[:50]
	}
	return string(r) + "_" + category
}
