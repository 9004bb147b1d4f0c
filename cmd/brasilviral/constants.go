// cmd/brasilviral/constants.go
package main

import "time"

// Application constants
const (
	AppName    = "BrasilViral"
	AppVersion = "1.0.0"

	// Default file locations, relative to the base directory
	PathConfig    = "scripts/automation_config.json"
	PathNewsCache = "news_cache.json"
	PathPublished = "published_news.json"
	PathImgCache  = "image_cache.json"
	PathState     = "data/state.json"
	PathLogs      = "logs/brasilviral.log"
	PathPIDFile   = "scripts/automation.pid"
	PathLauncher  = "scripts/start_automation.sh"
	CategoriesDir = "categorias"
	ImagesDir     = "images"

	// Scheduling defaults
	DefaultPostsPerDay = 17
	DefaultStartHour   = 6
	DefaultEndHour     = 22
	CleanupHour        = 3
	CleanupAfterDays   = 30

	// Pipeline defaults
	DefaultBatchSize     = 5
	DefaultMinViralScore = 20
	DefaultMaxDuplicates = 3

	// Network
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Fetcher limits
	MaxLinksPerSource  = 5
	MaxParagraphs      = 10
	MinParagraphLen    = 60
	MinContentWords    = 80
	MaxTrendingTopics  = 20
	ScrapeRequestsPerS = 2
)

// Categories supported by the site, in publication order.
var Categories = []string{
	"esportes", "economia", "politica",
	"tecnologia", "entretenimento", "curiosidades",
}

// CategoryNames maps category slugs to display names.
var CategoryNames = map[string]string{
	"esportes":       "Esportes",
	"economia":       "Economia",
	"politica":       "Política",
	"tecnologia":     "Tecnologia",
	"entretenimento": "Entretenimento",
	"curiosidades":   "Curiosidades",
}

// NewsSources maps each category to the homepages crawled for candidates.
var NewsSources = map[string][]string{
	"esportes": {
		"https://ge.globo.com/",
		"https://www.lance.com.br/",
		"https://www.espn.com.br/",
		"https://www.uol.com.br/esporte/",
	},
	"economia": {
		"https://economia.uol.com.br/",
		"https://valor.globo.com/",
		"https://www.infomoney.com.br/",
		"https://www.investing.com/news/economy",
	},
	"politica": {
		"https://g1.globo.com/politica/",
		"https://noticias.uol.com.br/politica/",
		"https://www.poder360.com.br/",
		"https://www.cnnbrasil.com.br/politica/",
	},
	"tecnologia": {
		"https://www.tecmundo.com.br/",
		"https://olhardigital.com.br/",
		"https://canaltech.com.br/",
		"https://tecnoblog.net/",
	},
	"entretenimento": {
		"https://www.omelete.com.br/",
		"https://www.papelpop.com/",
		"https://www.uol.com.br/splash/",
		"https://gshow.globo.com/",
	},
	"curiosidades": {
		"https://revistagalileu.globo.com/",
		"https://super.abril.com.br/",
		"https://www.megacurioso.com.br/",
		"https://www.hypeness.com.br/",
	},
}

// TrendsFeedURL is the Google Trends daily RSS feed for Brazil.
const TrendsFeedURL = "https://trends.google.com.br/trends/trendingsearches/daily/rss?geo=BR"

// emotionalWords are title words that historically correlate with shares.
var emotionalWords = []string{
	"incrível", "chocante", "surpreendente", "impressionante",
	"polêmica", "revelado", "exclusivo", "urgente", "viral",
}

// IsValidCategory reports whether cat is one of the site categories.
func IsValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
