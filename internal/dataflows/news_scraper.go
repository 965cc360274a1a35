package dataflows

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// NewsScraperClient handles news scraping operations
type NewsScraperClient struct {
	client *resty.Client
	cache  *CacheManager
}

// NewNewsScraperClient creates a new news scraper client
func NewNewsScraperClient(config *Config) *NewsScraperClient {
	cacheDir := filepath.Join(config.DataCacheDir, "news_scraper")
	cache := NewCacheManager(cacheDir, 2*time.Hour, config.CacheEnabled) // 2 hour cache for news

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; SokoAnalyst/1.0)")

	return &NewsScraperClient{
		client: client,
		cache:  cache,
	}
}

// GoogleNewsParams represents parameters for Google News search
type GoogleNewsParams struct {
	Query      string    `json:"query"`
	Language   string    `json:"language"`
	Country    string    `json:"country"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	MaxResults int       `json:"max_results"`
}

// GetGoogleNews scrapes Google News for articles
func (ns *NewsScraperClient) GetGoogleNews(params GoogleNewsParams, config *Config) ([]*NewsArticle, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	if params.Language == "" {
		params.Language = "en"
	}
	if params.Country == "" {
		params.Country = "US"
	}
	if params.MaxResults <= 0 {
		params.MaxResults = 20
	}

	var cached []*NewsArticle
	if ns.cache.Get("google_news", "search", params, &cached) {
		return cached, nil
	}

	filePath := filepath.Join(config.DataDir, "news_data",
		fmt.Sprintf("google_news_%s_%s.json",
			strings.ReplaceAll(params.Query, " ", "_"),
			time.Now().Format("2006-01-02")))

	// Same-day saved results short-circuit a refetch when the cache is cold.
	var saved []*NewsArticle
	if err := LoadDataFromFile(filePath, &saved); err == nil && len(saved) > 0 {
		if len(saved) > params.MaxResults {
			saved = saved[:params.MaxResults]
		}
		return saved, nil
	}

	googleURL := ns.buildGoogleNewsURL(params)

	var result []*NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ns.client.R().Get(googleURL)
		if err != nil {
			return fmt.Errorf("failed to fetch Google News: %w", err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching Google News", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = ns.parseGoogleNewsHTML(doc, params.Query)

		if len(result) > params.MaxResults {
			result = result[:params.MaxResults]
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	ns.cache.Set("google_news", "search", params, result)
	SaveDataToFile(result, filePath)

	return result, nil
}

// buildGoogleNewsURL constructs the Google News search URL
func (ns *NewsScraperClient) buildGoogleNewsURL(params GoogleNewsParams) string {
	baseURL := "https://news.google.com/search"

	query := url.QueryEscape(params.Query)

	if !params.StartDate.IsZero() && !params.EndDate.IsZero() {
		dateQuery := fmt.Sprintf(" after:%s before:%s",
			params.StartDate.Format("2006-01-02"),
			params.EndDate.Format("2006-01-02"))
		query += url.QueryEscape(dateQuery)
	}

	return fmt.Sprintf("%s?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		baseURL, query, params.Language, params.Country, params.Country, params.Language)
}

// parseGoogleNewsHTML extracts articles from Google News HTML
func (ns *NewsScraperClient) parseGoogleNewsHTML(doc *goquery.Document, query string) []*NewsArticle {
	var articles []*NewsArticle

	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}

		if title == "" {
			return
		}

		link := s.Find("a").First()
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		articleURL := ns.cleanGoogleNewsURL(href)

		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		// Google News timestamps are usually relative
		timeText := strings.TrimSpace(s.Find("time").Text())
		publishedAt := ns.parseRelativeTime(timeText)

		content := strings.TrimSpace(s.Find("span").Last().Text())

		article := &NewsArticle{
			Title:       title,
			Content:     content,
			URL:         articleURL,
			Source:      source,
			PublishedAt: publishedAt,
			Keywords:    []string{query},
			Metadata: map[string]string{
				"scraper":      "google_news",
				"original_url": href,
				"time_text":    timeText,
			},
		}

		articles = append(articles, article)
	})

	return articles
}

// cleanGoogleNewsURL removes the Google News redirect wrapper
func (ns *NewsScraperClient) cleanGoogleNewsURL(googleURL string) string {
	if strings.Contains(googleURL, "url=") {
		parts := strings.Split(googleURL, "url=")
		if len(parts) > 1 {
			decoded, err := url.QueryUnescape(parts[1])
			if err == nil {
				return decoded
			}
		}
	}

	if strings.HasPrefix(googleURL, "./") {
		return "https://news.google.com" + googleURL[1:]
	}

	if strings.HasPrefix(googleURL, "/") {
		return "https://news.google.com" + googleURL
	}

	return googleURL
}

var (
	minuteAgoPattern = regexp.MustCompile(`(\d+)\s*minutes?\s*ago`)
	hourAgoPattern   = regexp.MustCompile(`(\d+)\s*hours?\s*ago`)
	dayAgoPattern    = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
	weekAgoPattern   = regexp.MustCompile(`(\d+)\s*weeks?\s*ago`)
)

// parseRelativeTime converts relative time strings to actual time
func (ns *NewsScraperClient) parseRelativeTime(timeText string) time.Time {
	now := time.Now()
	timeText = strings.ToLower(strings.TrimSpace(timeText))

	if timeText == "just now" {
		return now
	}
	if timeText == "yesterday" {
		return now.Add(-24 * time.Hour)
	}

	if matches := minuteAgoPattern.FindStringSubmatch(timeText); len(matches) > 1 {
		if minutes := parseNumber(matches[1]); minutes > 0 {
			return now.Add(-time.Duration(minutes) * time.Minute)
		}
	}
	if matches := hourAgoPattern.FindStringSubmatch(timeText); len(matches) > 1 {
		if hours := parseNumber(matches[1]); hours > 0 {
			return now.Add(-time.Duration(hours) * time.Hour)
		}
	}
	if matches := dayAgoPattern.FindStringSubmatch(timeText); len(matches) > 1 {
		if days := parseNumber(matches[1]); days > 0 {
			return now.Add(-time.Duration(days) * 24 * time.Hour)
		}
	}
	if matches := weekAgoPattern.FindStringSubmatch(timeText); len(matches) > 1 {
		if weeks := parseNumber(matches[1]); weeks > 0 {
			return now.Add(-time.Duration(weeks) * 7 * 24 * time.Hour)
		}
	}

	// Unparseable relative times are treated as recent
	return now.Add(-1 * time.Hour)
}

// parseNumber safely converts string to int
func parseNumber(s string) int {
	var result int
	fmt.Sscanf(s, "%d", &result)
	return result
}

// GetNewsFromURL scrapes a specific news article URL
func (ns *NewsScraperClient) GetNewsFromURL(articleURL string) (*NewsArticle, error) {
	if strings.TrimSpace(articleURL) == "" {
		return nil, fmt.Errorf("article URL cannot be empty")
	}

	var cached NewsArticle
	if ns.cache.Get("article", "content", articleURL, &cached) {
		return &cached, nil
	}

	var result *NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ns.client.R().Get(articleURL)
		if err != nil {
			return fmt.Errorf("failed to fetch article: %w", err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching article", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = ns.extractArticleContent(doc, articleURL)
		return nil
	})

	if err != nil {
		return nil, err
	}

	ns.cache.Set("article", "content", articleURL, result)

	return result, nil
}

// extractArticleContent extracts article content from HTML
func (ns *NewsScraperClient) extractArticleContent(doc *goquery.Document, articleURL string) *NewsArticle {
	title := ""
	titleSelectors := []string{"h1", "title", ".headline", ".article-title", ".entry-title"}
	for _, selector := range titleSelectors {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			title = t
			break
		}
	}

	content := ""
	contentSelectors := []string{
		".article-content", ".entry-content", ".post-content",
		".content", "article p", ".article-body", ".story-body",
	}
	for _, selector := range contentSelectors {
		if c := strings.TrimSpace(doc.Find(selector).Text()); c != "" {
			content = c
			break
		}
	}

	source := ""
	if meta := doc.Find("meta[property='og:site_name']"); meta.Length() > 0 {
		source, _ = meta.Attr("content")
	}
	if source == "" {
		if u, err := url.Parse(articleURL); err == nil {
			source = u.Host
		}
	}

	publishedAt := time.Now()
	if meta := doc.Find("meta[property='article:published_time']"); meta.Length() > 0 {
		if dateStr, exists := meta.Attr("content"); exists {
			if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
				publishedAt = t
			}
		}
	}

	return &NewsArticle{
		Title:       title,
		Content:     content,
		URL:         articleURL,
		Source:      source,
		PublishedAt: publishedAt,
		Metadata: map[string]string{
			"scraper": "url_content",
		},
	}
}
