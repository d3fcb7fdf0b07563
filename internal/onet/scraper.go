// Package onet rebuilds the job catalog from the O*NET occupation listings.
// This is an offline, one-shot acquisition step: the engine itself only ever
// reads the CSV this package writes.
package onet

import (
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/fortemind/career-compass/internal/riasec"
)

const (
	defaultBaseURL = "https://www.onetonline.org"

	// Hard page ceilings keep a misbehaving listing from looping forever.
	maxInterestPages   = 30
	maxOccupationPages = 50

	// Fixed inter-request delay to stay polite with the remote site.
	defaultDelay = time.Second

	userAgent = "career-compass catalog builder"
)

// InterestRow is one occupation row from a per-dimension interest listing.
type InterestRow struct {
	Code  string
	Title string
	Zone  string
	// Interests holds the interest area names in listed order; the order
	// encodes first/second/third strength.
	Interests []string
}

// FamilyRow maps an occupation code to its job family.
type FamilyRow struct {
	Code   string
	Title  string
	Family string
}

// Scraper paginates the O*NET listings. Any fetch or parse error aborts the
// whole run: a partially scraped catalog is worse than none.
type Scraper struct {
	BaseURL string
	Delay   time.Duration
	logger  *zap.Logger
}

// NewScraper creates a scraper against the production O*NET site.
func NewScraper(logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{BaseURL: defaultBaseURL, Delay: defaultDelay, logger: logger}
}

// ScrapeInterests collects every occupation listed under each of the six
// interest dimensions.
func (s *Scraper) ScrapeInterests() ([]InterestRow, error) {
	var all []InterestRow
	for _, d := range riasec.Dimensions() {
		base := fmt.Sprintf("%s/explore/interests/%s/", s.BaseURL, d.Name())
		rows, err := s.paginate(base, "?p=%d", maxInterestPages, func(cells []string) {
			if row, ok := parseInterestRow(cells); ok {
				all = append(all, row)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("scrape %s interests: %w", d.Name(), err)
		}
		s.logger.Info("scraped interest listing",
			zap.String("dimension", d.Name()),
			zap.Int("pages", rows),
		)
	}
	return all, nil
}

// ScrapeFamilies collects the occupation-to-family table.
func (s *Scraper) ScrapeFamilies() ([]FamilyRow, error) {
	var all []FamilyRow
	base := s.BaseURL + "/find/family?f=0&g=Go"
	pages, err := s.paginate(base, "&p=%d", maxOccupationPages, func(cells []string) {
		if row, ok := parseFamilyRow(cells); ok {
			all = append(all, row)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scrape occupation families: %w", err)
	}
	s.logger.Info("scraped occupation families", zap.Int("pages", pages), zap.Int("rows", len(all)))
	return all, nil
}

// paginate fetches base, then base+pageParam for increasing page numbers until
// a page yields no table rows or the ceiling is reached. It returns the number
// of pages fetched and aborts on the first fetch error.
func (s *Scraper) paginate(base, pageParam string, maxPages int, handle func(cells []string)) (int, error) {
	for page := 1; page <= maxPages; page++ {
		pageURL := base
		if page > 1 {
			pageURL = base + fmt.Sprintf(pageParam, page)
		}

		rows, err := s.fetchTableRows(pageURL)
		if err != nil {
			return page - 1, fmt.Errorf("page %d: %w", page, err)
		}
		if len(rows) == 0 {
			s.logger.Debug("no more rows", zap.String("url", pageURL))
			return page - 1, nil
		}

		for _, cells := range rows {
			handle(cells)
		}

		if s.Delay > 0 {
			time.Sleep(s.Delay)
		}
	}

	s.logger.Warn("reached page ceiling", zap.String("url", base), zap.Int("max_pages", maxPages))
	return maxPages, nil
}

// fetchTableRows downloads one listing page and extracts the cell texts of
// every table body row.
func (s *Scraper) fetchTableRows(pageURL string) ([][]string, error) {
	c := colly.NewCollector(colly.UserAgent(userAgent))

	var rows [][]string
	c.OnHTML("table tr", func(e *colly.HTMLElement) {
		var cells []string
		e.ForEach("td", func(_ int, td *colly.HTMLElement) {
			cells = append(cells, strings.TrimSpace(td.Text))
		})
		// Header rows carry th cells only.
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	var fetchErr error
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	return rows, nil
}

// parseInterestRow maps the cells of an interest listing row: code, title,
// job zone, comma-separated interest areas.
func parseInterestRow(cells []string) (InterestRow, bool) {
	if len(cells) < 4 {
		return InterestRow{}, false
	}
	interests := splitInterests(cells[3])
	if cells[1] == "" || len(interests) == 0 {
		return InterestRow{}, false
	}
	return InterestRow{
		Code:      cells[0],
		Title:     cells[1],
		Zone:      cells[2],
		Interests: interests,
	}, true
}

// parseFamilyRow maps the cells of an occupation listing row: code,
// occupation title, job family.
func parseFamilyRow(cells []string) (FamilyRow, bool) {
	if len(cells) < 3 || cells[0] == "" || cells[1] == "" {
		return FamilyRow{}, false
	}
	return FamilyRow{Code: cells[0], Title: cells[1], Family: cells[2]}, true
}

func splitInterests(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if _, err := riasec.ParseDimension(p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
