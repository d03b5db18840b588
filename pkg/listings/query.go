package listings

import (
	"sort"
	"strings"
	"time"

	"github.com/jordanlanch/listingpro/pkg/models"
)

// LeadTypeAll disables lead-type filtering.
const LeadTypeAll = "all"

// Sort keys accepted by Criteria.SortBy. Anything else falls back to the
// default best-match ordering.
const (
	SortPriceAsc       = "price_asc"
	SortPriceDesc      = "price_desc"
	SortDomAsc         = "dom_asc"
	SortDomDesc        = "dom_desc"
	SortExpirationAsc  = "expirationDate_asc"
	SortExpirationDesc = "expirationDate_desc"
	SortBestMatch      = "best_match"
)

// Criteria describes one view over the working set.
type Criteria struct {
	SearchTerm        string `json:"searchTerm" query:"searchTerm"`
	TagFilter         string `json:"tagFilter" query:"tagFilter"`
	LeadTypeFilter    string `json:"leadTypeFilter" query:"leadTypeFilter"`
	SortBy            string `json:"sortBy" query:"sortBy"`
	ShowFavoritesOnly bool   `json:"showFavoritesOnly" query:"showFavoritesOnly"`
}

// View filters and sorts the working set without mutating it. The same
// criteria against the same listings always yields the same result.
func View(listings []models.Listing, c Criteria) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, c) {
			out = append(out, l)
		}
	}
	sortListings(out, c.SortBy)
	return out
}

func matches(l models.Listing, c Criteria) bool {
	if c.ShowFavoritesOnly && !l.IsFavorite {
		return false
	}
	if c.LeadTypeFilter != "" && c.LeadTypeFilter != LeadTypeAll && !strings.EqualFold(string(l.LeadType), c.LeadTypeFilter) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(c.SearchTerm)); term != "" && !matchesSearch(l, term) {
		return false
	}
	if !matchesTags(l, c.TagFilter) {
		return false
	}
	return true
}

func matchesSearch(l models.Listing, term string) bool {
	for _, field := range []string{
		l.Address, l.City, l.Zip, l.PropertyType, string(l.LeadType),
		l.HomeownerEmail, l.HomeownerPhone,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// matchesTags applies a comma-separated filter; a listing matches when any
// requested tag appears as a case-insensitive substring of any of its tags.
// An empty filter matches everything.
func matchesTags(l models.Listing, filter string) bool {
	any := false
	for _, want := range strings.Split(filter, ",") {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		any = true
		for _, tag := range l.Tags {
			if strings.Contains(strings.ToLower(tag), want) {
				return true
			}
		}
	}
	return !any
}

func sortListings(list []models.Listing, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	case SortDomAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DaysOnMarketPreviously < list[j].DaysOnMarketPreviously
		})
	case SortDomDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DaysOnMarketPreviously > list[j].DaysOnMarketPreviously
		})
	case SortExpirationAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return parseDate(list[i].ExpirationDate).Before(parseDate(list[j].ExpirationDate))
		})
	case SortExpirationDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return parseDate(list[j].ExpirationDate).Before(parseDate(list[i].ExpirationDate))
		})
	default:
		sortBestMatch(list)
	}
}

// sortBestMatch orders Hot, Warm, Cold, then unscored; within a rank the
// most recently expired listing comes first.
func sortBestMatch(list []models.Listing) {
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := scoreRank(list[i]), scoreRank(list[j])
		if ri != rj {
			return ri < rj
		}
		return parseDate(list[j].ExpirationDate).Before(parseDate(list[i].ExpirationDate))
	})
}

func scoreRank(l models.Listing) int {
	if l.AILeadScore == nil {
		return 4
	}
	switch l.AILeadScore.Score {
	case models.ScoreHot:
		return 1
	case models.ScoreWarm:
		return 2
	case models.ScoreCold:
		return 3
	}
	return 4
}

// parseDate accepts the catalogue's YYYY-MM-DD dates and full RFC3339
// timestamps. Anything else sorts as the zero time, which puts unparseable
// dates last under recency ordering.
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
