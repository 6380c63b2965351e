package celebs

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/elitestar/bookings-web/internal/api"
)

const (
	PageSize      = 20
	FeaturedCount = 10
	FilterAll     = "All"
)

var Filters = []string{FilterAll, "Actor", "Musician", "Athlete"}

// FilterCelebrities keeps the celebrities whose name contains query (case
// insensitive) and whose profession matches the filter. A filter matches a
// profession exactly or one of its slash separated variants, so "Actor"
// matches "Actor/Actress".
func FilterCelebrities(celebs []api.Celebrity, query, profession string) []api.Celebrity {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]api.Celebrity, 0, len(celebs))
	for _, c := range celebs {
		if !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		if !professionMatches(c.Profession, profession) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func professionMatches(profession, filter string) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	if profession == filter {
		return true
	}
	for _, variant := range strings.Split(profession, "/") {
		if variant == filter {
			return true
		}
	}
	return false
}

// Paginate returns the requested page of items together with the total number
// of pages. Out of range pages are clamped.
func Paginate[T any](items []T, page, size int) (_ []T, currentPage, totalPages int) {
	if size <= 0 {
		size = PageSize
	}
	totalPages = (len(items) + size - 1) / size
	if totalPages == 0 {
		return []T{}, 1, 0
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], page, totalPages
}

// Featured picks up to FeaturedCount random celebrities.
func Featured(celebs []api.Celebrity) []api.Celebrity {
	shuffled := make([]api.Celebrity, len(celebs))
	copy(shuffled, celebs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > FeaturedCount {
		shuffled = shuffled[:FeaturedCount]
	}
	return shuffled
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
