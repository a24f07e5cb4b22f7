package categories

import (
	"github.com/joefazee/neo-admin/models"
)

// DefaultPageSize is the number of cards shown per page.
const DefaultPageSize = 4

// Filter keeps the categories whose name or details contain query, ignoring
// case. Order is preserved; an empty query keeps everything.
func Filter(items []models.Category, query string) []models.Category {
	out := make([]models.Category, 0, len(items))
	for i := range items {
		if items[i].Matches(query) {
			out = append(out, items[i])
		}
	}
	return out
}

// PageCount returns ceil(n/size).
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageSlice returns the items of page index. Out of range pages are empty.
func PageSlice(items []models.Category, index, size int) []models.Category {
	if index < 0 || size <= 0 {
		return []models.Category{}
	}
	start := index * size
	if start >= len(items) {
		return []models.Category{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Page is everything a list view renders for one state of the listing.
type Page struct {
	Query string
	// Items is the current page (card view).
	Items []models.Category
	// Matches is every filtered category (table view).
	Matches        []models.Category
	Index          int
	Count          int
	Total          int
	HasPrev        bool
	HasNext        bool
	ShowPagination bool
	Empty          bool
}

// Listing holds the search and pagination state of a category list.
// It is not safe for concurrent use.
type Listing struct {
	query string
	page  int
	size  int
}

func NewListing(pageSize int) *Listing {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Listing{size: pageSize}
}

func (l *Listing) Query() string { return l.query }

func (l *Listing) PageIndex() int { return l.page }

func (l *Listing) PageSize() int { return l.size }

// SetQuery changes the search term and goes back to the first page.
func (l *Listing) SetQuery(query string) {
	l.query = query
	l.page = 0
}

// Next moves forward one page unless already on the last one.
func (l *Listing) Next(items []models.Category) bool {
	count := PageCount(len(Filter(items, l.query)), l.size)
	if l.page >= count-1 {
		return false
	}
	l.page++
	return true
}

// Prev moves back one page unless already on the first one.
func (l *Listing) Prev() bool {
	if l.page == 0 {
		return false
	}
	l.page--
	return true
}

// Goto jumps to page index, clamped to the available pages.
func (l *Listing) Goto(items []models.Category, index int) {
	l.page = index
	l.clamp(PageCount(len(Filter(items, l.query)), l.size))
}

// Derive computes the page for items, clamping the index when the list has
// shrunk below it.
func (l *Listing) Derive(items []models.Category) Page {
	matches := Filter(items, l.query)
	count := PageCount(len(matches), l.size)
	l.clamp(count)

	return Page{
		Query:          l.query,
		Items:          PageSlice(matches, l.page, l.size),
		Matches:        matches,
		Index:          l.page,
		Count:          count,
		Total:          len(matches),
		HasPrev:        l.page > 0,
		HasNext:        l.page < count-1,
		ShowPagination: count > 1,
		Empty:          len(matches) == 0,
	}
}

func (l *Listing) clamp(count int) {
	if l.page > count-1 {
		l.page = count - 1
	}
	if l.page < 0 {
		l.page = 0
	}
}
