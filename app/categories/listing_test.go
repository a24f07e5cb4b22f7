package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/neo-admin/models"
)

func names(items []models.Category) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Name
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []models.Category{
		{ID: "1", Name: "Electronics", Details: "Phones and laptops"},
		{ID: "2", Name: "Books", Details: "Paper and ELECTRONIC books"},
		{ID: "3", Name: "Garden", Details: "Outdoor"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Electronics", "Books", "Garden"}},
		{"electr", []string{"Electronics", "Books"}},
		{"GARDEN", []string{"Garden"}},
		{"laptops", []string{"Electronics"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(items, tt.query)))
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 4))
	assert.Equal(t, 1, PageCount(4, 4))
	assert.Equal(t, 2, PageCount(5, 4))
	assert.Equal(t, 3, PageCount(10, 4))
	assert.Equal(t, 0, PageCount(10, 0))
}

func TestPageSlice(t *testing.T) {
	items := sampleCategories(10)

	assert.Len(t, PageSlice(items, 0, 4), 4)
	assert.Len(t, PageSlice(items, 2, 4), 2)
	assert.Empty(t, PageSlice(items, 3, 4))
	assert.Empty(t, PageSlice(items, -1, 4))
}

func TestListing_TenItemsPaginateFourFourTwo(t *testing.T) {
	items := sampleCategories(10)
	l := NewListing(0)

	page := l.Derive(items)
	first := page.Items
	assert.Equal(t, 0, page.Index)
	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Items, 4)
	assert.Len(t, page.Matches, 10)
	assert.True(t, page.ShowPagination)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)

	require.True(t, l.Next(items))
	assert.Len(t, l.Derive(items).Items, 4)

	require.True(t, l.Next(items))
	page = l.Derive(items)
	assert.Equal(t, 2, page.Index)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, []string{"Category 09", "Category 10"}, names(page.Items))
	assert.False(t, page.HasNext)

	assert.False(t, l.Next(items), "next never wraps")
	assert.Equal(t, 2, l.PageIndex())

	require.True(t, l.Prev())
	assert.Equal(t, 1, l.Derive(items).Index)

	require.True(t, l.Prev())
	assert.Equal(t, first, l.Derive(items).Items, "first page unchanged after next, next, prev, prev")
}

func TestListing_PagesPartitionMatches(t *testing.T) {
	for _, query := range []string{"", "category 1", "details for"} {
		for n := 0; n <= 13; n++ {
			for size := 1; size <= 5; size++ {
				items := sampleCategories(n)
				want := Filter(items, query)
				l := NewListing(size)
				l.SetQuery(query)

				var got []models.Category
				page := l.Derive(items)
				for {
					if page.Index < page.Count-1 {
						assert.Len(t, page.Items, size, "n=%d size=%d page=%d", n, size, page.Index)
					} else if page.Count > 0 {
						assert.GreaterOrEqual(t, len(page.Items), 1)
						assert.LessOrEqual(t, len(page.Items), size)
					}
					got = append(got, page.Items...)
					if !l.Next(items) {
						break
					}
					page = l.Derive(items)
				}

				assert.Equal(t, PageCount(len(want), size), page.Count, "n=%d size=%d", n, size)
				assert.Equal(t, names(want), names(got), "q=%q n=%d size=%d", query, n, size)
			}
		}
	}
}

func TestListing_PrevAtFirstPage(t *testing.T) {
	l := NewListing(4)
	assert.False(t, l.Prev())
	assert.Equal(t, 0, l.PageIndex())
}

func TestListing_SetQueryResetsPage(t *testing.T) {
	items := sampleCategories(10)
	l := NewListing(4)
	l.Next(items)
	l.Next(items)

	l.SetQuery("category 1")

	page := l.Derive(items)
	assert.Equal(t, 0, page.Index)
	assert.Equal(t, "category 1", page.Query)
	assert.Equal(t, []string{"Category 10"}, names(page.Matches))
	assert.False(t, page.ShowPagination)
}

func TestListing_EmptyResult(t *testing.T) {
	l := NewListing(4)
	l.SetQuery("nothing matches this")

	page := l.Derive(sampleCategories(3))

	assert.True(t, page.Empty)
	assert.Equal(t, 0, page.Count)
	assert.Equal(t, 0, page.Index)
	assert.Empty(t, page.Items)
	assert.False(t, page.ShowPagination)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestListing_SinglePageHidesPagination(t *testing.T) {
	page := NewListing(4).Derive(sampleCategories(4))

	assert.False(t, page.ShowPagination)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, 4, page.Total)
}

func TestListing_DeriveClampsAfterShrink(t *testing.T) {
	l := NewListing(4)
	items := sampleCategories(10)
	l.Next(items)
	l.Next(items)

	page := l.Derive(sampleCategories(5))

	assert.Equal(t, 1, page.Index)
	assert.Equal(t, []string{"Category 05"}, names(page.Items))
}

func TestListing_Goto(t *testing.T) {
	items := sampleCategories(10)
	l := NewListing(4)

	l.Goto(items, 1)
	assert.Equal(t, 1, l.PageIndex())

	l.Goto(items, 99)
	assert.Equal(t, 2, l.PageIndex())

	l.Goto(items, -3)
	assert.Equal(t, 0, l.PageIndex())
}

func TestListing_CustomPageSize(t *testing.T) {
	l := NewListing(3)
	page := l.Derive(sampleCategories(10))

	assert.Equal(t, 3, l.PageSize())
	assert.Equal(t, 4, page.Count)
}
