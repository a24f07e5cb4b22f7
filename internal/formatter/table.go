package formatter

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joefazee/neo-admin/models"
)

const (
	// EmptyMessage is shown instead of a table when nothing matches.
	EmptyMessage   = "No categories found"
	detailsColumn  = 48
	nameColumn     = 32
	tabPadding     = 2
	tabMinWidth    = 0
	tabTabWidth    = 8
	tabPaddingChar = ' '
)

// CategoryTable writes one row per category. offset numbers rows so they
// match the position in a paginated listing.
func CategoryTable(w io.Writer, items []models.Category, offset int, now time.Time) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, tabMinWidth, tabTabWidth, tabPadding, tabPaddingChar, 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tSUB-CATEGORIES\tDETAILS\tUPDATED")
	for i := range items {
		c := &items[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			offset+i+1,
			c.ID,
			Truncate(c.Name, nameColumn),
			c.SubCategoryCount(),
			Truncate(c.Details, detailsColumn),
			RelativeTime(c.UpdatedAt, now),
		)
	}
	return tw.Flush()
}

// PageFooter describes the position in a paginated listing. It is empty when
// there is a single page.
func PageFooter(index, count, total int) string {
	if count <= 1 {
		return ""
	}
	return fmt.Sprintf("Page %d of %d (%s)", index+1, count, Plural(total, "category", "categories"))
}

// CategoryDetail writes every field of a single category.
func CategoryDetail(w io.Writer, c *models.Category, now time.Time) error {
	tw := tabwriter.NewWriter(w, tabMinWidth, tabTabWidth, tabPadding, tabPaddingChar, 0)
	rows := [][2]string{
		{"ID", c.ID},
		{"Name", c.Name},
		{"Slug", orDash(c.Slug)},
		{"Details", orDash(c.Details)},
		{"Sub-categories", strconv.Itoa(c.SubCategoryCount())},
		{"Icon", mediaLabel(c.Icon)},
		{"Image", mediaLabel(c.Image)},
		{"Banner", mediaLabel(c.BannerImg)},
		{"Created", RelativeTime(c.CreatedAt, now)},
		{"Updated", RelativeTime(c.UpdatedAt, now)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func mediaLabel(m models.Media) string {
	switch m.Kind {
	case models.MediaRemote:
		if m.Name != "" {
			return m.Name + " <" + m.URL + ">"
		}
		return m.URL
	case models.MediaUploaded:
		return m.Name + " (pending upload)"
	default:
		return "-"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
