package cmd

import (
	"fmt"
	"strings"

	"github.com/plexstream/plexstream/internal/media"
)

// formatMedia renders one listing row: id, display title, year, kind,
// and the vote average when one is known.
func formatMedia(m media.Media) string {
	row := fmt.Sprintf("%-12s %s (%s) [%s]", m.ID, m.DisplayTitle(), yearOf(m.Date()), m.Type)
	if m.VoteAverage > 0 {
		row += fmt.Sprintf("  %.1f", m.VoteAverage)
	}
	return row
}

func yearOf(date string) string {
	if len(date) < 4 {
		return "????"
	}
	return date[:4]
}

// formatDetails renders the full detail block for one title.
func formatDetails(d *media.MediaDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) [%s]\n", d.DisplayTitle(), yearOf(d.Date()), d.Type)
	if d.Tagline != "" {
		fmt.Fprintf(&b, "%s\n", d.Tagline)
	}
	fmt.Fprintf(&b, "\n%s\n", d.Overview)

	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintf(&b, "\nGenres:   %s\n", strings.Join(names, ", "))
	}
	if d.Type == media.TypeMovie && d.Runtime > 0 {
		fmt.Fprintf(&b, "Runtime:  %d min\n", d.Runtime)
	}
	if d.Type == media.TypeTV && d.NumberOfSeasons > 0 {
		fmt.Fprintf(&b, "Seasons:  %d\n", d.NumberOfSeasons)
	}
	if d.Status != "" {
		fmt.Fprintf(&b, "Status:   %s\n", d.Status)
	}
	if d.VoteAverage > 0 {
		fmt.Fprintf(&b, "Rating:   %.1f\n", d.VoteAverage)
	}

	fmt.Fprintf(&b, "Poster:   %s\n", media.ImageURL(d.PosterPath, media.ImageW500))

	if len(d.Credits.Cast) > 0 {
		b.WriteString("\nCast:\n")
		for i, member := range d.Credits.Cast {
			if i == 5 {
				break
			}
			line := "  " + member.Name
			if member.Character != "" {
				line += " as " + member.Character
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// printMediaList prints a titled row of listing entries.
func printMediaList(title string, records []media.Media) {
	fmt.Printf("%s\n%s\n", title, strings.Repeat("-", len(title)))
	if len(records) == 0 {
		fmt.Println("  (nothing found)")
	}
	for _, m := range records {
		fmt.Println("  " + formatMedia(m))
	}
	fmt.Println()
}
