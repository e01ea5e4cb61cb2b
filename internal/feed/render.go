// internal/feed/render.go

// Package feed renders a user's activity feed. Rendering is a pure output
// concern: it takes the ordered entries RetrieveFeed produced and writes
// them one per line.
package feed

import (
	"fmt"
	"io"
)

// EmptyMessage is printed when there is nothing to show.
const EmptyMessage = "No activities to show in the feed."

// Render writes each feed entry on its own line, or EmptyMessage if the
// feed is empty.
func Render(w io.Writer, entries []string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	for _, entry := range entries {
		fmt.Fprintln(w, entry)
	}
}
