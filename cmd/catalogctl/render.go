package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/client"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#C28E0E", Dark: "#E5C07B"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	typeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	vipStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)
)

const dateLayout = "2006-01-02"

func renderSnapshot(w io.Writer, snap client.Snapshot) {
	if !snap.HasEntry {
		fmt.Fprintln(w, dimStyle.Render("No results."))
		return
	}
	e := snap.Entry

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s · page %d/%d · %d total", snap.ContentType, e.CurrentPage, e.TotalPages, e.Total)))
	if snap.Stale {
		fmt.Fprintln(w, warnStyle.Render("showing cached results that may be out of date"))
	}

	for i, r := range e.Links {
		fmt.Fprintf(w, "%3d. %s %s %s\n", i+1, titleStyle.Render(r.Name), renderType(r.ContentType), dimStyle.Render(renderDate(r)))
	}

	if len(e.Categories) > 0 {
		fmt.Fprintln(w, dimStyle.Render("categories: "+strings.Join(e.Categories, ", ")))
	}
	if e.HasMore {
		fmt.Fprintln(w, dimStyle.Render("more available: catalogctl more --type "+string(snap.ContentType)))
	}
}

func renderCacheLine(w io.Writer, key domain.ContentType, e client.Entry, fresh bool, now time.Time) {
	state := typeStyle.Render("fresh")
	if !fresh {
		state = warnStyle.Render("stale")
	}
	age := now.Sub(e.FetchedAt).Truncate(time.Second)
	fmt.Fprintf(w, "%-12s %s %d links, page %d/%d, %s old\n", key, state, len(e.Links), e.CurrentPage, e.TotalPages, age)
}

func renderType(ct string) string {
	if ct == "" {
		return ""
	}
	if domain.ContentType(ct).IsVip() {
		return vipStyle.Render("[" + ct + "]")
	}
	return typeStyle.Render("[" + ct + "]")
}

func renderDate(r domain.ContentRecord) string {
	t := r.SortTime()
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
