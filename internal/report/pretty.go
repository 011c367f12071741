// Package report renders analysis results for the terminal. Library
// packages never print; everything user-facing funnels through here.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stencil/internal/driver"
)

type Options struct {
	Color bool
	Quiet bool
	// Width bounds path columns; zero means no truncation.
	Width int
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// Dump writes the kernel header and the canonical tree projection.
func Dump(w io.Writer, res *driver.Result, opts Options) {
	if !opts.Quiet {
		fmt.Fprintln(w, header(res, opts))
	}
	fmt.Fprintln(w, res.AST)
}

// Sections writes one line per section: the loop tuple and its
// expression count.
func Sections(w io.Writer, res *driver.Result, opts Options) {
	if !opts.Quiet {
		fmt.Fprintln(w, header(res, opts))
	}
	for i, sec := range res.Sections {
		dims := strings.Join(sec.Dims, ", ")
		if dims == "" {
			dims = "<top level>"
		}
		fmt.Fprintf(w, "section %d: (%s) exprs=%d\n", i, dims, sec.Exprs)
	}
}

// Symbols writes the first-occurrence symbol list.
func Symbols(w io.Writer, res *driver.Result, opts Options) {
	if !opts.Quiet {
		fmt.Fprintln(w, header(res, opts))
	}
	for _, s := range res.Symbols {
		fmt.Fprintln(w, s)
	}
}

// Perfect writes the perfect-nest verdict.
func Perfect(w io.Writer, res *driver.Result, opts Options) {
	verdict := "not perfect"
	if res.Perfect {
		verdict = "perfect"
	}
	if opts.Color {
		c := color.New(color.FgRed)
		if res.Perfect {
			c = color.New(color.FgGreen)
		}
		verdict = c.Sprint(verdict)
	}
	fmt.Fprintf(w, "%s: %s\n", res.Name, verdict)
}

// Summary writes one line per analyzed manifest.
func Summary(w io.Writer, results []*driver.Result, opts Options) {
	for _, res := range results {
		status := "built"
		if res.FromCache {
			status = "cached"
		}
		if opts.Color {
			status = color.New(color.FgCyan).Sprint(status)
		}
		path := res.Path
		if opts.Width > 0 {
			path = truncate(path, opts.Width)
		}
		fmt.Fprintf(w, "%s %s (%d sections, %d symbols)\n",
			status, path, len(res.Sections), len(res.Symbols))
	}
}

func header(res *driver.Result, opts Options) string {
	h := fmt.Sprintf("kernel %s (%s)", res.Name, res.Path)
	if res.FromCache {
		h += " [cached]"
	}
	if opts.Color {
		return headerStyle.Render(h)
	}
	return h
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
