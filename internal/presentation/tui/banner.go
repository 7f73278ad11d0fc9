package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the server start banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []termenv.Style{
		termenv.String(" _  _____ ___ ").Foreground(p.Color("#38bdf8")),
		termenv.String("| |/ / __| __|").Foreground(p.Color("#60a5fa")),
		termenv.String("| ' <| _|| _| ").Foreground(p.Color("#818cf8")),
		termenv.String("|_|\\_\\___|_|   schema " + version).Foreground(p.Color("#a78bfa")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}
