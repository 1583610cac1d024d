package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"   __                                 _     ",
	"  / _|___ _ __ ___   __ _ _ __ __ _ _ __ | |__  ",
	" | |_/ __| '_ ` _ \\ / _` | '__/ _` | '_ \\| '_ \\ ",
	" |  _\\__ \\ | | | | | (_| | | | (_| | |_) | | | |",
	" |_| |___/_| |_| |_|\\__, |_|  \\__,_| .__/|_| |_|",
	"                    |___/          |_|          ",
}

// Indigo to rose.
var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner writes the ASCII art banner followed by the version.
func PrintBanner(out *termenv.Output, version string) {
	fmt.Fprintln(out)
	for i, line := range bannerLines {
		fmt.Fprintln(out, out.String(line).Foreground(out.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(out, out.String("  "+version).Faint())
	fmt.Fprintln(out)
}

// NewOutput wraps w, forcing plain ASCII when color is false.
func NewOutput(w io.Writer, color bool) *termenv.Output {
	if !color {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w)
}
