package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`      _        _                            `, "#818cf8"},
	{`  ___| |_ __ _| |_ ___ _ __  _ __ ___  _ __  `, "#a78bfa"},
	{` / __| __/ _' | __/ _ \ '_ \| '__/ _ \| '_ \ `, "#c084fc"},
	{` \__ \ || (_| | ||  __/ |_) | | | (_) | |_) |`, "#e879f9"},
	{` |___/\__\__,_|\__\___| .__/|_|  \___/| .__/ `, "#f472b6"},
	{`                      |_|             |_|    `, "#fb7185"},
}

// PrintBanner writes the stateprop banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}

// Verdict formats the one-line outcome of a check.
func Verdict(w io.Writer, model string, passed bool, cycles int) {
	out := termenv.NewOutput(w)
	if passed {
		fmt.Fprintf(w, "%s %s: %d cycles passed\n", out.String("PASS").Foreground(out.Color("#4ade80")).Bold(), model, cycles)
		return
	}
	fmt.Fprintf(w, "%s %s: failed in cycle %d\n", out.String("FAIL").Foreground(out.Color("#f87171")).Bold(), model, cycles)
}
