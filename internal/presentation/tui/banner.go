package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` __     __                                 `, "#38bdf8"},
	{` \ \   / /__  _   _  __ _  __ _  ___ _ __ `, "#22d3ee"},
	{`  \ \ / / _ \| | | |/ _' |/ _' |/ _ \ '__|`, "#2dd4bf"},
	{`   \ V / (_) | |_| | (_| | (_| |  __/ |   `, "#34d399"},
	{`    \_/ \___/ \__, |\__,_|\__, |\___|_|   `, "#4ade80"},
	{`              |___/       |___/           `, "#a3e635"},
}

// PrintBanner writes the Voyager banner to w, colored when w is a terminal.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
