package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/valyala/quicktemplate"
)

func formatNumber(v float64) string {
	return humanize.FtoaWithDigits(v, 3)
}

func renderTable(w io.Writer, frames []Frame) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"t", "state", "value", "progress", "tweening", "events"})
	for _, f := range frames {
		table.Append([]string{
			humanize.Commaf(f.T),
			formatNumber(f.State),
			formatNumber(f.Value),
			strconv.FormatFloat(f.Progress*100, 'f', 1, 64) + "%",
			strconv.FormatBool(f.Tweening),
			strings.Join(f.Events, ", "),
		})
	}
	table.Render()
}

// renderJSONL writes one JSON object per frame.
func renderJSONL(w io.Writer, frames []Frame) {
	qw := quicktemplate.AcquireWriter(w)
	defer quicktemplate.ReleaseWriter(qw)

	out := qw.N()
	for _, f := range frames {
		out.S(`{"t":`)
		out.F(f.T)
		out.S(`,"state":`)
		out.F(f.State)
		out.S(`,"value":`)
		out.F(f.Value)
		out.S(`,"progress":`)
		out.FPrec(f.Progress, 4)
		out.S(`,"tweening":`)
		out.S(strconv.FormatBool(f.Tweening))
		out.S(`,"events":[`)
		for i, e := range f.Events {
			if i > 0 {
				out.S(",")
			}
			out.Q(e)
		}
		out.S("]}\n")
	}
}

func renderDump(w io.Writer, frames []Frame) {
	spew.Fdump(w, frames)
}
