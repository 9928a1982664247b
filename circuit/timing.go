//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/yao/p2p"
)

// FileSize specifies a data transfer size in bytes.
type FileSize uint64

func (s FileSize) String() string {
	if s > 1000*1000*1000 {
		return fmt.Sprintf("%d GB", s/(1000*1000*1000))
	} else if s > 1000*1000 {
		return fmt.Sprintf("%d MB", s/(1000*1000))
	} else if s > 1000 {
		return fmt.Sprintf("%d kB", s/1000)
	}
	return fmt.Sprintf("%d B", s)
}

// Timing records timing samples of protocol phases and renders a
// profiling report.
type Timing struct {
	Start   time.Time
	Samples []*Sample
}

// NewTiming creates a new Timing instance.
func NewTiming() *Timing {
	return &Timing{
		Start: time.Now(),
	}
}

// Sample adds a timing sample ending now.
func (t *Timing) Sample(label string, cols []string) *Sample {
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	sample := &Sample{
		Label: label,
		Start: start,
		End:   time.Now(),
		Cols:  cols,
	}
	t.Samples = append(t.Samples, sample)
	return sample
}

// Total returns the duration from start to the last sample.
func (t *Timing) Total() time.Duration {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].End.Sub(t.Start)
}

// Print prints the profiling report.
func (t *Timing) Print(out io.Writer, stats p2p.IOStats) {
	if len(t.Samples) == 0 {
		return
	}

	sent := stats.Sent.Load()
	received := stats.Recvd.Load()

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)
	tab.Header("Xfer").SetAlign(tabulate.MR)

	total := t.Total()
	for _, sample := range t.Samples {
		row := tab.Row()
		row.Column(sample.Label)

		duration := sample.End.Sub(sample.Start)
		row.Column(duration.String())
		row.Column(percent(duration, total))

		for _, col := range sample.Cols {
			row.Column(col)
		}
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)
	row.Column(FileSize(sent + received).String()).SetFormat(tabulate.FmtBold)

	row = tab.Row()
	row.Column("├╴Sent").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column("")
	row.Column(FileSize(sent).String()).SetFormat(tabulate.FmtItalic)

	row = tab.Row()
	row.Column("╰╴Rcvd").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column("")
	row.Column(FileSize(received).String()).SetFormat(tabulate.FmtItalic)

	tab.Print(out)
}

func percent(d, total time.Duration) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(d)/float64(total)*100)
}

// Sample contains information about one timing sample.
type Sample struct {
	Label string
	Start time.Time
	End   time.Time
	Cols  []string
}
