//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/yao/p2p"
)

func TestTiming(t *testing.T) {
	timing := NewTiming()
	timing.Sample("Garble", []string{"5"})
	timing.Sample("OT", nil)

	if len(timing.Samples) != 2 {
		t.Fatalf("got %d samples", len(timing.Samples))
	}
	if timing.Samples[1].Start != timing.Samples[0].End {
		t.Errorf("samples are not contiguous")
	}
	if timing.Total() < timing.Samples[0].End.Sub(timing.Start) {
		t.Errorf("total %v too small", timing.Total())
	}

	stats := p2p.NewIOStats()
	stats.Sent.Store(1500)
	stats.Recvd.Store(20)

	var buf bytes.Buffer
	timing.Print(&buf, stats)
	out := buf.String()
	for _, s := range []string{"Garble", "OT", "Total", "1 kB", "20 B"} {
		if !strings.Contains(out, s) {
			t.Errorf("report does not contain %q:\n%s", s, out)
		}
	}
}

func TestFileSize(t *testing.T) {
	tests := map[FileSize]string{
		999:             "999 B",
		1500:            "1 kB",
		2 * 1000 * 1001: "2 MB",
	}
	for size, expected := range tests {
		if s := size.String(); s != expected {
			t.Errorf("FileSize(%d) = %q, expected %q", uint64(size), s, expected)
		}
	}
}
