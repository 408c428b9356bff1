package sweep

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mentora-io/assetgc/internal/registry"
)

// Report summarizes one sweep run.
type Report struct {
	RunID        string
	DryRun       bool
	DocsScanned  int
	RefsKnown    int
	AssetsListed int
	Candidates   int
	Excluded     int
	TotalBytes   int64

	// NewlyRecorded is the number of candidates the registry had not seen
	// before. Always zero in a dry run.
	NewlyRecorded int64

	// Samples holds the first candidates up to the configured sample limit,
	// for the human-readable report.
	Samples []registry.OrphanCandidate

	Elapsed time.Duration
}

// Write renders the report for an operator.
func (r Report) Write(w io.Writer) {
	mode := "sweep"
	if r.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(w, "%s %s completed in %s\n", mode, r.RunID, r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  documents scanned:  %s\n", humanize.Comma(int64(r.DocsScanned)))
	fmt.Fprintf(w, "  references known:   %s\n", humanize.Comma(int64(r.RefsKnown)))
	fmt.Fprintf(w, "  assets listed:      %s\n", humanize.Comma(int64(r.AssetsListed)))
	fmt.Fprintf(w, "  excluded:           %s\n", humanize.Comma(int64(r.Excluded)))
	fmt.Fprintf(w, "  orphan candidates:  %s (%s)\n", humanize.Comma(int64(r.Candidates)), humanize.IBytes(uint64(r.TotalBytes)))
	if !r.DryRun {
		fmt.Fprintf(w, "  newly recorded:     %s\n", humanize.Comma(r.NewlyRecorded))
	}

	if len(r.Samples) == 0 {
		return
	}
	if len(r.Samples) < r.Candidates {
		fmt.Fprintf(w, "\nfirst %d candidates:\n", len(r.Samples))
	} else {
		fmt.Fprintf(w, "\ncandidates:\n")
	}
	for _, c := range r.Samples {
		age := ""
		if !c.StoreCreatedAt.IsZero() {
			age = ", uploaded " + humanize.Time(c.StoreCreatedAt)
		}
		fmt.Fprintf(w, "  %-12s %s (%s, %s%s)\n",
			c.Classification, c.ID, c.Kind, humanize.IBytes(uint64(c.Bytes)), age)
	}
}
