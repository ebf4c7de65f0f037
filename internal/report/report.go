// Package report renders run results as tables.
package report

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	"github.com/spaolacci/murmur3"

	"github.com/pshcalc/pshcalc/internal/app"
	"github.com/pshcalc/pshcalc/internal/config"
)

// Fingerprint hashes a raw table with 64-bit murmur3. Equal tables have
// equal fingerprints; it is a compact label for listings, not an
// isomorphism invariant.
func Fingerprint(tbl []int) uint64 {
	h := murmur3.New64()
	buf := make([]byte, 0, 8*len(tbl))
	for _, v := range tbl {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	// hash.Hash writes never fail.
	_, _ = h.Write(buf)
	return h.Sum64()
}

// Write renders the summary of res, its rejection breakdown and, when
// present, the listing.
func Write(w io.Writer, res *app.Result) error {
	if res == nil {
		return fmt.Errorf("attempt to write nil result")
	}

	writeSummary(w, res)

	if len(res.Rejections) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		writeRejections(w, res)
	}

	if len(res.Listing) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		writeListing(w, res)
	}
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	// Don't uppercase the header values.
	t.Style().Format.Header = text.FormatDefault
	return t
}

func writeSummary(w io.Writer, res *app.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"field", "value"})
	t.AppendRow(table.Row{"run", res.RunID})
	t.AppendRow(table.Row{"job", res.Job})
	t.AppendRow(table.Row{"params", res.Description})
	t.AppendRow(table.Row{foundLabel(res.Job), res.Found})

	switch res.Job {
	case config.JobSemigroups:
		t.AppendRow(table.Row{"with identity", res.WithIdentity})
	case config.JobActs, config.JobCategories:
		if res.Inner > 0 {
			t.AppendRow(table.Row{innerLabel(res.Job), res.Inner})
			t.AppendRow(table.Row{"average", formatFloat(res.Average)})
		}
	case config.JobTriples:
		t.AppendRow(table.Row{"composable triples", res.Inner})
		t.AppendRow(table.Row{"average", formatFloat(res.Average)})
		t.AppendRow(table.Row{"estimate m³/o²", formatFloat(res.Estimate)})
	}

	t.AppendRow(table.Row{"candidates", res.Visited})
	t.AppendRow(table.Row{"duration", res.Duration.String()})
	if res.Cancelled {
		t.AppendRow(table.Row{"status", "cancelled (partial counts)"})
	}
	t.Render()
}

func writeRejections(w io.Writer, res *app.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"rejected by", "count"})
	for _, r := range res.Rejections {
		t.AppendRow(table.Row{r.Code, r.Count})
	}
	t.Render()
}

func writeListing(w io.Writer, res *app.Result) {
	t := newTable(w)
	header := table.Row{"#", "table", "fingerprint"}
	withDetail := res.Listing[0].Detail != ""
	if withDetail {
		header = append(header, "detail")
	}
	t.AppendHeader(header)

	for i, e := range res.Listing {
		row := table.Row{i, formatTable(e.Table), fmt.Sprintf("%016x", Fingerprint(e.Table))}
		if withDetail {
			row = append(row, e.Detail)
		}
		t.AppendRow(row)
	}
	t.Render()
}

func foundLabel(job config.JobKind) string {
	switch job {
	case config.JobSemigroups:
		return "associative operations"
	case config.JobMonoids, config.JobActs:
		return "monoids"
	case config.JobCategories:
		return "categories"
	case config.JobTriples:
		return "pairs (s, t)"
	}
	return "found"
}

func innerLabel(job config.JobKind) string {
	if job == config.JobActs {
		return "acts"
	}
	return "presheaves"
}

func formatTable(tbl []int) string {
	parts := make([]string, len(tbl))
	for i, v := range tbl {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
