package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yumyai/protview/pkg/model"
)

var recordHeader = []string{
	"Host Gene Name",
	"Target Gene Name",
	"Sequence Description",
	"Host Gene Sequence",
	"Target Gene Sequence",
	"Frame Status",
	"Analysis Status",
}

// RecordCSV exports one record as a header row plus one data row. Every
// cell is wrapped in double quotes, unescaped, matching earlier exports.
func RecordCSV(rec model.Record) Payload {
	desc := rec.SequenceDescription
	if desc == "" {
		desc = "N/A"
	}

	values := []string{
		rec.HostGeneName,
		rec.TargetGeneName,
		desc,
		rec.HostSequence,
		rec.TargetSequence,
		rec.FrameStatus(),
		rec.AnalysisStatus(),
	}

	var b strings.Builder
	for i, row := range [][]string{recordHeader, values} {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(joinQuoted(row))
	}

	return Payload{
		Filename:    RecordFilename(rec.HostGeneName, rec.TargetGeneName),
		ContentType: ContentType(FormatCSV),
		Data:        []byte(b.String()),
	}
}

func joinQuoted(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ",")
}

// SignalCSV exports a signal series. Cells are not quoted; numbers have two
// decimals and a missing rolling mean is written as N/A.
func SignalCSV(hostGene, targetGene string, windowSize int, points []model.SignalPoint) Payload {
	var b strings.Builder
	b.WriteString(strings.Join([]string{
		"Position",
		"Amino Acid",
		"Raw P-Value",
		fmt.Sprintf("Rolling Mean (Window Size: %d)", windowSize),
	}, ","))

	for _, p := range points {
		mean := "N/A"
		if p.Smoothed != nil {
			mean = formatValue(*p.Smoothed)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			strconv.Itoa(p.Position),
			p.Symbol,
			formatValue(p.RawValue),
			mean,
		}, ","))
	}

	return Payload{
		Filename:    Filename(hostGene, targetGene, windowSize, FormatCSV),
		ContentType: ContentType(FormatCSV),
		Data:        []byte(b.String()),
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
