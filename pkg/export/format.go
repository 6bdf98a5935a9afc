package export

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// Formats lists the export menu in display order.
var Formats = []Format{FormatSVG, FormatPNG, FormatJPEG, FormatCSV}

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "csv":
		return FormatCSV, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// IsImage reports whether the format goes through the chart renderer.
func (f Format) IsImage() bool {
	return f == FormatPNG || f == FormatJPEG || f == FormatSVG
}

func ContentType(f Format) string {
	switch f {
	case FormatCSV:
		return "text/csv;charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml;charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Filename is the download name of a signal analysis export.
func Filename(hostGene, targetGene string, windowSize int, f Format) string {
	return fmt.Sprintf("%s-%s-%d-pvalue-analysis.%s", hostGene, targetGene, windowSize, f)
}

// RecordFilename is the download name of a single record CSV.
func RecordFilename(hostGene, targetGene string) string {
	return fmt.Sprintf("protein_data_%s_%s.csv", hostGene, targetGene)
}

// Payload is a finished export, ready to be written or downloaded.
type Payload struct {
	Filename    string
	ContentType string
	Data        []byte
}
