package export

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/yumyai/protview/pkg/model"
)

func sampleRecord() model.Record {
	return model.Record{
		HostGeneName:   "SCEL",
		TargetGeneName: "ABCC4",
		HostSequence:   "MKVLAAGIVALLLAAGCSSSKEETPKT",
		TargetSequence: "ARNDCEQGHILKMFPSTWYV",
	}
}

func TestExport_PNGAtDoubleScale(t *testing.T) {
	p, err := Export(context.Background(), sampleRecord(), model.SideHost, 5, FormatPNG)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if p.Filename != "SCEL-ABCC4-5-pvalue-analysis.png" || p.ContentType != "image/png" {
		t.Fatalf("unexpected payload meta %q %q", p.Filename, p.ContentType)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != chartWidth*rasterScale || cfg.Height != chartHeight*rasterScale {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestExport_JPEG(t *testing.T) {
	p, err := Export(context.Background(), sampleRecord(), model.SideTarget, 3, FormatJPEG)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := jpeg.DecodeConfig(bytes.NewReader(p.Data)); err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if p.Filename != "SCEL-ABCC4-3-pvalue-analysis.jpeg" {
		t.Fatalf("unexpected filename %q", p.Filename)
	}
}

func TestExport_SVG(t *testing.T) {
	p, err := Export(context.Background(), sampleRecord(), model.SideHost, 5, FormatSVG)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(p.Data), "<svg") {
		t.Fatalf("expected svg markup, got %q", p.Data[:min(len(p.Data), 64)])
	}
}

func TestExport_CSV(t *testing.T) {
	p, err := Export(context.Background(), sampleRecord(), model.SideTarget, 20, FormatCSV)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(string(p.Data), "\n")
	if len(lines) != 21 {
		t.Fatalf("expected 21 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[19], ",N/A") {
		t.Fatalf("position 19 should be N/A, got %q", lines[19])
	}
	if lines[20] != "20,V,6.02,6.05" {
		t.Fatalf("unexpected last row %q", lines[20])
	}
}

// A window longer than the sequence still gives the empty fixed-axis chart.
func TestRenderChart_WindowLongerThanSequence(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		window int
	}{
		{"short sequence", "AKR", 5},
		{"empty sequence", "", 1},
	}

	for _, tt := range tests {
		for _, f := range []Format{FormatPNG, FormatJPEG, FormatSVG} {
			t.Run(tt.name+"/"+string(f), func(t *testing.T) {
				rec := sampleRecord()
				rec.HostSequence = tt.seq

				p, err := Export(context.Background(), rec, model.SideHost, tt.window, f)
				if err != nil {
					t.Fatalf("export: %v", err)
				}
				if len(p.Data) == 0 {
					t.Fatalf("expected a chart payload")
				}
				if p.Filename != Filename(rec.HostGeneName, rec.TargetGeneName, tt.window, f) {
					t.Errorf("unexpected filename %q", p.Filename)
				}
			})
		}
	}
}

func TestRenderChart_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderChart(ctx, ChartRequest{
		Format: FormatSVG,
		Points: model.BuildSignal("AAAA", 1),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderChart_RejectsCSV(t *testing.T) {
	_, err := RenderChart(context.Background(), ChartRequest{Format: FormatCSV})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
