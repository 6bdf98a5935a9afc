package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/yumyai/protview/pkg/model"
)

const (
	chartWidth  = 960
	chartHeight = 540

	// Raster exports are captured at twice the on-screen size.
	rasterScale = 2

	jpegQuality = 92
)

var rollingMeanColor = drawing.ColorFromHex("2563eb")

// ChartRequest describes one p-value chart.
type ChartRequest struct {
	HostGene   string
	TargetGene string
	Title      string
	WindowSize int
	Points     []model.SignalPoint
	Format     Format
}

// RenderChart draws the rolling mean of req.Points and encodes it in
// req.Format. An error means nothing was produced.
func RenderChart(ctx context.Context, req ChartRequest) (Payload, error) {
	if !req.Format.IsImage() {
		return Payload{}, fmt.Errorf("%w: %q is not an image format", ErrUnknownFormat, req.Format)
	}
	if err := ctx.Err(); err != nil {
		return Payload{}, err
	}

	scale := 1
	if req.Format != FormatSVG {
		scale = rasterScale
	}

	ch := buildChart(req, scale)

	var (
		buf bytes.Buffer
		err error
	)
	switch req.Format {
	case FormatSVG:
		err = ch.Render(chart.SVG, &buf)
	default:
		err = ch.Render(chart.PNG, &buf)
	}
	if err != nil {
		return Payload{}, fmt.Errorf("render %s chart: %w", req.Format, err)
	}

	data := buf.Bytes()
	if req.Format == FormatJPEG {
		if data, err = pngToJPEG(data); err != nil {
			return Payload{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return Payload{}, err
	}

	return Payload{
		Filename:    Filename(req.HostGene, req.TargetGene, req.WindowSize, req.Format),
		ContentType: ContentType(req.Format),
		Data:        data,
	}, nil
}

func buildChart(req ChartRequest, scale int) chart.Chart {
	xs := make([]float64, 0, len(req.Points))
	ys := make([]float64, 0, len(req.Points))
	for _, p := range req.Points {
		if p.Smoothed == nil {
			continue
		}
		xs = append(xs, float64(p.Position))
		ys = append(ys, *p.Smoothed)
	}
	// With no smoothed values the series stays empty: axes and legend only.

	maxX := float64(len(req.Points))
	if maxX < 2 {
		maxX = 2
	}

	s := float64(scale)
	ch := chart.Chart{
		Title:  req.Title,
		Width:  chartWidth * scale,
		Height: chartHeight * scale,
		DPI:    chart.DefaultDPI * s,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   chart.Box{Top: 20 * scale, Left: 20 * scale, Right: 30 * scale, Bottom: 70 * scale},
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite},
		XAxis: chart.XAxis{
			Name:  "Position",
			Range: &chart.ContinuousRange{Min: 1, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:  "P-Value",
			Range: &chart.ContinuousRange{Min: 0, Max: 12},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Rolling Mean",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: rollingMeanColor,
					StrokeWidth: 2 * s,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch
}

// pngToJPEG flattens the PNG onto white, since JPEG has no alpha.
func pngToJPEG(data []byte) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode chart png: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Over)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode chart jpeg: %w", err)
	}
	return out.Bytes(), nil
}
