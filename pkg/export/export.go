package export

import (
	"context"
	"fmt"

	"github.com/yumyai/protview/pkg/model"
)

// Export builds the signal analysis of one side of rec in the requested
// format. CSV goes through SignalCSV, everything else through RenderChart.
func Export(ctx context.Context, rec model.Record, side model.Side, windowSize int, f Format) (Payload, error) {
	if windowSize < 1 {
		windowSize = 1
	}
	points := model.BuildSignal(rec.Sequence(side), windowSize)

	switch {
	case f == FormatCSV:
		return SignalCSV(rec.HostGeneName, rec.TargetGeneName, windowSize, points), nil
	case f.IsImage():
		return RenderChart(ctx, ChartRequest{
			HostGene:   rec.HostGeneName,
			TargetGene: rec.TargetGeneName,
			Title:      side.Title() + " P-Value Analysis",
			WindowSize: windowSize,
			Points:     points,
			Format:     f,
		})
	default:
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
