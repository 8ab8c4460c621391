package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about a progressive pass
type RenderStats struct {
	PassNumber     int
	CameraRays     int           // Rays fired by the camera in this pass
	PathsAdded     int           // Paths that hit something in this pass
	TotalPaths     int           // Paths accumulated since the last reset
	LinesDrawn     int           // Lines rasterized since the last reset
	Coverage       float64       // Fraction of pixels that received light
	Peak           float64       // Largest accumulated channel value
	PassDuration   time.Duration // Time spent in this pass
	ElapsedTime    time.Duration // Time since the first pass
	PathLength     int
	Exposure       float64
	PureImportance bool
}

// HitRate returns the fraction of camera rays that produced a path
func (s RenderStats) HitRate() float64 {
	if s.CameraRays == 0 {
		return 0
	}
	return float64(s.PathsAdded) / float64(s.CameraRays)
}

// FormatStatsTable renders per-pass statistics as a text table
func FormatStatsTable(stats []RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Camera rays", "Hit rate", "Paths", "Lines", "Coverage", "Pass time"})

	for _, stat := range stats {
		table.Append([]string{
			fmt.Sprintf("%d", stat.PassNumber),
			fmt.Sprintf("%d", stat.CameraRays),
			fmt.Sprintf("%02.1f %%", stat.HitRate()*100),
			fmt.Sprintf("%d", stat.TotalPaths),
			fmt.Sprintf("%d", stat.LinesDrawn),
			fmt.Sprintf("%02.1f %%", stat.Coverage*100),
			stat.PassDuration.Round(time.Microsecond).String(),
		})
	}

	if len(stats) > 0 {
		last := stats[len(stats)-1]
		table.SetFooter([]string{"", "", "", "", "", "TOTAL", last.ElapsedTime.Round(time.Microsecond).String()})
	}

	table.Render()
	return buf.String()
}
