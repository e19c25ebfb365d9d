package resumekit

import (
	"fmt"
	"strconv"
	"strings"
)

// Zoom is a preview zoom level in percent of native size. Zooming is a
// display transform only; it never recomposes the document.
type Zoom int

// Zoom bounds and step.
const (
	MinZoom     Zoom = 50
	MaxZoom     Zoom = 200
	ZoomStep    Zoom = 25
	DefaultZoom Zoom = 100
)

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z Zoom) Zoom {
	return max(MinZoom, min(MaxZoom, z))
}

// ParseZoom parses a zoom level, snapping it to the nearest step and
// clamping it. Invalid input yields DefaultZoom.
func ParseZoom(s string) Zoom {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return DefaultZoom
	}
	n = max(int(MinZoom), min(int(MaxZoom), n))
	step := int(ZoomStep)
	snapped := ((n + step/2) / step) * step
	return ClampZoom(Zoom(snapped))
}

// In returns the next larger zoom level.
func (z Zoom) In() Zoom { return ClampZoom(z + ZoomStep) }

// Out returns the next smaller zoom level.
func (z Zoom) Out() Zoom { return ClampZoom(z - ZoomStep) }

// Scale returns the zoom as a scale factor.
func (z Zoom) Scale() float64 { return float64(z) / 100 }

// PreviewURL returns the URL an embedded PDF viewer should load: viewer
// chrome suppressed and the given zoom applied.
func PreviewURL(src string, z Zoom) string {
	return fmt.Sprintf("%s#toolbar=0&navpanes=0&zoom=%d", src, ClampZoom(z))
}
