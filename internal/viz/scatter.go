package viz

import "github.com/san-kum/pipeflow/internal/geom"

// Plane selects the two world axes projected onto the canvas.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

func (p Plane) String() string {
	switch p {
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	default:
		return "xy"
	}
}

// Scatter plots particle positions onto the canvas, mapping the chosen
// plane of the bounding box to the full sub-pixel grid. The vertical axis
// is flipped so larger world coordinates appear higher on screen.
func (c *Canvas) Scatter(positions []geom.Vec3, bounds geom.Box, plane Plane) {
	w := float64(c.Width * 2)
	h := float64(c.Height * 4)
	size := bounds.Size()

	for _, pos := range positions {
		var u, v, du, dv float64
		switch plane {
		case PlaneXZ:
			u, v = pos.X-bounds.Min.X, pos.Z-bounds.Min.Z
			du, dv = size.X, size.Z
		case PlaneYZ:
			u, v = pos.Y-bounds.Min.Y, pos.Z-bounds.Min.Z
			du, dv = size.Y, size.Z
		default:
			u, v = pos.X-bounds.Min.X, pos.Y-bounds.Min.Y
			du, dv = size.X, size.Y
		}

		x := int(u / du * (w - 1))
		y := int((1 - v/dv) * (h - 1))
		c.Set(x, y)
	}
}
