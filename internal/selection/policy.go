package selection

// ReactionPolicy picks where each non-dragged token heads while another
// token is dragged toward the lock zone. Targets must return one point per
// token, indexed like the universe.
type ReactionPolicy interface {
	Targets(geo Geometry, n, lead int) []Point
}

// SpreadPolicy clears the space around the lock zone: the diametrically
// opposite token moves far right, the rest stack to the right of the zone,
// clockwise neighbours below and counter-clockwise neighbours above, one
// Step per position of angular distance.
type SpreadPolicy struct {
	OppositeOffset float64
	NeighborOffset float64
	Step           float64
}

// DefaultSpreadPolicy generalises the four-token reference offsets to any
// token count and lead. Neighbours always split above and below the zone,
// even where the reference put both on one side.
func DefaultSpreadPolicy() SpreadPolicy {
	return SpreadPolicy{OppositeOffset: 350, NeighborOffset: 250, Step: 120}
}

func (p SpreadPolicy) Targets(geo Geometry, n, lead int) []Point {
	z := geo.Center
	out := make([]Point, n)
	half := n / 2
	for i := range out {
		d := ((i-lead)%n + n) % n
		switch {
		case d == 0:
			out[i] = z
		case n%2 == 0 && d == half:
			out[i] = Point{X: z.X + p.OppositeOffset, Y: z.Y}
		case d <= half:
			out[i] = Point{X: z.X + p.NeighborOffset, Y: z.Y + p.Step*float64(d)}
		default:
			out[i] = Point{X: z.X + p.NeighborOffset, Y: z.Y - p.Step*float64(n-d)}
		}
	}
	return out
}
