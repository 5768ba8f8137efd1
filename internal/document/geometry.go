package document

import "github.com/aws/aws-sdk-go-v2/service/textract/types"

// BoundingBox is an axis-aligned box around a detected item, in
// page-relative coordinates (0..1).
type BoundingBox struct {
	Width  float32 `json:"Width"`
	Height float32 `json:"Height"`
	Left   float32 `json:"Left"`
	Top    float32 `json:"Top"`
}

// Point is a vertex of the fine-grained polygon around a detected item.
type Point struct {
	X float32 `json:"X"`
	Y float32 `json:"Y"`
}

// Geometry locates a detected item on its page.
type Geometry struct {
	BoundingBox BoundingBox `json:"BoundingBox"`
	Polygon     []Point     `json:"Polygon"`
}

func newGeometry(g *types.Geometry) Geometry {
	if g == nil {
		return Geometry{}
	}

	var out Geometry
	if bb := g.BoundingBox; bb != nil {
		out.BoundingBox = BoundingBox{
			Width:  bb.Width,
			Height: bb.Height,
			Left:   bb.Left,
			Top:    bb.Top,
		}
	}
	for _, p := range g.Polygon {
		out.Polygon = append(out.Polygon, Point{X: p.X, Y: p.Y})
	}
	return out
}
