package payment

import (
	"math"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// Canvas geometry for recipient placement.
const (
	canvasCenterX   = 400.0
	canvasCenterY   = 300.0
	minNodeDistance = 140.0
)

// nextPosition picks a canvas position for a new recipient: walk rings
// outward from the center and take the first slot far enough from every
// existing node. When all ring slots are crowded, fall back to a
// deterministic slot derived from the node count.
func nextPosition(existing []entity.Position, count int) entity.Position {
	for radius := 200.0; radius <= 500.0; radius += 80.0 {
		angleStep := math.Max(30, 360/math.Max(8, math.Floor(radius/40)))
		for angle := 0.0; angle < 360.0; angle += angleStep {
			candidate := pointAt(radius, angle)
			if !tooClose(candidate, existing) {
				return candidate
			}
		}
	}

	angle := float64((count * 60) % 360)
	radius := 200.0 + float64(count)*20.0
	return pointAt(radius, angle)
}

func pointAt(radius, angleDegrees float64) entity.Position {
	rad := angleDegrees * math.Pi / 180
	return entity.Position{
		X: canvasCenterX + radius*math.Cos(rad),
		Y: canvasCenterY + radius*math.Sin(rad),
	}
}

func tooClose(candidate entity.Position, existing []entity.Position) bool {
	for _, pos := range existing {
		if math.Hypot(candidate.X-pos.X, candidate.Y-pos.Y) < minNodeDistance {
			return true
		}
	}
	return false
}

// positionsOf extracts the canvas positions from a recipient list.
func positionsOf(recipients []*entity.Recipient) []entity.Position {
	positions := make([]entity.Position, len(recipients))
	for i, r := range recipients {
		positions[i] = r.Position
	}
	return positions
}
