package level

import (
	"math"
	"sort"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

const mergeEpsilon = 1e-6

// MergePlatforms joins horizontally touching platforms of the same shape into one
// wider platform. Slopes are never merged since widening one changes its rise.
// Moving platforms merge only with identical motion.
// The result is ordered top to bottom, then left to right.
func MergePlatforms(platforms []*entity.Platform) []*entity.Platform {
	sorted := make([]*entity.Platform, len(platforms))
	copy(sorted, platforms)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Kind() != b.Kind() {
			return a.Kind() < b.Kind()
		}
		if a.H != b.H {
			return a.H < b.H
		}
		return a.X < b.X
	})

	out := make([]*entity.Platform, 0, len(sorted))
	var last *entity.Platform
	for _, p := range sorted {
		if last != nil && mergeable(last, p) {
			last.W = math.Max(last.Right(), p.Right()) - last.X
			continue
		}
		out = append(out, p)
		last = p
	}
	return out
}

func mergeable(a, b *entity.Platform) bool {
	return a.SameShape(b) && b.X <= a.Right()+mergeEpsilon
}
