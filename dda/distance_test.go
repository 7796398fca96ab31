package dda

import (
	"math"
	"testing"
)

func TestApproxDistanceZeroAxis(t *testing.T) {
	testCases := []struct {
		dx, dy   uint32
		expected uint32
	}{
		{0, 0, 0},
		{0, 7, 7},
		{7, 0, 7},
		{0, 123456, 123456},
	}

	for _, tc := range testCases {
		if got := ApproxDistance(tc.dx, tc.dy); got != tc.expected {
			t.Errorf("ApproxDistance(%d, %d) = %d, want %d", tc.dx, tc.dy, got, tc.expected)
		}
	}
}

func TestApproxDistanceErrorBound(t *testing.T) {
	testCases := []struct {
		dx, dy uint32
	}{
		{3, 4},
		{4, 3},
		{5, 12},
		{1000, 1000},
		{300, 400},
		{1, 1000}, // extreme aspect ratio
		{10000, 17},
		{65535, 65535},
		{200000, 150000}, // full-bed micrometre move
	}

	for _, tc := range testCases {
		got := float64(ApproxDistance(tc.dx, tc.dy))
		want := math.Hypot(float64(tc.dx), float64(tc.dy))
		relErr := math.Abs(got-want) / want
		if relErr > 0.03 {
			t.Errorf("ApproxDistance(%d, %d) = %.0f, true %.1f, error %.2f%%",
				tc.dx, tc.dy, got, want, relErr*100)
		}
	}
}

func TestApproxDistanceSymmetric(t *testing.T) {
	pairs := [][2]uint32{{3, 4}, {1, 1000}, {123, 456}, {65535, 1}}
	for _, p := range pairs {
		if ApproxDistance(p[0], p[1]) != ApproxDistance(p[1], p[0]) {
			t.Errorf("ApproxDistance not symmetric for %v", p)
		}
	}
}

func TestApproxDistance3ErrorBound(t *testing.T) {
	testCases := []struct {
		dx, dy, dz uint32
	}{
		{3, 4, 0},
		{1, 2, 2},
		{2, 3, 6},
		{1, 4, 8}, // just past the 2x correction threshold, the worst region
		{1000, 1000, 1000},
		{100, 200, 5000},
		{40000, 30000, 200},
	}

	// The 3D approximation trades accuracy for speed much harder than the
	// 2D one: right at its correction thresholds the overshoot reaches 17%
	// before rounding, a bit more after. That envelope is part of the
	// contract, so the test pins it rather than asking for better.
	for _, tc := range testCases {
		got := float64(ApproxDistance3(tc.dx, tc.dy, tc.dz))
		want := math.Sqrt(float64(tc.dx)*float64(tc.dx) +
			float64(tc.dy)*float64(tc.dy) + float64(tc.dz)*float64(tc.dz))
		relErr := math.Abs(got-want) / want
		if relErr > 0.23 {
			t.Errorf("ApproxDistance3(%d, %d, %d) = %.0f, true %.1f, error %.2f%%",
				tc.dx, tc.dy, tc.dz, got, want, relErr*100)
		}
	}
}

func TestApproxDistance3PermutationSymmetric(t *testing.T) {
	triples := [][3]uint32{
		{1, 2, 3},
		{0, 5, 12},
		{7, 7, 7},
		{100, 2000, 30000},
		{0, 0, 9},
	}

	for _, tr := range triples {
		perms := [][3]uint32{
			{tr[0], tr[1], tr[2]},
			{tr[0], tr[2], tr[1]},
			{tr[1], tr[0], tr[2]},
			{tr[1], tr[2], tr[0]},
			{tr[2], tr[0], tr[1]},
			{tr[2], tr[1], tr[0]},
		}
		want := ApproxDistance3(perms[0][0], perms[0][1], perms[0][2])
		for _, p := range perms[1:] {
			if got := ApproxDistance3(p[0], p[1], p[2]); got != want {
				t.Errorf("ApproxDistance3(%v) = %d, but ApproxDistance3(%v) = %d",
					p, got, tr, want)
			}
		}
	}
}
