package geo

import (
	"math"
	"testing"
)

func TestDistanceKMIsZeroForIdenticalPoints(t *testing.T) {
	d := DistanceKM(30.7570, 76.7800, 30.7570, 76.7800)
	if math.IsNaN(d) {
		t.Fatal("expected a number, got NaN")
	}
	if d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestDistanceKMIsSymmetric(t *testing.T) {
	forward := DistanceKM(30.7570, 76.7800, 28.6139, 77.2090)
	backward := DistanceKM(28.6139, 77.2090, 30.7570, 76.7800)
	if math.Abs(forward-backward) > 1e-9 {
		t.Fatalf("expected symmetric distances, got %f and %f", forward, backward)
	}
}

func TestDistanceKMKnownDistance(t *testing.T) {
	// Chandigarh to New Delhi is roughly 240 km as the crow flies.
	d := DistanceKM(30.7570, 76.7800, 28.6139, 77.2090)
	if d < 230 || d > 255 {
		t.Fatalf("expected roughly 240 km, got %f", d)
	}
}

func TestDistanceKMIsNonNegative(t *testing.T) {
	points := [][4]float64{
		{0, 0, 0, 0},
		{90, 0, -90, 0},
		{12.34, 56.78, 12.34, 56.78},
		{45, 179.9999999, 45, -179.9999999},
	}
	for _, p := range points {
		d := DistanceKM(p[0], p[1], p[2], p[3])
		if math.IsNaN(d) || d < 0 {
			t.Fatalf("expected non-negative distance for %v, got %f", p, d)
		}
	}
}

func TestDistanceKMClampsNearAntipodalRounding(t *testing.T) {
	// Exact antipodes sit at half the Earth's circumference; the clamp keeps
	// Acos in domain instead of returning NaN.
	d := DistanceKM(0, 0, 0, 180)
	expected := EarthRadiusKM * math.Pi
	if math.IsNaN(d) {
		t.Fatal("expected a number, got NaN")
	}
	if math.Abs(d-expected) > 1 {
		t.Fatalf("expected about %f, got %f", expected, d)
	}
}
