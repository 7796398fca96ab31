package kinematics

import (
	"math"
	"testing"

	"stepgo/standalone"
)

func testScaraConfig() *standalone.MachineConfig {
	cfg := testMachineConfig()
	cfg.Kinematics = "scara"
	cfg.Scara = standalone.ScaraConfig{
		InnerArmLength: 100000, // 100mm
		OuterArmLength: 100000,
	}
	// Joint axes: 80000 steps per thousand degrees = 80 steps/degree.
	return cfg
}

func TestScaraPhiTheta(t *testing.T) {
	k, err := NewScara(testScaraConfig())
	if err != nil {
		t.Fatalf("NewScara failed: %v", err)
	}

	testCases := []struct {
		x, y       int32
		phi, theta float64
	}{
		// Fully extended along +X: elbow straight, shoulder at zero.
		{200000, 0, 0, 0},
		// Fully extended along +Y.
		{0, 200000, 0, math.Pi / 2},
		// Elbow at a right angle: reach is L*sqrt(2).
		{141421, 0, math.Pi / 2, -math.Pi / 4},
	}

	for _, tc := range testCases {
		phi, theta := k.PhiTheta(tc.x, tc.y)
		if math.Abs(phi-tc.phi) > 1e-3 {
			t.Errorf("PhiTheta(%d, %d) phi = %f, want %f", tc.x, tc.y, phi, tc.phi)
		}
		if math.Abs(theta-tc.theta) > 1e-3 {
			t.Errorf("PhiTheta(%d, %d) theta = %f, want %f", tc.x, tc.y, theta, tc.theta)
		}
	}
}

func TestScaraRotationInvariance(t *testing.T) {
	k, _ := NewScara(testScaraConfig())

	// Rotating the target about the tower at constant radius keeps the
	// elbow angle and turns the shoulder by the same amount.
	phiA, thetaA := k.PhiTheta(141421, 0)
	phiB, thetaB := k.PhiTheta(0, 141421)

	if math.Abs(phiA-phiB) > 1e-6 {
		t.Errorf("elbow angle changed under rotation: %f vs %f", phiA, phiB)
	}
	if math.Abs((thetaB-thetaA)-math.Pi/2) > 1e-6 {
		t.Errorf("shoulder swept %f, want pi/2", thetaB-thetaA)
	}
}

func TestScaraStepsFor(t *testing.T) {
	k, _ := NewScara(testScaraConfig())

	// Swing from +X extension to +Y extension: the elbow stays straight,
	// the shoulder sweeps 90 degrees. At 80 steps/degree that is 7200
	// shoulder steps, and the riding elbow motor matches it.
	steps, err := k.StepsFor(
		standalone.Position{X: 200000, Y: 0},
		standalone.Position{X: 0, Y: 200000})
	if err != nil {
		t.Fatalf("StepsFor failed: %v", err)
	}

	if steps[0] < 7195 || steps[0] > 7205 {
		t.Errorf("shoulder steps = %d, want about 7200", steps[0])
	}
	if steps[1] != steps[0] {
		t.Errorf("elbow motor steps = %d, want %d (straight elbow rides shoulder)",
			steps[1], steps[0])
	}
	if steps[2] != 0 {
		t.Errorf("z steps = %d, want 0", steps[2])
	}
}

func TestScaraZStaysLinear(t *testing.T) {
	k, _ := NewScara(testScaraConfig())

	steps, _ := k.StepsFor(
		standalone.Position{X: 150000, Y: 0, Z: 1000},
		standalone.Position{X: 150000, Y: 0, Z: 13500})

	if steps[0] != 0 || steps[1] != 0 {
		t.Errorf("pure z move produced joint steps %v", steps)
	}
	// 12.5mm at 400 steps/mm.
	if steps[2] != 5000 {
		t.Errorf("z steps = %d, want 5000", steps[2])
	}
}

func TestScaraCheckLimits(t *testing.T) {
	cfg := testScaraConfig()
	cfg.Scara.InnerArmLength = 120000
	cfg.Scara.OuterArmLength = 80000
	k, _ := NewScara(cfg)

	if err := k.CheckLimits(standalone.Position{X: 150000, Y: 0, Z: 1000}); err != nil {
		t.Errorf("reachable position rejected: %v", err)
	}
	if err := k.CheckLimits(standalone.Position{X: 200001, Y: 0}); err == nil {
		t.Error("position beyond reach accepted")
	}
	if err := k.CheckLimits(standalone.Position{X: 10000, Y: 0}); err == nil {
		t.Error("position inside dead zone accepted")
	}
	if err := k.CheckLimits(standalone.Position{X: 150000, Y: 0, Z: -1}); err == nil {
		t.Error("z below travel accepted")
	}
}
