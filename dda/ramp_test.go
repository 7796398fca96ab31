package dda

import "testing"

func TestIntSqr(t *testing.T) {
	values := []int32{0, 1, -1, 200000, -200000, 46341, 2147483647, -2147483647}

	for _, a := range values {
		want := int64(a) * int64(a)
		if got := IntSqr(a); got != want {
			t.Errorf("IntSqr(%d) = %d, want %d", a, got, want)
		}
	}
}

func TestMsbloc(t *testing.T) {
	testCases := []struct {
		input    uint32
		expected uint8
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{255, 7},
		{256, 8},
		{0x80000000, 31},
		{0xFFFFFFFF, 31},
		{12000000, 23}, // the timer frequency
	}

	for _, tc := range testCases {
		if got := Msbloc(tc.input); got != tc.expected {
			t.Errorf("Msbloc(%#x) = %d, want %d", tc.input, got, tc.expected)
		}
	}
}

func TestMsblocBound(t *testing.T) {
	for _, v := range []uint32{1, 5, 100, 4097, 1 << 20, 0xFFFFFFFF} {
		n := Msbloc(v)
		if uint32(1)<<n > v {
			t.Errorf("Msbloc(%d) = %d: 2^n exceeds v", v, n)
		}
		if n < 31 && uint32(1)<<(n+1) <= v {
			t.Errorf("Msbloc(%d) = %d: not the top bit", v, n)
		}
	}
}

func TestAccRampLen(t *testing.T) {
	testCases := []struct {
		feedrate, stepsPerM, accel uint32
		expected                   uint32
	}{
		// 3000 mm/min at 80 steps/mm, 100 mm/s^2:
		// 50 mm/s needs s = v^2/2a = 12.5 mm = 1000 steps.
		{3000, 80000, 100, 1000},
		// Double the feedrate, four times the ramp.
		{6000, 80000, 100, 4000},
		{0, 80000, 100, 0},
	}

	for _, tc := range testCases {
		if got := AccRampLen(tc.feedrate, tc.stepsPerM, tc.accel); got != tc.expected {
			t.Errorf("AccRampLen(%d, %d, %d) = %d, want %d",
				tc.feedrate, tc.stepsPerM, tc.accel, got, tc.expected)
		}
	}
}

func TestAccRampLenMonotonic(t *testing.T) {
	for _, stepsPerM := range []uint32{2000, 80000, 4096000} {
		prev := uint32(0)
		for feedrate := uint32(60); feedrate <= 24000; feedrate += 60 {
			got := AccRampLen(feedrate, stepsPerM, 100)
			if got < prev {
				t.Fatalf("AccRampLen(%d, %d, 100) = %d, below previous %d",
					feedrate, stepsPerM, got, prev)
			}
			prev = got
		}
	}
}
