package protocol

import "testing"

func TestFrameVerifyRoundTrip(t *testing.T) {
	commands := []string{
		"G1 X10 Y20 F3000",
		"G92",
		"G0 Z5.5",
	}

	var s Stream
	for i, cmd := range commands {
		line := s.Frame(cmd)

		n, got, err := Verify(line)
		if err != nil {
			t.Fatalf("Verify(%q) failed: %v", line, err)
		}
		if n != uint32(i) {
			t.Errorf("Verify(%q) line number = %d, want %d", line, n, i)
		}
		if got != cmd {
			t.Errorf("Verify(%q) command = %q, want %q", line, got, cmd)
		}
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	line := Frame(7, "G1 X10")

	// Flip one payload character.
	corrupted := "N7 G1 X11" + line[len("N7 G1 X10"):]
	if _, _, err := Verify(corrupted); err != ErrBadChecksum {
		t.Errorf("Verify(corrupted) = %v, want ErrBadChecksum", err)
	}

	if _, _, err := Verify("N7 G1 X10"); err != ErrNoChecksum {
		t.Errorf("Verify without checksum = %v, want ErrNoChecksum", err)
	}
}

func TestVerifyPassthrough(t *testing.T) {
	n, cmd, err := Verify("G28\n")
	if err != nil || n != 0 || cmd != "G28" {
		t.Errorf("Verify(unnumbered) = %d, %q, %v", n, cmd, err)
	}
}

func TestReceiverOrdering(t *testing.T) {
	var s Stream
	var r Receiver

	for _, cmd := range []string{"G1 X1", "G1 X2", "G1 X3"} {
		line := s.Frame(cmd)
		got, err := r.Accept(line)
		if err != nil {
			t.Fatalf("Accept(%q) failed: %v", line, err)
		}
		if got != cmd {
			t.Errorf("Accept(%q) = %q, want %q", line, got, cmd)
		}
	}

	// A skipped line number is a lost line.
	skipped := Frame(10, "G1 X4")
	if _, err := r.Accept(skipped); err != ErrLineNumberSkip {
		t.Errorf("Accept(skipped) = %v, want ErrLineNumberSkip", err)
	}

	// Unnumbered lines pass through without advancing the sequence.
	if _, err := r.Accept("G28"); err != nil {
		t.Errorf("Accept(unnumbered) = %v", err)
	}
	if _, err := r.Accept(s.Frame("G1 X4")); err != nil {
		t.Errorf("Accept(next in sequence) = %v", err)
	}
}
