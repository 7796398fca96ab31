package protocol

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNoChecksum     = errors.New("protocol: line has no checksum")
	ErrBadChecksum    = errors.New("protocol: checksum mismatch")
	ErrBadLineNumber  = errors.New("protocol: malformed line number")
	ErrLineNumberSkip = errors.New("protocol: unexpected line number")
)

// Checksum returns the XOR of all bytes in the payload. Weak, but it is
// what serial G-code framing has always used and both ends must agree.
func Checksum(payload string) uint8 {
	var sum uint8
	for i := 0; i < len(payload); i++ {
		sum ^= payload[i]
	}
	return sum
}

// Frame wraps a command in a numbered, checksummed line:
// "N<line> <cmd>*<checksum>". The checksum covers everything before '*'.
func Frame(lineNum uint32, cmd string) string {
	payload := "N" + strconv.FormatUint(uint64(lineNum), 10) + " " + cmd
	return payload + "*" + strconv.FormatUint(uint64(Checksum(payload)), 10)
}

// Verify checks the framing of a received line and returns the line number
// and the bare command. Lines without an N prefix pass through unchecked
// with lineNum zero, so interactive typing still works.
func Verify(line string) (lineNum uint32, cmd string, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "N") {
		return 0, line, nil
	}

	star := strings.LastIndexByte(line, '*')
	if star < 0 {
		return 0, "", ErrNoChecksum
	}

	payload := line[:star]
	want, perr := strconv.ParseUint(line[star+1:], 10, 8)
	if perr != nil || Checksum(payload) != uint8(want) {
		return 0, "", ErrBadChecksum
	}

	space := strings.IndexByte(payload, ' ')
	if space < 2 {
		return 0, "", ErrBadLineNumber
	}
	n, perr := strconv.ParseUint(payload[1:space], 10, 32)
	if perr != nil {
		return 0, "", ErrBadLineNumber
	}

	return uint32(n), payload[space+1:], nil
}

// Stream numbers and frames consecutive outgoing lines.
type Stream struct {
	next uint32
}

// Frame frames cmd with the next line number.
func (s *Stream) Frame(cmd string) string {
	line := Frame(s.next, cmd)
	s.next++
	return line
}

// Receiver verifies framing and line ordering on the receiving side.
type Receiver struct {
	expect uint32
}

// Accept verifies one line and its sequence number. Unnumbered lines are
// passed through without advancing the sequence.
func (r *Receiver) Accept(line string) (string, error) {
	n, cmd, err := Verify(line)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "N") {
		return cmd, nil
	}
	if n != r.expect {
		return "", ErrLineNumberSkip
	}
	r.expect++
	return cmd, nil
}
