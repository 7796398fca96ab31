package gcode

import (
	"errors"
	"strconv"
	"strings"
)

// Command is one parsed G-code line: a letter/number pair naming the
// command and the parameter words that followed it.
type Command struct {
	Letter byte // 'G', 'M' or 'T'
	Number int
	Words  map[byte]float64
}

// Has reports whether the parameter word was present on the line.
func (c *Command) Has(letter byte) bool {
	_, ok := c.Words[letter]
	return ok
}

// Value returns the parameter value, or fallback when absent.
func (c *Command) Value(letter byte, fallback float64) float64 {
	if v, ok := c.Words[letter]; ok {
		return v
	}
	return fallback
}

var ErrBadWord = errors.New("gcode: malformed word")

// ParseLine splits a line into command and parameter words. Comments
// (semicolon and parenthesised) are stripped. A blank or comment-only line
// returns nil with no error.
func ParseLine(line string) (*Command, error) {
	line = stripComments(line)

	fields := strings.Fields(strings.ToUpper(line))
	if len(fields) == 0 {
		return nil, nil
	}

	var cmd *Command
	for _, f := range fields {
		letter := f[0]
		if letter < 'A' || letter > 'Z' || len(f) < 2 {
			return nil, ErrBadWord
		}
		value, err := strconv.ParseFloat(f[1:], 64)
		if err != nil {
			return nil, ErrBadWord
		}

		if cmd == nil {
			if letter != 'G' && letter != 'M' && letter != 'T' {
				return nil, errors.New("gcode: line does not start with G, M or T")
			}
			cmd = &Command{
				Letter: letter,
				Number: int(value),
				Words:  make(map[byte]float64),
			}
			continue
		}
		cmd.Words[letter] = value
	}
	return cmd, nil
}

func stripComments(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	for {
		open := strings.IndexByte(line, '(')
		if open < 0 {
			break
		}
		end := strings.IndexByte(line[open:], ')')
		if end < 0 {
			line = line[:open]
			break
		}
		line = line[:open] + line[open+end+1:]
	}
	return line
}
