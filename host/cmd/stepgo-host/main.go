package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"stepgo/core"
	"stepgo/dda"
	"stepgo/host/serial"
	"stepgo/protocol"
	"stepgo/standalone/config"
	"stepgo/standalone/gcode"
	"stepgo/standalone/kinematics"
	"stepgo/standalone/planner"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud       = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	configPath = flag.String("config", "", "Machine configuration (JSON), required for -dry-run")
	dryRun     = flag.Bool("dry-run", false, "Run the file through the local planner instead of a device")
	verbose    = flag.Bool("verbose", false, "Print every line as it is sent")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: stepgo-host [flags] <file.gcode>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if *dryRun {
		if err := runLocal(file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := stream(file); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// countingSink tallies step pulses instead of driving pins.
type countingSink struct {
	pulses [dda.NumAxes]uint64
}

func (c *countingSink) SetDirections([dda.NumAxes]int8) {}

func (c *countingSink) Step(axes uint8) {
	for i := 0; i < dda.NumAxes; i++ {
		if axes&(1<<uint(i)) != 0 {
			c.pulses[i]++
		}
	}
}

// runLocal feeds the file through the planner on the host and reports what
// the machine would have done.
func runLocal(file *os.File) error {
	if *configPath == "" {
		return fmt.Errorf("-dry-run needs -config")
	}
	data, err := os.ReadFile(*configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(data)
	if err != nil {
		return err
	}
	kin, err := kinematics.New(cfg)
	if err != nil {
		return err
	}

	sched := &core.Scheduler{}
	sink := &countingSink{}
	interp := gcode.NewInterpreter(planner.New(cfg, kin, sched, sink))

	lineNo := 0
	var elapsedUS uint64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		if err := interp.Execute(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		elapsedUS += drain(sched)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	pos := interp.State().Position
	fmt.Printf("%d lines processed\n", lineNo)
	fmt.Printf("step pulses: x=%d y=%d z=%d\n", sink.pulses[0], sink.pulses[1], sink.pulses[2])
	fmt.Printf("final position: x=%.3fmm y=%.3fmm z=%.3fmm\n",
		float64(pos.X)/1000, float64(pos.Y)/1000, float64(pos.Z)/1000)
	fmt.Printf("estimated time: %v\n", (time.Duration(elapsedUS) * time.Microsecond).Round(time.Millisecond))
	return nil
}

// drain runs the scheduler dry and returns the machine time that passed, in
// microseconds. Event gaps stay under the timer horizon, so each one fits a
// uint32 conversion even though the total may not.
func drain(sched *core.Scheduler) uint64 {
	var us uint64
	for {
		wake, ok := sched.NextWake()
		if !ok {
			return us
		}
		us += uint64(core.TicksToUS(wake - sched.Now()))
		sched.Advance(wake)
	}
}

// stream sends the file to the controller line by line, framed and
// checksummed, waiting for each acknowledgement.
func stream(file *os.File) error {
	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	var enc protocol.Stream
	reader := bufio.NewReader(port)
	scanner := bufio.NewScanner(file)
	sent := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		framed := enc.Frame(line)
		if *verbose {
			fmt.Println(framed)
		}
		if _, err := port.Write([]byte(framed + "\n")); err != nil {
			return err
		}

		if err := awaitAck(reader); err != nil {
			return fmt.Errorf("after %q: %w", line, err)
		}
		sent++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("%d lines sent\n", sent)
	return nil
}

// awaitAck reads responses until the controller accepts or rejects the
// line. "rs" asks for a resend, which streaming treats as fatal since the
// failed line is already gone from the buffer window.
func awaitAck(reader *bufio.Reader) error {
	for {
		resp, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		resp = strings.TrimSpace(resp)
		switch {
		case resp == "ok" || strings.HasPrefix(resp, "ok "):
			return nil
		case strings.HasPrefix(resp, "rs") || strings.HasPrefix(resp, "Error"):
			return fmt.Errorf("controller rejected line: %s", resp)
		case *verbose && resp != "":
			fmt.Println("<", resp)
		}
	}
}
