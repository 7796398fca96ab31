package core

// TimerFreq is the step timer frequency in ticks per second. 12MHz matches
// the common MCU timer prescaling and divides evenly into microseconds.
const TimerFreq = 12000000

// TicksToUS converts timer ticks to microseconds.
func TicksToUS(ticks uint32) uint32 {
	return ticks / (TimerFreq / 1000000)
}
