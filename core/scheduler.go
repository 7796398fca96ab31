package core

// Event is a scheduled one-shot step event. Handlers run with the scheduler
// lock conceptually held (on hardware: inside the timer interrupt), so they
// must not block or allocate. A handler may move WakeTime forward and return
// Reschedule to stay on the list.
type Event struct {
	WakeTime uint32
	Handler  func(*Event) uint8
	Next     *Event
}

// Handler return values.
const (
	Done       = 0
	Reschedule = 1
)

// Scheduler keeps a singly linked list of events sorted by wake time and
// dispatches the ones that are due. Wake times wrap with uint32 tick
// arithmetic; comparisons are done on the difference so a wrap mid-queue
// does not reorder events.
type Scheduler struct {
	head *Event
	now  uint32
}

// Now returns the scheduler's current tick count.
func (s *Scheduler) Now() uint32 {
	return s.now
}

// before reports whether wake time a is due no later than b under
// wraparound arithmetic.
func before(a, b uint32) bool {
	return int32(a-b) <= 0
}

// Schedule inserts an event in wake-time order.
func (s *Scheduler) Schedule(e *Event) {
	if s.head == nil || before(e.WakeTime, s.head.WakeTime) {
		e.Next = s.head
		s.head = e
		return
	}

	cur := s.head
	for cur.Next != nil && before(cur.Next.WakeTime, e.WakeTime) {
		cur = cur.Next
	}
	e.Next = cur.Next
	cur.Next = e
}

// Advance moves the clock to now and runs every event that is due, in wake
// order. Handlers returning Reschedule are reinserted at their new wake
// time, and run again in the same call if that time is also due.
func (s *Scheduler) Advance(now uint32) {
	s.now = now

	for s.head != nil && before(s.head.WakeTime, s.now) {
		e := s.head
		s.head = e.Next
		e.Next = nil

		if e.Handler(e) == Reschedule {
			s.Schedule(e)
		}
	}
}

// NextWake returns the wake time of the earliest pending event. The second
// result is false when the queue is empty.
func (s *Scheduler) NextWake() (uint32, bool) {
	if s.head == nil {
		return 0, false
	}
	return s.head.WakeTime, true
}

// Pending reports whether any event is queued.
func (s *Scheduler) Pending() bool {
	return s.head != nil
}
