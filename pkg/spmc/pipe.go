package spmc

import "sync/atomic"

// Pipe is a bounded lock-free ring for Single Producer, Multi Consumer.
//
// Core ideas:
// - indices are uint32 and monotonically increasing; slot = index & mask
//   (capacity must be a power of 2), so head - tail stays meaningful
//   across wraparound of either counter
// - each slot carries an atomic state word; the READABLE -> IN_FLIGHT
//   CAS is the only serialization point between readers, there is no
//   shared ticket counter to contend on
// - the producer publishes by storing the payload, flipping the slot to
//   READABLE, then bumping writeIndex; consumers snapshot writeIndex but
//   synchronize through the slot word, not the counter
// - the producer may also steal back its most recent publication from
//   the head (TryReadFront), which is what makes this a pipe rather
//   than a plain queue
//
// Go's sync/atomic is sequentially consistent, which is stronger than
// the acquire/release pairing the protocol needs at each point.
//
// Exactly one goroutine must act as the producer for the lifetime of
// the pipe; TryWriteFront and TryReadFront are producer-only. Any
// number of goroutines may call TryReadBack. No operation blocks or
// allocates; a false return means empty, full, or a lost race, and the
// caller decides whether to retry, yield, or give up.
//
// A consumer killed between claiming a slot and releasing it strands
// that slot forever and the ring eventually stalls on it. Shut
// consumers down cooperatively and drain with TryReadBack.
type Pipe[T any] struct {
	buf   []T
	flags []atomic.Uint32
	mask  uint32

	_          pad
	writeIndex atomic.Uint32 // head, owned by the producer
	_          pad
	readIndex  atomic.Uint32 // consumer-progress hint, not truth
	_          pad
	readCount  atomic.Uint32 // items delivered through TryReadBack
	_          pad
}

// Slot states. The zero value is writable so a fresh flag array needs
// no initialization pass.
const (
	slotWritable uint32 = iota // empty, producer may publish
	slotReadable               // published, unclaimed
	slotInFlight               // claimed by exactly one reader
)

const cacheLineSize = 64

type pad [cacheLineSize]byte

// New creates a pipe with the given capacity.
// Capacity must be a power of 2.
func New[T any](capacity int) *Pipe[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("spmc: capacity must be a power of 2 and greater than 0")
	}
	if uint64(capacity) > 1<<31 {
		panic("spmc: capacity exceeds index width")
	}
	return &Pipe[T]{
		buf:   make([]T, capacity),
		flags: make([]atomic.Uint32, capacity),
		mask:  uint32(capacity) - 1,
	}
}

// TryWriteFront publishes v at the head. Producer-only.
// Returns false when the slot at the head is not writable yet (still
// unread or still being read), i.e. the ring has lapped the slowest
// consumer.
func (p *Pipe[T]) TryWriteFront(v T) bool {
	wi := p.writeIndex.Load()
	slot := wi & p.mask
	if p.flags[slot].Load() != slotWritable {
		return false
	}
	p.buf[slot] = v
	// Payload store above is ordered before this publish.
	p.flags[slot].Store(slotReadable)
	p.writeIndex.Add(1)
	return true
}

// TryReadBack pops one item from the tail. Safe for any number of
// concurrent callers, concurrent with the producer. Returns false when
// the pipe is empty for this observer.
//
// Items are not delivered in strict FIFO order across concurrent
// consumers: a slot that is momentarily IN_FLIGHT is skipped, so a
// later publication can be returned first. The delivered multiset
// always equals the published multiset less what is still READABLE or
// IN_FLIGHT.
func (p *Pipe[T]) TryReadBack() (T, bool) {
	var zero T
	rc := p.readCount.Load()
	i := rc
	for {
		wi := p.writeIndex.Load()
		if wi-rc == 0 {
			// Leave a skip hint for future readers. A later
			// publish will be seen by a later call.
			p.readIndex.Store(rc)
			return zero, false
		}
		if int32(i-wi) >= 0 {
			// Ran past the head; other consumers skipped slots
			// below us. Catch up from the shared hint.
			i = p.readIndex.Load()
		}
		slot := i & p.mask
		if p.flags[slot].CompareAndSwap(slotReadable, slotInFlight) {
			p.readCount.Add(1)
			v := p.buf[slot]
			// Release the slot back to the producer only after
			// the payload is out.
			p.flags[slot].Store(slotWritable)
			return v, true
		}
		i++
		rc = p.readCount.Load()
	}
}

// TryReadFront pops the most recently published item from the head,
// retracting it. Producer-only. Returns false when the pipe is empty
// or consumers have already claimed everything at and below the head.
//
// The head is retracted only after the producer has claimed the slot
// and stored it back as writable; the slot is never READABLE at that
// point, so the retraction cannot race a consumer into the same slot.
func (p *Pipe[T]) TryReadFront() (T, bool) {
	var zero T
	wi := p.writeIndex.Load()
	f := wi
	for {
		rc := p.readCount.Load()
		if wi-rc == 0 {
			p.readIndex.Store(rc)
			return zero, false
		}
		f--
		slot := f & p.mask
		if p.flags[slot].CompareAndSwap(slotReadable, slotInFlight) {
			v := p.buf[slot]
			// No consumer will read this payload again; the next
			// publish into the slot re-establishes ordering.
			p.flags[slot].Store(slotWritable)
			p.writeIndex.Store(wi - 1)
			return v, true
		}
		if ri := p.readIndex.Load(); int32(ri-f) >= 0 {
			// Consumers overtook this position.
			return zero, false
		}
	}
}

// Empty reports whether the pipe looks empty. Advisory: slots already
// claimed but not yet released count as read.
func (p *Pipe[T]) Empty() bool {
	return p.writeIndex.Load()-p.readCount.Load() == 0
}

// Len returns the advisory number of items in flight.
func (p *Pipe[T]) Len() int {
	return int(p.writeIndex.Load() - p.readCount.Load())
}

// Cap returns the pipe capacity.
func (p *Pipe[T]) Cap() int {
	return len(p.buf)
}
