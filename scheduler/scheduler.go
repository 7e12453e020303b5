// Package scheduler implements the cooperative, single-threaded-by-
// invariant interleaving of actor contexts (the arena controller, and
// one per robot) with the main physics tick loop. At any instant
// exactly one participant holds the simulation token: the main loop,
// or the one actor it has unblocked.
package scheduler

import (
	"sync"
	"time"
)

// Kind distinguishes the arena controller actor from a robot actor.
type Kind int

const (
	Arena Kind = iota
	RobotActor
)

// gate is a one-shot binary semaphore: set() arms it, wait() blocks
// until armed then disarms, clear() disarms without waiting.
type gate chan struct{}

func newGate() gate { return make(gate, 1) }

func (g gate) set() {
	select {
	case g <- struct{}{}:
	default:
	}
}

func (g gate) clear() {
	select {
	case <-g:
	default:
	}
}

func (g gate) wait() { <-g }

// Actor is the scheduling record for one logical coroutine: it is
// handed the simulation token exactly when the main loop unblocks it,
// and holds it until it calls Block or its RPC operation returns.
type Actor struct {
	Kind Kind
	Team int // meaningful only when Kind == RobotActor

	gate gate

	mu           sync.Mutex
	wakeUpTime   float64
	readyToStart bool
	terminated   bool
}

func newActor(kind Kind, team int) *Actor {
	return &Actor{Kind: kind, Team: team, gate: newGate()}
}

// WakeUpTime returns the earliest simulated time at which this actor
// is eligible to be resumed.
func (a *Actor) WakeUpTime() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wakeUpTime
}

// AddWakeUpTime advances this actor's wake-up time by delta, the way
// sleep(delta) and see/waitForOutput's fixed surcharges do.
func (a *Actor) AddWakeUpTime(delta float64) {
	a.mu.Lock()
	a.wakeUpTime += delta
	a.mu.Unlock()
}

// SetReady marks this actor as having completed its pre-start
// handshake.
func (a *Actor) SetReady() {
	a.mu.Lock()
	a.readyToStart = true
	a.mu.Unlock()
}

// IsReady reports whether SetReady has been called.
func (a *Actor) IsReady() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.readyToStart
}

// Terminated reports whether the scheduler has shut this actor down.
// Operations observing this should behave as "simulation ended".
func (a *Actor) Terminated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.terminated
}

// Block releases the simulation token back to the main loop and waits
// to be resumed. This is the only suspension primitive actors use;
// sleep, see, waitForOutput and waitForStart are all built on it.
func (a *Actor) Block(s *Scheduler) {
	a.gate.clear()
	s.mainGate.set()
	a.gate.wait()
}

// Scheduler owns the registered actor list and runs the main tick
// loop's handshake with them. The zero value is not usable; use New.
type Scheduler struct {
	mu       sync.Mutex
	actors   []*Actor
	mainGate gate
}

// New returns an empty Scheduler, ready to register actors into.
func New() *Scheduler {
	return &Scheduler{mainGate: newGate()}
}

// NewArena registers and returns the arena actor. Call exactly once,
// before any robot actor and before Run.
func (s *Scheduler) NewArena() *Actor {
	return s.register(newActor(Arena, -1))
}

// NewRobot registers and returns a robot actor for team. Valid to call
// at any point while the world is running, including after Run has
// started ticking.
func (s *Scheduler) NewRobot(team int) *Actor {
	return s.register(newActor(RobotActor, team))
}

func (s *Scheduler) register(a *Actor) *Actor {
	s.mu.Lock()
	s.actors = append(s.actors, a)
	s.mu.Unlock()
	return a
}

// AllReady reports whether every currently registered actor has
// completed its handshake. The arena's waitForStart busy-waits on this
// before blocking; Run itself waits on it before ticking.
func (s *Scheduler) AllReady() bool {
	actors := s.snapshot()
	if len(actors) == 0 {
		return false
	}
	for _, a := range actors {
		if !a.IsReady() {
			return false
		}
	}
	return true
}

func (s *Scheduler) snapshot() []*Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Actor, len(s.actors))
	copy(out, s.actors)
	return out
}

// unblock hands the token to a, then waits for it to either Block
// again or return from its RPC operation, both of which set mainGate.
func (s *Scheduler) unblock(a *Actor) {
	s.mainGate.clear()
	a.gate.set()
	s.mainGate.wait()
}

// Run drives the main loop: wait for every registered actor's
// handshake, then repeatedly resume due actors in registration order
// and call step once per tick, until isRunning reports false. On exit
// it gives the arena one final resumption (so it can compute scores
// and terminate) and then shuts every actor down.
func (s *Scheduler) Run(isRunning func() bool, now func() float64, step func()) {
	for !s.AllReady() {
		time.Sleep(time.Millisecond)
	}

	for isRunning() {
		for _, a := range s.snapshot() {
			if a.WakeUpTime() <= now() {
				s.unblock(a)
			}
		}
		step()
	}

	actors := s.snapshot()
	if len(actors) > 0 {
		s.unblock(actors[0])
	}
	for _, a := range actors {
		s.shutdown(a)
	}
}

// shutdown marks a terminated and releases its gate once more, so any
// operation still waiting inside Block observes termination instead
// of blocking forever.
func (s *Scheduler) shutdown(a *Actor) {
	a.mu.Lock()
	a.terminated = true
	a.mu.Unlock()
	s.mainGate.clear()
	a.gate.set()
}
