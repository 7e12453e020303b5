// Package arenasvc implements the controller-facing endpoint
// operations: createRobot, waitForStart, waitForOutput, getScores and
// terminate.
package arenasvc

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roboarena/simulator/scheduler"
	"github.com/roboarena/simulator/scoring"
	"github.com/roboarena/simulator/simconfig"
	"github.com/roboarena/simulator/simerr"
	"github.com/roboarena/simulator/simworld"
)

// Service implements the arena endpoint's RPC operations against one
// world/scheduler pair.
type Service struct {
	world *simworld.World
	sched *scheduler.Scheduler
	arena *scheduler.Actor

	configDir     string
	rng           rand.Source
	robotEndpoint func(team int) string

	mu          sync.Mutex
	robotActors map[int]*scheduler.Actor
	started     bool
}

// New returns a Service. configDir is the directory holding
// "Robot {team}.json"; robotEndpoint builds the URL returned from
// CreateRobot for a newly registered team.
func New(world *simworld.World, sched *scheduler.Scheduler, arena *scheduler.Actor, configDir string, rng rand.Source, robotEndpoint func(team int) string) *Service {
	return &Service{
		world:         world,
		sched:         sched,
		arena:         arena,
		configDir:     configDir,
		rng:           rng,
		robotEndpoint: robotEndpoint,
		robotActors:   make(map[int]*scheduler.Actor),
	}
}

// CreateRobot builds a robot body and actor for team and returns its
// endpoint URL. Valid only before the main tick loop has started, and
// only while the simulation is running.
func (s *Service) CreateRobot(team int) (string, error) {
	const op = "createRobot"

	if !s.world.IsRunning() {
		return "", simerr.New(simerr.SimulationEnded, op, "simulation has ended")
	}
	if team < 0 || team > 3 {
		return "", simerr.New(simerr.InvalidArgument, op, "team number out of range")
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return "", simerr.New(simerr.OrderViolation, op, "createRobot called after the simulation started running")
	}
	if _, exists := s.robotActors[team]; exists {
		s.mu.Unlock()
		return "", simerr.New(simerr.OrderViolation, op, "team already has a robot")
	}
	s.mu.Unlock()

	cfg, err := simconfig.LoadRobotConfig(fmt.Sprintf("%s/Robot %d.json", s.configDir, team))
	if err != nil {
		return "", simerr.New(simerr.ConfigError, op, err.Error())
	}

	leftMax := cfg.BaseMaxPower + sampleNoise(s.rng, cfg.NoiseRange)
	rightMax := cfg.BaseMaxPower + sampleNoise(s.rng, cfg.NoiseRange)

	s.world.CreateRobot(team, cfg, leftMax, rightMax)
	actor := s.sched.NewRobot(team)

	s.mu.Lock()
	s.robotActors[team] = actor
	s.mu.Unlock()

	return s.robotEndpoint(team), nil
}

// RobotActor returns the scheduling actor registered for team by a
// prior CreateRobot call, or nil if none exists yet.
func (s *Service) RobotActor(team int) *scheduler.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.robotActors[team]
}

// sampleNoise draws uniform(0, noiseRange/2), the motor dispersion
// sampled once per robot at creation time.
func sampleNoise(src rand.Source, noiseRange float64) float64 {
	if noiseRange <= 0 {
		return 0
	}
	u := distuv.Uniform{Min: 0, Max: noiseRange / 2, Src: src}
	return u.Rand()
}

// WaitForStart marks the arena ready, busy-waits (coarse, one-second
// polls) until every registered actor has completed its handshake,
// then blocks until the main loop begins ticking.
func (s *Service) WaitForStart() bool {
	s.arena.SetReady()
	for !s.sched.AllReady() {
		time.Sleep(time.Second)
	}
	s.arena.Block(s.sched)

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	return true
}

// WaitForOutput drains pending_output. If the simulation has already
// ended it returns immediately without suspending; otherwise it blocks
// for durationSeconds of simulated time first.
func (s *Service) WaitForOutput(durationSeconds float64) (bool, []string) {
	messages := s.world.PendingOutput
	s.world.PendingOutput = nil

	if !s.world.IsRunning() {
		return false, messages
	}

	s.arena.AddWakeUpTime(durationSeconds)
	s.arena.Block(s.sched)
	return true, messages
}

// GetScores computes the final per-team scores. Valid only once the
// simulation has ended.
func (s *Service) GetScores() ([4]int, error) {
	const op = "getScores"
	if s.world.IsRunning() {
		return [4]int{}, simerr.New(simerr.OrderViolation, op, "simulation has not ended yet")
	}
	return scoring.Scores(s.world), nil
}

// Terminate blocks so the main loop can join the arena actor. Valid
// only once the simulation has ended.
func (s *Service) Terminate() (bool, error) {
	const op = "terminate"
	if s.world.IsRunning() {
		return false, simerr.New(simerr.OrderViolation, op, "simulation has not ended yet")
	}
	s.arena.Block(s.sched)
	return true, nil
}
