// Package robotsvc implements the per-robot endpoint operations:
// motor control, printing, sleeping and vision.
package robotsvc

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/roboarena/simulator/scheduler"
	"github.com/roboarena/simulator/simerr"
	"github.com/roboarena/simulator/simworld"
	"github.com/roboarena/simulator/vision"
)

// legalResolutions is the fixed set of camera resolutions a robot may
// request.
var legalResolutions = map[[2]int]bool{
	{640, 480}:   true,
	{1296, 736}:  true,
	{1296, 976}:  true,
	{1920, 1088}: true,
	{1920, 1440}: true,
}

// Service implements one robot's endpoint RPC operations.
type Service struct {
	world *simworld.World
	sched *scheduler.Scheduler
	actor *scheduler.Actor
	robot *simworld.RobotBody
	team  int
	rng   rand.Source
}

// New returns a Service bound to one robot's body and scheduling actor.
func New(world *simworld.World, sched *scheduler.Scheduler, actor *scheduler.Actor, robot *simworld.RobotBody, team int, rng rand.Source) *Service {
	return &Service{world: world, sched: sched, actor: actor, robot: robot, team: team, rng: rng}
}

// GetTeamNumber returns this robot's team number.
func (s *Service) GetTeamNumber() int {
	return s.team
}

// GetMotorPower returns the current power of motor index (1 = left,
// 2 = right).
func (s *Service) GetMotorPower(index int) (float64, error) {
	const op = "getMotorPower"
	if err := s.checkRunning(op); err != nil {
		return 0, err
	}
	switch index {
	case 1:
		return s.robot.LeftPower, nil
	case 2:
		return s.robot.RightPower, nil
	default:
		return 0, simerr.New(simerr.InvalidArgument, op, "motor index must be 1 or 2")
	}
}

// SetMotorPower clamps value into [-100, 100] and stores it as motor
// index's power, returning the clamped value.
func (s *Service) SetMotorPower(index int, value float64) (float64, error) {
	const op = "setMotorPower"
	if err := s.checkRunning(op); err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, simerr.New(simerr.InvalidArgument, op, "motor value must be a finite number")
	}

	clamped := clamp(value, -100, 100)
	switch index {
	case 1:
		s.robot.LeftPower = clamped
	case 2:
		s.robot.RightPower = clamped
	default:
		return 0, simerr.New(simerr.InvalidArgument, op, "motor index must be 1 or 2")
	}
	return clamped, nil
}

// Print appends a formatted message to pending_output.
func (s *Service) Print(message string) (bool, error) {
	const op = "print"
	if err := s.checkRunning(op); err != nil {
		return false, err
	}
	s.world.PendingOutput = append(s.world.PendingOutput,
		fmt.Sprintf("Robot %d at %v printed: %s", s.team, s.world.Now, message))
	return true, nil
}

// Sleep advances this actor's wake-up time by seconds and blocks.
// Unlike the other operations, a sleep spanning the simulation's end
// never fails: it resumes once the main loop shuts down and reports
// whether the simulation is still running.
func (s *Service) Sleep(seconds float64) (bool, error) {
	const op = "sleep"
	if err := s.checkRunning(op); err != nil {
		return false, err
	}
	s.actor.AddWakeUpTime(seconds)
	s.actor.Block(s.sched)
	return s.world.IsRunning(), nil
}

// See computes the visible-marker payload for this robot at the
// current frozen instant, then advances this actor's wake-up time by
// resolution.x * 0.001 seconds and blocks.
func (s *Service) See(resolution [2]int) (vision.Payload, error) {
	const op = "see"
	if err := s.checkRunning(op); err != nil {
		return vision.Payload{}, err
	}
	if !legalResolutions[resolution] {
		return vision.Payload{}, simerr.New(simerr.InvalidArgument, op, "unsupported camera resolution")
	}

	payload := vision.See(s.world, s.robot, resolution, s.rng)

	s.actor.AddWakeUpTime(float64(resolution[0]) * 0.001)
	s.actor.Block(s.sched)
	return payload, nil
}

// WaitForStart marks this actor ready and blocks until main's global
// start signal.
func (s *Service) WaitForStart() bool {
	s.actor.SetReady()
	s.actor.Block(s.sched)
	return true
}

func (s *Service) checkRunning(op string) error {
	if !s.world.IsRunning() {
		return simerr.New(simerr.SimulationEnded, op, "simulation has ended")
	}
	return nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
