package arenasvc_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/roboarena/simulator/arenasvc"
	"github.com/roboarena/simulator/scheduler"
	"github.com/roboarena/simulator/simerr"
	"github.com/roboarena/simulator/simworld"
)

const robotConfigJSON = `[{
	"Width": 0.2, "Length": 0.2, "Height": 0.2,
	"Starting Position": [0, 0],
	"Mass": 1, "Distance Between Wheels": 0.15,
	"Maximum Motor Power": 1, "Motor Noise Range": 0,
	"Camera Height": 0.3, "Camera Field of View": 45,
	"Marker Pixels Minimum": 4, "Marker Pixels Noise Range": 0,
	"Ignore Motion Blur": false
}]`

func writeRobotConfig(t *testing.T, dir string, team int) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("Robot %d.json", team))
	if err := os.WriteFile(path, []byte(robotConfigJSON), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newTestService(t *testing.T, endTime float64) (*arenasvc.Service, *simworld.World, *scheduler.Scheduler) {
	t.Helper()
	dir := t.TempDir()
	writeRobotConfig(t, dir, 0)

	w := simworld.NewWorld(endTime, nil)
	sched := scheduler.New()
	arena := sched.NewArena()
	endpoint := func(team int) string { return fmt.Sprintf("/robot/%d", team) }

	return arenasvc.New(w, sched, arena, dir, rand.NewSource(1), endpoint), w, sched
}

func TestCreateRobotReturnsEndpointAndRegistersActor(t *testing.T) {
	s, w, _ := newTestService(t, 180)

	url, err := s.CreateRobot(0)
	if err != nil {
		t.Fatalf("CreateRobot: %v", err)
	}
	if url != "/robot/0" {
		t.Errorf("got %q, want /robot/0", url)
	}
	if w.Robots[0] == nil {
		t.Error("expected a robot body to be created for team 0")
	}
}

func TestCreateRobotRejectsDuplicateTeam(t *testing.T) {
	s, _, _ := newTestService(t, 180)

	if _, err := s.CreateRobot(0); err != nil {
		t.Fatalf("CreateRobot: %v", err)
	}
	if _, err := s.CreateRobot(0); err == nil {
		t.Error("expected a duplicate createRobot for the same team to fail")
	} else if kind, _ := simerr.KindOf(err); kind != simerr.OrderViolation {
		t.Errorf("got kind %v, want OrderViolation", kind)
	}
}

func TestCreateRobotRejectsOutOfRangeTeam(t *testing.T) {
	s, _, _ := newTestService(t, 180)

	if _, err := s.CreateRobot(9); err == nil {
		t.Error("expected an out-of-range team number to fail")
	} else if kind, _ := simerr.KindOf(err); kind != simerr.InvalidArgument {
		t.Errorf("got kind %v, want InvalidArgument", kind)
	}
}

func TestCreateRobotFailsAfterSimulationEnds(t *testing.T) {
	s, w, _ := newTestService(t, 180)
	w.Now = w.EndTime

	if _, err := s.CreateRobot(0); err == nil {
		t.Error("expected createRobot to fail once the simulation has ended")
	} else if kind, _ := simerr.KindOf(err); kind != simerr.SimulationEnded {
		t.Errorf("got kind %v, want SimulationEnded", kind)
	}
}

func TestGetScoresAndTerminateRequireSimulationEnded(t *testing.T) {
	s, w, _ := newTestService(t, 180)

	if _, err := s.GetScores(); err == nil {
		t.Error("expected getScores to fail before the simulation has ended")
	}
	if _, err := s.Terminate(); err == nil {
		t.Error("expected terminate to fail before the simulation has ended")
	}

	w.Now = w.EndTime

	if _, err := s.GetScores(); err != nil {
		t.Errorf("unexpected error from getScores once ended: %v", err)
	}
}

func TestWaitForOutputDrainsWithoutSuspendingOnceEnded(t *testing.T) {
	s, w, _ := newTestService(t, 180)
	w.PendingOutput = append(w.PendingOutput, "hello")
	w.Now = w.EndTime

	stillRunning, messages := s.WaitForOutput(1)
	if stillRunning {
		t.Error("expected WaitForOutput to report the simulation as no longer running")
	}
	if len(messages) != 1 || messages[0] != "hello" {
		t.Errorf("got %v, want [hello]", messages)
	}
	if len(w.PendingOutput) != 0 {
		t.Error("expected pending_output to be drained")
	}
}
