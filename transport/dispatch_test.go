package transport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/roboarena/simulator/arenasvc"
	"github.com/roboarena/simulator/robotsvc"
	"github.com/roboarena/simulator/scheduler"
	"github.com/roboarena/simulator/simconfig"
	"github.com/roboarena/simulator/simworld"
)

func testRobotConfig() simconfig.RobotConfig {
	return simconfig.RobotConfig{
		Width: 0.2, Length: 0.2, Height: 0.2,
		Mass: 1, AxleLength: 0.15, BaseMaxPower: 1,
		CameraHeight: 0.3, FieldOfView: 0.4,
	}
}

func TestDispatchRobotGetTeamNumber(t *testing.T) {
	w := simworld.NewWorld(180, nil)
	robot := w.CreateRobot(0, testRobotConfig(), 1, 1)
	sched := scheduler.New()
	actor := sched.NewRobot(0)
	svc := robotsvc.New(w, sched, actor, robot, 0, rand.NewSource(1))

	resp, done := dispatchRobot(svc, Request{Op: "getTeamNumber"})
	if done {
		t.Fatal("did not expect the connection to close")
	}
	if resp.Fault != nil {
		t.Fatalf("unexpected fault: %+v", resp.Fault)
	}

	var team int
	if err := json.Unmarshal(resp.Result, &team); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if team != 0 {
		t.Errorf("got %d, want 0", team)
	}
}

func TestDispatchRobotSetMotorPowerClamps(t *testing.T) {
	w := simworld.NewWorld(180, nil)
	robot := w.CreateRobot(0, testRobotConfig(), 1, 1)
	sched := scheduler.New()
	actor := sched.NewRobot(0)
	svc := robotsvc.New(w, sched, actor, robot, 0, rand.NewSource(1))

	args, _ := json.Marshal(setMotorPowerArgs{Index: 1, Value: 999})
	resp, _ := dispatchRobot(svc, Request{Op: "setMotorPower", Args: args})
	if resp.Fault != nil {
		t.Fatalf("unexpected fault: %+v", resp.Fault)
	}

	var clamped float64
	if err := json.Unmarshal(resp.Result, &clamped); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if clamped != 100 {
		t.Errorf("got %v, want 100", clamped)
	}
}

func TestDispatchRobotUnknownOpFaults(t *testing.T) {
	w := simworld.NewWorld(180, nil)
	robot := w.CreateRobot(0, testRobotConfig(), 1, 1)
	sched := scheduler.New()
	actor := sched.NewRobot(0)
	svc := robotsvc.New(w, sched, actor, robot, 0, rand.NewSource(1))

	resp, _ := dispatchRobot(svc, Request{Op: "flyToTheMoon"})
	if resp.Fault == nil {
		t.Error("expected an unknown op to fault")
	}
}

func TestDispatchArenaCreateRobotThenGetScoresOnceEnded(t *testing.T) {
	dir := t.TempDir()
	robotConfigJSON := `[{"Width":0.2,"Length":0.2,"Height":0.2,"Starting Position":[0,0],
		"Mass":1,"Distance Between Wheels":0.15,"Maximum Motor Power":1,"Motor Noise Range":0,
		"Camera Height":0.3,"Camera Field of View":45,"Marker Pixels Minimum":4,
		"Marker Pixels Noise Range":0,"Ignore Motion Blur":false}]`
	if err := os.WriteFile(filepath.Join(dir, "Robot 0.json"), []byte(robotConfigJSON), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w := simworld.NewWorld(180, nil)
	sched := scheduler.New()
	arena := sched.NewArena()
	svc := arenasvc.New(w, sched, arena, dir, rand.NewSource(1), func(team int) string {
		return fmt.Sprintf("/robot/%d", team)
	})

	args, _ := json.Marshal(createRobotArgs{Team: 0})
	resp, done := dispatchArena(svc, Request{Op: "createRobot", Args: args})
	if done {
		t.Fatal("createRobot should not close the connection")
	}
	if resp.Fault != nil {
		t.Fatalf("unexpected fault: %+v", resp.Fault)
	}

	resp, _ = dispatchArena(svc, Request{Op: "getScores"})
	if resp.Fault == nil {
		t.Error("expected getScores to fault before the simulation has ended")
	}

	w.Now = w.EndTime
	resp, done = dispatchArena(svc, Request{Op: "getScores"})
	if resp.Fault != nil {
		t.Fatalf("unexpected fault: %+v", resp.Fault)
	}
	if done {
		t.Error("getScores should not close the connection")
	}
}
