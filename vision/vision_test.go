package vision_test

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/roboarena/simulator/simconfig"
	"github.com/roboarena/simulator/simworld"
	"github.com/roboarena/simulator/vision"
)

func testRobotConfig() simconfig.RobotConfig {
	return simconfig.RobotConfig{
		Width: 0.2, Length: 0.2, Height: 0.2,
		Mass: 1, AxleLength: 0.15, BaseMaxPower: 1,
		CameraHeight: 0.3, FieldOfView: 45 * 3.14159265 / 360,
	}
}

func TestSeeFindsFarWallWhenUnobstructed(t *testing.T) {
	w := simworld.NewWorld(180, nil)
	robot := w.CreateRobot(0, testRobotConfig(), 1, 1)

	payload := vision.See(w, robot, [2]int{640, 480}, rand.NewSource(1))

	if len(payload.Markers) == 0 {
		t.Error("expected the robot, facing +X from its zone, to see the wall across the arena")
	}
}

func TestSeeReturnsNoMarkersWhileBlurredAndNotIgnoring(t *testing.T) {
	w := simworld.NewWorld(180, nil)
	cfg := testRobotConfig()
	cfg.IgnoreMotionBlur = false
	robot := w.CreateRobot(0, cfg, 1, 1)

	robot.LeftPower, robot.RightPower = 100, 100
	// Run a few ticks so the robot is actually moving fast enough to
	// count as blurred.
	for i := 0; i < 5; i++ {
		w.Step()
	}

	if !robot.IsMoving() {
		t.Skip("robot did not reach the motion threshold in this many ticks")
	}

	payload := vision.See(w, robot, [2]int{640, 480}, rand.NewSource(1))
	if len(payload.Markers) != 0 {
		t.Error("expected a blurred, non-ignoring robot to see no markers")
	}
}

// Two collinear tokens along the camera axis: the nearer token's front
// face fully occludes the farther token, whose last_seen stays
// untouched. The camera sits below the token roof so rays to the far
// token cannot pass over the near one.
func TestSeeNearTokenOccludesFarToken(t *testing.T) {
	placements := []simconfig.TokenPlacement{
		{Kind: simconfig.TokenOre, Code: 32, X: -2, Y: 0},
		{Kind: simconfig.TokenOre, Code: 33, X: -1, Y: 0},
	}
	w := simworld.NewWorld(180, placements)
	cfg := testRobotConfig()
	cfg.CameraHeight = 0.05
	robot := w.CreateRobot(0, cfg, 1, 1)

	payload := vision.See(w, robot, [2]int{640, 480}, rand.NewSource(1))

	sawNear, sawFar := false, false
	for _, m := range payload.Markers {
		switch m.ID {
		case 32:
			sawNear = true
		case 33:
			sawFar = true
		}
	}
	if !sawNear {
		t.Error("expected the nearer token's front marker to be visible")
	}
	if sawFar {
		t.Error("expected the farther token to be fully occluded")
	}

	if w.Tokens[33].LastSeen[0] != -5 {
		t.Errorf("occluded token's last_seen changed to %v, want -5", w.Tokens[33].LastSeen[0])
	}
	if w.Tokens[32].LastSeen[0] != w.Now {
		t.Errorf("visible token's last_seen is %v, want %v", w.Tokens[32].LastSeen[0], w.Now)
	}
}

func TestSeePopulatesHeader(t *testing.T) {
	w := simworld.NewWorld(180, nil)
	robot := w.CreateRobot(0, testRobotConfig(), 1, 1)

	payload := vision.See(w, robot, [2]int{640, 480}, rand.NewSource(1))
	if payload.Resolution != [2]int{640, 480} {
		t.Errorf("got resolution %v, want (640,480)", payload.Resolution)
	}
	if payload.FieldOfView != robot.FieldOfView {
		t.Errorf("got fov %v, want %v", payload.FieldOfView, robot.FieldOfView)
	}
}
