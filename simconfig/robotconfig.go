package simconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// RobotConfig holds one team's fully sanitised robot parameters, read
// from "Robot {team}.json". The file is expected to contain a JSON
// array whose first element is the configuration record; only that
// first element is read.
type RobotConfig struct {
	Width, Length, Height float64
	StartX, StartY        float64
	Mass                  float64

	AxleLength   float64
	BaseMaxPower float64
	NoiseRange   float64

	CameraHeight        float64
	FieldOfView         float64 // half-angle, radians
	MarkerPixelsMinimum int
	MarkerPixelsNoise   int
	IgnoreMotionBlur    bool
}

// LoadRobotConfig reads and sanitises a team's robot configuration file.
// A missing or malformed file is a fatal ConfigError; a malformed field
// within an otherwise valid file is tolerated per the sanitiser
// contract.
func LoadRobotConfig(path string) (RobotConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RobotConfig{}, fmt.Errorf("simconfig: reading robot config %q: %w", path, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return RobotConfig{}, fmt.Errorf("simconfig: parsing robot config %q: %w", path, err)
	}
	if len(records) == 0 {
		return RobotConfig{}, fmt.Errorf("simconfig: robot config %q has no records", path)
	}

	return sanitiseRobotRecord(records[0]), nil
}

func sanitiseRobotRecord(rec map[string]any) RobotConfig {
	var c RobotConfig

	c.Width = SanitiseFloat(rec["Width"], 0.3, 0.01, 0.4)
	c.Length = SanitiseFloat(rec["Length"], 0.4, 0.01, 0.4)
	c.Height = SanitiseFloat(rec["Height"], 0.4, 0, math.Inf(1))
	c.Mass = SanitiseFloat(rec["Mass"], 1, 0.001, math.Inf(1))

	halfWidth := c.Width / 2
	halfLength := c.Length / 2

	var startX, startY any
	if pos, ok := rec["Starting Position"].([]any); ok && len(pos) == 2 {
		startX, startY = pos[0], pos[1]
	}
	c.StartX = SanitiseFloat(startX, 0, -0.25+halfLength, 5.75-halfLength)
	c.StartY = SanitiseFloat(startY, 0, -3+halfWidth, 3-halfWidth)

	c.AxleLength = SanitiseFloat(rec["Distance Between Wheels"], 0, 0, math.Inf(1))
	c.BaseMaxPower = SanitiseFloat(rec["Maximum Motor Power"], 1, 0, math.Inf(1))
	c.NoiseRange = SanitiseFloat(rec["Motor Noise Range"], 0, 0, math.Inf(1))

	c.CameraHeight = SanitiseFloat(rec["Camera Height"], 0.3, 0, math.Inf(1))
	fovDegrees := SanitiseFloat(rec["Camera Field of View"], 45, 0, 360)
	c.FieldOfView = fovDegrees * math.Pi / 360

	c.MarkerPixelsMinimum = SanitiseInt(rec["Marker Pixels Minimum"], 0, 0, math.MaxInt32)
	c.MarkerPixelsNoise = SanitiseInt(rec["Marker Pixels Noise Range"], 0, 0, math.MaxInt32)
	c.IgnoreMotionBlur = SanitiseBool(rec["Ignore Motion Blur"], false)

	return c
}
