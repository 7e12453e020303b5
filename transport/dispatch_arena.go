package transport

import (
	"encoding/json"

	"github.com/roboarena/simulator/arenasvc"
)

type createRobotArgs struct {
	Team int `json:"team_number"`
}

type waitForOutputArgs struct {
	DurationSeconds float64 `json:"duration_seconds"`
}

type waitForOutputResult struct {
	StillRunning bool     `json:"still_running"`
	Messages     []string `json:"messages"`
}

// dispatchArena handles one arena-endpoint request. The second return
// value is true when the connection should close after this response,
// which happens only after terminate.
func dispatchArena(svc *arenasvc.Service, req Request) (Response, bool) {
	switch req.Op {
	case "createRobot":
		var args createRobotArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		url, err := svc.CreateRobot(args.Team)
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(url), false

	case "waitForStart":
		return resultResponse(svc.WaitForStart()), false

	case "waitForOutput":
		var args waitForOutputArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		stillRunning, messages := svc.WaitForOutput(args.DurationSeconds)
		return resultResponse(waitForOutputResult{StillRunning: stillRunning, Messages: messages}), false

	case "getScores":
		scores, err := svc.GetScores()
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(scores), false

	case "terminate":
		ok, err := svc.Terminate()
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(ok), true

	default:
		return faultResponse(req.Op, unknownOpError(req.Op)), false
	}
}
