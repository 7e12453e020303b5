package transport

import (
	"encoding/json"
	"fmt"

	"github.com/roboarena/simulator/robotsvc"
	"github.com/roboarena/simulator/simerr"
)

type motorIndexArgs struct {
	Index int `json:"index"`
}

type setMotorPowerArgs struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

type printArgs struct {
	Message string `json:"message"`
}

type sleepArgs struct {
	Seconds float64 `json:"seconds"`
}

type seeArgs struct {
	Resolution [2]int `json:"resolution"`
}

// dispatchRobot handles one robot-endpoint request.
func dispatchRobot(svc *robotsvc.Service, req Request) (Response, bool) {
	switch req.Op {
	case "getTeamNumber":
		return resultResponse(svc.GetTeamNumber()), false

	case "getMotorPower":
		var args motorIndexArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		power, err := svc.GetMotorPower(args.Index)
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(power), false

	case "setMotorPower":
		var args setMotorPowerArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		clamped, err := svc.SetMotorPower(args.Index, args.Value)
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(clamped), false

	case "print":
		var args printArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		ok, err := svc.Print(args.Message)
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(ok), false

	case "sleep":
		var args sleepArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		stillRunning, err := svc.Sleep(args.Seconds)
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(stillRunning), false

	case "see":
		var args seeArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return faultResponse(req.Op, err), false
		}
		payload, err := svc.See(args.Resolution)
		if err != nil {
			return faultResponse(req.Op, err), false
		}
		return resultResponse(payload), false

	case "waitForStart":
		return resultResponse(svc.WaitForStart()), false

	default:
		return faultResponse(req.Op, unknownOpError(req.Op)), false
	}
}

func unknownOpError(op string) error {
	return simerr.New(simerr.InvalidArgument, op, fmt.Sprintf("unknown operation %q", op))
}
