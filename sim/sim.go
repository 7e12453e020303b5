// Package sim wires the world, scheduler, arena/robot services and
// transport together into one running simulator process.
package sim

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"github.com/roboarena/simulator/arenasvc"
	"github.com/roboarena/simulator/robotsvc"
	"github.com/roboarena/simulator/scheduler"
	"github.com/roboarena/simulator/simconfig"
	"github.com/roboarena/simulator/simworld"
	"github.com/roboarena/simulator/transport"
)

// Config holds everything needed to start one simulator process.
type Config struct {
	Addr      string  // host:port to listen on
	ConfigDir string  // directory holding "Token Position Config.json" and "Robot {team}.json"
	EndTime   float64 // simulated seconds; 0 means the default of 180
	Seed      uint64
}

// Simulator owns the world, scheduler and HTTP mux for one run.
type Simulator struct {
	world *simworld.World
	sched *scheduler.Scheduler
	arena *arenasvc.Service
	mux   *http.ServeMux
	addr  string
	seed  uint64
}

// New builds a Simulator: loads token placements, constructs the
// world, registers the arena actor, and wires the HTTP mux. It does
// not yet listen.
func New(cfg Config) (*Simulator, error) {
	endTime := cfg.EndTime
	if endTime == 0 {
		endTime = 180.0
	}

	placements, err := simconfig.LoadTokenConfig(cfg.ConfigDir + "/Token Position Config.json")
	if err != nil {
		// Per-field errors are tolerated inside the loader; a
		// file-level error is fatal at startup.
		return nil, fmt.Errorf("sim: %w", err)
	}

	world := simworld.NewWorld(endTime, placements)
	sched := scheduler.New()
	arenaActor := sched.NewArena()

	s := &Simulator{
		world: world,
		sched: sched,
		mux:   http.NewServeMux(),
		addr:  cfg.Addr,
		seed:  cfg.Seed,
	}

	rng := rand.NewSource(cfg.Seed)
	arenaSvc := arenasvc.New(world, sched, arenaActor, cfg.ConfigDir, rng, s.robotEndpointURL)
	s.arena = arenaSvc

	s.mux.HandleFunc("/arena", transport.ArenaHandler(arenaSvc))

	return s, nil
}

// robotEndpointURL is handed to arenasvc as its endpoint-URL builder;
// it also registers the robot's HTTP handler the first time it's
// asked for a given team. CreateRobot has already registered the
// scheduling actor for team by the time this runs, so it only looks
// that actor back up rather than creating a second one.
func (s *Simulator) robotEndpointURL(team int) string {
	path := fmt.Sprintf("/robot/%d", team)
	body := s.world.Robots[team]
	actor := s.arena.RobotActor(team)
	robotSvc := robotsvc.New(s.world, s.sched, actor, body, team, rand.NewSource(s.seed+uint64(team)+1))
	s.mux.HandleFunc(path, transport.RobotHandler(robotSvc))
	return fmt.Sprintf("ws://%s%s", s.addr, path)
}

// Run starts the HTTP listener and the scheduler's main tick loop, and
// blocks until the tick loop terminates (i.e. until the simulation has
// ended and the arena has been joined).
func (s *Simulator) Run() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("sim: listen: %w", err)
	}
	s.addr = listener.Addr().String()

	go func() {
		if err := http.Serve(listener, s.mux); err != nil {
			trace(fmt.Sprintf("http server stopped: %v", err))
		}
	}()

	fmt.Printf("Arena URL = ws://%s/arena\n", s.addr)
	os.Stdout.Sync()

	s.sched.Run(s.world.IsRunning, func() float64 { return s.world.Now }, s.world.Step)
	return nil
}

// trace writes a diagnostic line to standard error only; standard
// output belongs to the controller process.
func trace(text string) {
	fmt.Fprintf(os.Stderr, "sim at %v: %s\n", time.Now(), text)
}
