// Command simulator starts one multi-robot competition simulator
// process: it loads the token/robot configuration, listens for the
// arena and per-robot RPC endpoints, prints the arena URL, and runs
// the cooperative main tick loop until the simulated clock reaches
// the end time.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/roboarena/simulator/sim"
)

var (
	host      *string
	port      *string
	configDir *string
	endTime   *float64
	seed      *uint64
)

func init() {
	host = flag.String("host", "127.0.0.1", "host address to listen on")
	port = flag.String("port", "0", "port to listen on (0 picks a free port)")
	configDir = flag.String("configdir", ".", "directory holding \"Token Position Config.json\" and \"Robot k.json\"")
	endTime = flag.Float64("endtime", 180.0, "simulated seconds before the run ends")
	seed = flag.Uint64("seed", 1, "seed for motor-noise and vision-jitter sampling")
}

func main() {
	flag.Parse()

	cfg := sim.Config{
		Addr:      fmt.Sprintf("%s:%s", *host, *port),
		ConfigDir: *configDir,
		EndTime:   *endTime,
		Seed:      *seed,
	}

	s, err := sim.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulator:", err)
		os.Exit(1)
	}

	if err := s.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "simulator:", err)
		os.Exit(1)
	}

	os.Exit(0)
}
