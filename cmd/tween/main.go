package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

const (
	fromKey     = "from"
	toKey       = "to"
	durationKey = "duration"
	easingKey   = "easing"
	stepKey     = "step"
	scenarioKey = "scenario"
	formatKey   = "format"
)

func main() {
	cmd := &cli.Command{
		Name:  "tween",
		Usage: "Trace an animator transition tick by tick",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  fromKey,
				Usage: "Initial value",
			},
			&cli.FloatFlag{
				Name:  toKey,
				Usage: "Target state",
				Value: 100,
			},
			&cli.FloatFlag{
				Name:  durationKey,
				Usage: "Transition duration",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:  easingKey,
				Usage: "linear, ease, ease-in, ease-out or ease-in-out",
				Value: "linear",
			},
			&cli.FloatFlag{
				Name:  stepKey,
				Usage: "Time between ticks",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  scenarioKey,
				Usage: "YAML scenario file; overrides the transition flags",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format: table, jsonl or dump",
				Value: "table",
			},
		},
		Action: trace,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func trace(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()

	var s *Scenario
	if path := cmd.String(scenarioKey); path != "" {
		var err error
		if s, err = LoadScenario(path); err != nil {
			return err
		}
	} else {
		s = &Scenario{
			Name:     "flags",
			Initial:  cmd.Float(fromKey),
			Duration: cmd.Float(durationKey),
			Easing:   cmd.String(easingKey),
			Step:     cmd.Float(stepKey),
			Writes:   []Write{{State: cmd.Float(toKey)}},
		}
		if err := s.normalize(); err != nil {
			return err
		}
	}

	log.Printf("Tracing %q over %s ticks", s.Name, humanize.Comma(int64(s.Ticks())))
	frames, err := s.Run()
	if err != nil {
		return err
	}

	switch format := cmd.String(formatKey); format {
	case "table":
		renderTable(os.Stdout, frames)
	case "jsonl":
		renderJSONL(os.Stdout, frames)
	case "dump":
		renderDump(os.Stdout, frames)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	log.Printf("Traced %s frames in %v", humanize.Comma(int64(len(frames))), time.Since(start))
	return nil
}
