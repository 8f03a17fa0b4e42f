package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/fasteners/component"
	"github.com/delaneyj/fasteners/fastener"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	iterationsKey = "iterations"
	framesKey     = "frames"
	profileKey    = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure fastener propagation through owner trees",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Transitions per tree shape",
				Value: 100,
			},
			&cli.UintFlag{
				Name:  framesKey,
				Usage: "Ticks per transition",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var (
	ww = []int{1, 10, 100}
	hh = []int{1, 10, 100}
)

var (
	opacity = fastener.DeclareNumberAnimator("opacity", fastener.AnimatorConfig[float64]{
		PropertyConfig: fastener.PropertyConfig[float64]{
			Options: fastener.Options{Inherits: true, Eager: true},
		},
	})
	color = fastener.DeclareProperty("color", fastener.PropertyConfig[int]{
		Options: fastener.Options{Inherits: true, Eager: true},
	})
	viewClass = fastener.NewClass("view", nil, opacity, color)
)

func benchmark(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(iterationsKey))
	frames := int(cmd.Uint(framesKey))
	if iters == 0 || frames == 0 {
		return fmt.Errorf("%s and %s must be positive", iterationsKey, framesKey)
	}

	log.Printf("warming up")
	if err := benchmarkTween(iters, frames, false); err != nil {
		return err
	}

	if err := benchmarkTween(iters, frames, true); err != nil {
		return err
	}
	return benchmarkProperty(iters, true)
}

// buildTree hangs w chains of h nodes below a root.
func buildTree(w, h int) (root *component.Node, leaves []*component.Node, count int) {
	root = component.New(viewClass, "root")
	count = 1
	for i := 0; i < w; i++ {
		last := root
		for j := 0; j < h; j++ {
			n := component.New(viewClass, fmt.Sprintf("n%d.%d", i, j))
			last.AppendChild(n)
			last = n
			count++
		}
		leaves = append(leaves, last)
	}
	root.Mount()
	return root, leaves, count
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "nodes", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, nodes int, calc *tachymeter.Metrics) {
	tbl.AppendRows([]table.Row{
		{
			name,
			humanize.Comma(int64(nodes)),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func benchmarkTween(iters, frames int, shouldRender bool) error {
	tbl := newTable("Inherited animator flush")

	timing := fastener.NewTiming(fastener.Linear, float64(frames))
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters * (frames + 1)})

			root, leaves, count := buildTree(w, h)
			src := opacity.Get(root)

			t := 0.0
			for i := 0; i < iters; i++ {
				src.SetState(float64(i%2), timing, fastener.Extrinsic)
				for f := 0; f <= frames; f++ {
					start := time.Now()
					root.Recohere(t)
					tach.AddTime(time.Since(start))
					t++
				}
				if err := converged(src.Value(), leaves); err != nil {
					return err
				}
			}
			root.Unmount()

			appendCalc(tbl, fmt.Sprintf("tween: %d * %d", w, h), count, tach.Calc())
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}

func benchmarkProperty(iters int, shouldRender bool) error {
	tbl := newTable("Inherited property write")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			root, leaves, count := buildTree(w, h)
			src := color.Get(root)
			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetState(src.Value()+1, fastener.Intrinsic)
				tach.AddTime(time.Since(start))
			}
			for _, leaf := range leaves {
				if v := color.Get(leaf).Value(); v != src.Value() {
					return fmt.Errorf("leaf %s has color %d, want %d", leaf.Name(), v, src.Value())
				}
			}
			root.Unmount()

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), count, tach.Calc())
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}

func converged(want float64, leaves []*component.Node) error {
	for _, leaf := range leaves {
		a := opacity.Get(leaf)
		if a.Value() != want || a.Tweening() {
			return fmt.Errorf("leaf %s has opacity %v, want %v", leaf.Name(), a.Value(), want)
		}
	}
	return nil
}
