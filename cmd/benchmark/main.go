package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"

	"github.com/GhostKellz/ripple/host"
	"github.com/GhostKellz/ripple/reactive"
	"github.com/GhostKellz/ripple/render"
	"github.com/GhostKellz/ripple/template"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("running benchmarks")

	benchmarkPropagate(true)
	benchmarkMount(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100
)

// benchmarkPropagate times a write rippling through w memo chains of
// height h, each terminated by an effect.
func benchmarkPropagate(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Ripple Signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := reactive.New()
			src := reactive.Signal(rt, 1)
			for i := 0; i < w; i++ {
				var last reactive.Readable[int] = src
				for j := 0; j < h; j++ {
					prev := last
					m, err := reactive.Memo(rt, func() (int, error) {
						return prev.Value() + 1, nil
					})
					if err != nil {
						log.Panic(err)
					}
					last = m
				}

				tail := last
				if _, err := reactive.Effect(rt, func() error {
					tail.Value()
					return nil
				}); err != nil {
					log.Panic(err)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.SetValue(src.Peek() + 1); err != nil {
					log.Panic(err)
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// nullHost is a do-nothing mount table so mount timing excludes any real
// host work.
func nullHost() *host.Bindings {
	next := host.NodeID(2)
	return &host.Bindings{
		CreateElement: func(any, string) host.NodeID { next++; return next },
		CreateText:    func(any, string) host.NodeID { next++; return next },
		AppendChild:   func(any, host.NodeID, host.NodeID) {},
		SetAttribute:  func(any, host.NodeID, string, string) {},
		SetText:       func(any, host.NodeID, string) {},
		RegisterEvent: func(any, string) {},
		ResolvePortal: func(any, string) host.NodeID { return 1 },
	}
}

var benchmarkTemplates = []struct {
	name   string
	src    string
	values []string
}{
	{
		name:   "small",
		src:    `<div class="card"><h1>{{title}}</h1><p>{{body}}</p></div>`,
		values: []string{"hello", "world"},
	},
	{
		name: "island+suspense",
		src: `<!--island:feed--><section><h2>{{head}}</h2>` +
			`<!--suspense:start items--><ul><li>{{a}}</li><li>{{b}}</li></ul>` +
			`<!--suspense:fallback--><p>loading</p><!--/suspense--></section><!--/island-->`,
		values: []string{"Feed", "one", "two"},
	},
}

// benchmarkMount reports mount throughput per template against a no-op
// host.
func benchmarkMount(shouldRender bool) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"template", "ops", "elements", "nTimes", "time", "mounts/sec"})

	b := nullHost()
	mountIters := 100_000
	for _, bt := range benchmarkTemplates {
		plan, err := template.Compile(bt.src)
		if err != nil {
			log.Panic(err)
		}
		prog, err := render.Build(plan)
		if err != nil {
			log.Panic(err)
		}

		start := time.Now()
		for i := 0; i < mountIters; i++ {
			res, err := render.MountWith(b, prog, 1, bt.values)
			if err != nil {
				log.Panic(err)
			}
			res.Dispose()
		}
		elapsed := time.Since(start)
		rate := float64(mountIters) / elapsed.Seconds()

		tbl.Append([]string{
			bt.name,
			humanize.Comma(int64(len(prog.Ops))),
			humanize.Comma(int64(prog.MaxHydrationID)),
			humanize.Comma(int64(mountIters)),
			elapsed.String(),
			humanize.Comma(int64(rate)),
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
