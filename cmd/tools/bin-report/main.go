// Package main renders an HTML report of junction exit predictions for
// a scene. It runs the same evaluation pipeline as the predict command
// and charts the 12-bin probability distribution and the per-path
// probabilities for each obstacle using go-echarts, which is handy for
// eyeballing how the smoothing spreads mass across neighbouring bins.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gridline-data/junction.report/internal/geom"
	"github.com/gridline-data/junction.report/internal/junction"
	"github.com/gridline-data/junction.report/internal/mlp"
)

func main() {
	var (
		modelFile = flag.String("model", "config/junction_mlp.json", "path to the MLP model file")
		sceneFile = flag.String("scene", "", "path to the scene JSON file (required)")
		outFile   = flag.String("out", "bin_report.html", "output HTML file")
	)
	flag.Parse()

	if *sceneFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	model, err := mlp.Load(*modelFile)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}

	scene, err := junction.LoadScene(*sceneFile)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}

	evaluator, err := junction.NewEvaluator(model, scene.EgoProvider(), junction.DefaultEvaluatorConfig())
	if err != nil {
		log.Fatalf("build evaluator: %v", err)
	}

	store := scene.Store()
	evaluated := evaluator.EvaluateAll(store)

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Junction Predictions: %s", scene.SceneID)

	charted := 0
	for _, id := range store.IDs() {
		obs, ok := store.Get(id)
		if !ok || len(obs.JunctionProbabilities) == 0 {
			continue
		}
		page.AddCharts(binChart(obs))
		if paths := pathChart(obs); paths != nil {
			page.AddCharts(paths)
		}
		charted++
	}

	if charted == 0 {
		log.Fatalf("no obstacles with predictions in scene %s", scene.SceneID)
	}

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		log.Fatalf("render report: %v", err)
	}

	fmt.Printf("evaluated %d obstacles, charted %d, wrote %s\n", evaluated, charted, *outFile)
}

// binChart renders the obstacle's 12-bin exit probability distribution.
// Bins are labelled by the centre angle of each direction sector.
func binChart(obs *junction.Obstacle) *charts.Bar {
	labels := make([]string, geom.DirectionBins)
	values := make([]opts.BarData, geom.DirectionBins)
	for i := 0; i < geom.DirectionBins; i++ {
		labels[i] = fmt.Sprintf("%d°", i*360/geom.DirectionBins)
		v := 0.0
		if i < len(obs.JunctionProbabilities) {
			v = obs.JunctionProbabilities[i]
		}
		values[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Obstacle %d", obs.ID),
			Subtitle: fmt.Sprintf("junction=%s", junctionID(obs)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "exit direction"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "probability"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("bin probability", values)
	return bar
}

// pathChart renders per-lane-sequence probabilities after
// redistribution, or nil when the obstacle has no lane graph.
func pathChart(obs *junction.Obstacle) *charts.Bar {
	if obs.LaneGraph == nil || len(obs.LaneGraph.Sequences) == 0 {
		return nil
	}

	type pathProb struct {
		label string
		prob  float64
	}
	paths := make([]pathProb, 0, len(obs.LaneGraph.Sequences))
	for i, seq := range obs.LaneGraph.Sequences {
		label := fmt.Sprintf("seq %d", i)
		if n := len(seq.Segments); n > 0 {
			label = seq.Segments[n-1].LaneID
		}
		paths = append(paths, pathProb{label: label, prob: seq.Probability})
	}
	sort.Slice(paths, func(a, b int) bool { return paths[a].prob > paths[b].prob })

	labels := make([]string, len(paths))
	values := make([]opts.BarData, len(paths))
	for i, p := range paths {
		labels[i] = p.label
		values[i] = opts.BarData{Value: p.prob}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Obstacle %d lane sequences", obs.ID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "terminal lane"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "probability"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("path probability", values)
	return bar
}

func junctionID(obs *junction.Obstacle) string {
	if obs.Junction == nil {
		return ""
	}
	return obs.Junction.JunctionID
}
