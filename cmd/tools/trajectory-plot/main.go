// Package main plots the fitted obstacle-to-exit trajectory used by the
// junction cost model. It fits the same polynomial the evaluator fits
// for a given exit offset, heading difference, and speed, then renders
// the path and the curvature profile as PNGs so the cost behaviour can
// be inspected for a specific geometry.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gridline-data/junction.report/internal/geom"
	"github.com/gridline-data/junction.report/internal/junction"
)

func main() {
	var (
		dx         = flag.Float64("dx", 20, "exit offset along the obstacle heading (m)")
		dy         = flag.Float64("dy", 0, "exit offset across the obstacle heading (m)")
		headingDeg = flag.Float64("heading", 0, "exit heading relative to the obstacle heading (degrees)")
		speed      = flag.Float64("speed", 5, "obstacle speed (m/s)")
		step       = flag.Float64("step", junction.DefaultTrajectoryTimeStep, "sampling time step (s)")
		outputDir  = flag.String("out", "plots", "output directory for PNG files")
	)
	flag.Parse()

	if *step <= 0 {
		log.Fatalf("step must be positive, got %g", *step)
	}

	diff := geom.Vec2{X: *dx, Y: *dy}
	headingDiff := *headingDeg * math.Pi / 180

	x, y, travelTime := junction.FitExitTrajectory(diff, headingDiff, *speed)

	pathPts := make(plotter.XYs, 0, int(travelTime / *step)+1)
	curvePts := make(plotter.XYs, 0, cap(pathPts))
	maxCurvature := 0.0
	for t := 0.0; t <= travelTime; t += *step {
		pathPts = append(pathPts, plotter.XY{X: x.Eval(t), Y: y.Eval(t)})
		c := junction.Curvature(x, y, t)
		curvePts = append(curvePts, plotter.XY{X: t, Y: c})
		if c > maxCurvature {
			maxCurvature = c
		}
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	pathFile := filepath.Join(*outputDir, "trajectory_path.png")
	if err := savePlot(pathPts, "Fitted Exit Trajectory", "x (m)", "y (m)", pathFile); err != nil {
		log.Fatalf("save path plot: %v", err)
	}

	curveFile := filepath.Join(*outputDir, "trajectory_curvature.png")
	if err := savePlot(curvePts, "Curvature Along Trajectory", "t (s)", "curvature proxy", curveFile); err != nil {
		log.Fatalf("save curvature plot: %v", err)
	}

	fmt.Printf("travel time: %.3fs, max curvature: %.4f\n", travelTime, maxCurvature)
	fmt.Printf("wrote %s and %s\n", pathFile, curveFile)
}

func savePlot(pts plotter.XYs, title, xLabel, yLabel, file string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return p.Save(8*vg.Inch, 6*vg.Inch, file)
}
