package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"example.com/ftracker/internal/report"
	"example.com/ftracker/internal/training"
)

type sensorPackage struct {
	workoutType string
	data        []float64
}

var packages = []sensorPackage{
	{workoutType: "SWM", data: []float64{720, 1, 80, 25, 40}},
	{workoutType: "RUN", data: []float64{15000, 1, 75}},
	{workoutType: "WLK", data: []float64{9000, 1, 75, 180}},
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo})))

	if err := run(os.Stdout, packages); err != nil {
		slog.Error("workout batch aborted", "error", err)
		os.Exit(1)
	}
}

// run prints one summary line per package and stops at the first failure.
func run(out io.Writer, pkgs []sensorPackage) error {
	for _, pkg := range pkgs {
		w, err := training.ReadPackage(pkg.workoutType, pkg.data)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, report.Show(w).Message()); err != nil {
			return err
		}
	}
	return nil
}
