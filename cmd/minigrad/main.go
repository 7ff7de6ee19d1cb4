// Package main provides the minigrad CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/born-ml/minigrad/autodiff"
	"github.com/born-ml/minigrad/internal/config"
	"github.com/born-ml/minigrad/internal/logger"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "minigrad %s\n", version)
		return 0
	case "demo", "check":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.Load(config.Options{ConfigFile: os.Getenv("MINIGRAD_CONFIG")})
	if err != nil {
		fmt.Fprintf(stderr, "minigrad: %v\n", err)
		return 1
	}
	log := logger.New(cfg.Log, stderr)

	if args[0] == "demo" {
		demo(log, stdout)
		return 0
	}
	return check(log, cfg.GradCheck)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "minigrad - scalar reverse-mode automatic differentiation")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  demo       Differentiate z = x*y + x^2 at x=3, y=4")
	fmt.Fprintln(w, "  check      Compare backprop with finite differences")
}

// demo evaluates the worked example and prints every node of its graph.
func demo(log zerolog.Logger, w io.Writer) {
	x := autodiff.New(3)
	y := autodiff.New(4)
	z := autodiff.Add(x.Mul(y), x.Pow(2))

	z.Backward()
	log.Info().
		Float64("z", z.Data()).
		Float64("dz_dx", x.Grad()).
		Float64("dz_dy", y.Grad()).
		Msg("backward complete")

	autodiff.Walk(z, func(n *autodiff.Value) bool {
		label, ok := n.OpLabel()
		if !ok {
			label = "input"
		}
		fmt.Fprintf(w, "%-6s %s\n", label, n)
		return true
	})
}

// expression is a named gradient-check case.
type expression struct {
	name  string
	point []float64
	build func(v []*autodiff.Value) *autodiff.Value
}

var suite = []expression{
	{"x*y + x^2", []float64{3, 4}, func(v []*autodiff.Value) *autodiff.Value {
		return autodiff.Add(v[0].Mul(v[1]), v[0].Pow(2))
	}},
	{"(a - b) / (a * b)", []float64{2.5, -1.25}, func(v []*autodiff.Value) *autodiff.Value {
		return v[0].Sub(v[1]).Div(v[0].Mul(v[1]))
	}},
	{"relu(w*x + 1)^2", []float64{0.7, 1.9}, func(v []*autodiff.Value) *autodiff.Value {
		return autodiff.Add(v[0].Mul(v[1]), 1).ReLU().Pow(2)
	}},
	{"-(x^3) + 1/x", []float64{1.3}, func(v []*autodiff.Value) *autodiff.Value {
		return autodiff.Add(v[0].Pow(3).Neg(), autodiff.Div(1, v[0]))
	}},
}

func check(log zerolog.Logger, cfg config.GradCheckConfig) int {
	opts := autodiff.GradCheckOptions{Step: cfg.Step, Tolerance: cfg.Tolerance}

	failed := 0
	for _, e := range suite {
		if err := autodiff.CheckGradients(e.build, e.point, opts); err != nil {
			log.Error().Err(err).Str("expr", e.name).Msg("gradient check failed")
			failed++
			continue
		}
		log.Info().Str("expr", e.name).Msg("gradient check passed")
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", len(suite)).Msg("gradient check")
		return 1
	}
	return 0
}
