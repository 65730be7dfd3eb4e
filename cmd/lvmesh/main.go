// Command lvmesh generates 2D meshes from the command line or serves them
// over HTTP.
//
// Usage:
//
//	lvmesh test                  mesh a built-in 4x3 rectangle, write test_mesh.csv
//	lvmesh json <file>           mesh the request in <file>, write <file>_mesh.csv
//	lvmesh json-stdin            request on stdin, JSON record on stdout
//	lvmesh csv-stdin             request on stdin, CSV table on stdout
//	lvmesh geojson-stdin         request on stdin, GeoJSON on stdout
//	lvmesh serve [-config file]  run the HTTP server
//
// Requests are JSON objects as accepted by POST /mesh; missing fields take
// the configured defaults.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/export"
	"github.com/katalvlaran/lvmesh/generate"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/server"
)

var errUsage = errors.New("usage")

const usage = `Usage: lvmesh <mode> [options]
Modes:
  test                  Run with example data
  json <file>           Load a request from a JSON file, write <file>_mesh.csv
  json-stdin            Read a request from stdin and output JSON
  csv-stdin             Read a request from stdin and output CSV
  geojson-stdin         Read a request from stdin and output GeoJSON
  serve [-config file]  Serve the HTTP API
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one mode and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "test":
		err = runTest(stdout, "test_mesh.csv")
	case "json":
		if len(args) < 2 {
			err = fmt.Errorf("%w: lvmesh json <file>", errUsage)
			break
		}
		err = runFile(stdout, args[1])
	case "json-stdin", "csv-stdin", "geojson-stdin":
		err = runStdin(strings.TrimSuffix(args[0], "-stdin"), stdin, stdout)
	case "serve":
		err = runServe(args[1:], stderr)
	default:
		err = fmt.Errorf("%w: unknown mode %q", errUsage, args[0])
	}
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "lvmesh:", err)
	if errors.Is(err, errUsage) {
		fmt.Fprint(stderr, usage)
		return 2
	}

	return 1
}

func decodeRequest(r io.Reader) (generate.Request, error) {
	var req generate.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("parse request: %w", err)
	}

	return req.WithDefaults(config.Default().Defaults), nil
}

func writeCSVFile(path string, poly geom.Polygon, res generate.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, poly, res.Mesh); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func summary(w io.Writer, res generate.Result) {
	fmt.Fprintln(w, "Mesh generated successfully!")
	fmt.Fprintf(w, "Vertices: %d\n", len(res.Mesh.Vertices))
	fmt.Fprintf(w, "Triangles: %d\n", len(res.Mesh.Triangles))
	fmt.Fprintf(w, "Quads: %d\n", len(res.Mesh.Quads))
	fmt.Fprintf(w, "Converged: %v\n", res.Converged)
}

func runTest(w io.Writer, out string) error {
	fmt.Fprintln(w, "Running test with example data...")
	req := generate.Request{
		Geometry: geom.Polygon{Name: "rectangle", Points: []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}}},
		MaxArea:  0.5,
		MinAngle: 25,
	}
	res, err := generate.Generate(req)
	if err != nil {
		return err
	}
	summary(w, res)
	fmt.Fprintln(w, "\nVertices:")
	for i, v := range res.Mesh.Vertices {
		fmt.Fprintf(w, "  %d: (%.2f, %.2f)\n", i, v.X, v.Y)
	}
	fmt.Fprintln(w, "\nTriangles:")
	for i, t := range res.Mesh.Triangles {
		fmt.Fprintf(w, "  %d: [%d, %d, %d]\n", i, t[0], t[1], t[2])
	}
	if err := writeCSVFile(out, req.Geometry, res); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nCSV exported to %s\n", out)

	return nil
}

func runFile(w io.Writer, path string) error {
	fmt.Fprintf(w, "Loading geometry from %s...\n", path)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	req, err := decodeRequest(f)
	if err != nil {
		return err
	}
	res, err := generate.Generate(req)
	if err != nil {
		return err
	}
	summary(w, res)
	out := strings.TrimSuffix(path, ".json") + "_mesh.csv"
	if err := writeCSVFile(out, req.Geometry, res); err != nil {
		return err
	}
	fmt.Fprintf(w, "CSV exported to %s\n", out)

	return nil
}

func runStdin(format string, r io.Reader, w io.Writer) error {
	req, err := decodeRequest(r)
	if err != nil {
		return err
	}
	res, err := generate.Generate(req)
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return export.WriteCSV(w, req.Geometry, res.Mesh)
	case "geojson":
		b, err := export.GeoJSON(res.Mesh, res.Metric).MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)

		return err
	default:
		return export.WriteJSON(w, export.FromMesh(res.Mesh).WithStats(res.Mesh, res.Metric))
	}
}

func runServe(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			return err
		}
	}
	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}
	lvmesh.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg).Run(ctx)
}
