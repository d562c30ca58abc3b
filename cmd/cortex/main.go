// Command cortex renders the link neighborhood of a focal content node
// as a force-directed layout inside a two-lobe silhouette, writing the
// settled frame as PNG or SVG.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vanderheijden86/cortex/internal/datasource"
	"github.com/vanderheijden86/cortex/pkg/config"
	"github.com/vanderheijden86/cortex/pkg/debug"
	"github.com/vanderheijden86/cortex/pkg/mount"
	"github.com/vanderheijden86/cortex/pkg/render"
	"github.com/vanderheijden86/cortex/pkg/version"
	"github.com/vanderheijden86/cortex/pkg/visited"
	"github.com/vanderheijden86/cortex/pkg/watcher"
)

func main() {
	indexPath := flag.String("index", "", "Path to the content index (index.json or index.db); auto-discovered in the working directory when empty")
	focal := flag.String("focal", "", "ID of the focal node")
	out := flag.String("out", "graph.png", "Output file")
	format := flag.String("format", "", "Output format: png or svg (inferred from -out when empty)")
	frames := flag.Int("frames", 300, "Simulation frames to run before writing the output")
	size := flag.String("size", "1200x800", "Viewport size as WIDTHxHEIGHT")
	configPath := flag.String("config", "", "Config file path (defaults to the XDG config location)")
	seed := flag.Int64("seed", 0, "Layout seed; 0 derives one from the clock")
	watch := flag.Bool("watch", false, "Re-render whenever the index file changes")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: cortex [options]")
		fmt.Println("\nRenders a focal node's link neighborhood inside a two-lobe silhouette.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("cortex %s\n", version.Version)
		os.Exit(0)
	}

	if *focal == "" {
		fmt.Fprintln(os.Stderr, "Error: -focal is required")
		os.Exit(1)
	}

	width, height, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	indexFile, err := resolveIndex(*indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outFormat := *format
	if outFormat == "" {
		if strings.HasSuffix(strings.ToLower(*out), ".svg") {
			outFormat = "svg"
		} else {
			outFormat = "png"
		}
	}

	renderOnce := func() error {
		return renderFrame(indexFile, *focal, cfg, outFormat, *out, width, height, *frames, *seed)
	}

	if err := renderOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)

	if !*watch {
		return
	}

	w, err := watcher.NewWatcher(indexFile,
		watcher.WithOnChange(func() {
			debug.Log("index changed, re-rendering")
			if err := renderOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Render error: %v\n", err)
				return
			}
			fmt.Printf("Wrote %s\n", *out)
		}),
		watcher.WithOnError(func(err error) {
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := w.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", indexFile)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// resolveIndex returns the explicit path or discovers the freshest index
// source in the working directory.
func resolveIndex(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("index not found: %s", path)
		}
		return path, nil
	}
	sources, err := datasource.Discover("")
	if err != nil {
		return "", err
	}
	if len(sources) == 0 {
		return "", fmt.Errorf("no index found; pass -index")
	}
	debug.Log("selected source: %s", sources[0])
	return sources[0].Path, nil
}

func renderFrame(indexFile, focal string, cfg config.Config, format, out string, width, height, frames int, seed int64) error {
	start := time.Now()
	index, err := datasource.LoadPath(indexFile)
	if err != nil {
		return err
	}
	debug.LogTiming("load index", time.Since(start))

	vis := visited.Load(visited.StatePath())

	var surface render.Surface
	var raster *render.Raster
	var svgFile *os.File
	switch format {
	case "png":
		raster = render.NewRaster()
		surface = raster
	case "svg":
		svgFile, err = os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer svgFile.Close()
		surface = render.NewSVG(svgFile)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	engine := mount.NewEngine(mount.EngineOptions{
		Index:   index,
		FocalID: focal,
		Config:  cfg,
		Surface: surface,
		Width:   width,
		Height:  height,
		Seed:    seed,
		Visited: vis,
	})
	defer engine.Teardown()

	if len(engine.Graph.Nodes) == 0 {
		return fmt.Errorf("focal node not found in index: %s", focal)
	}

	// Run the simulation to a settled state; only the final frame is
	// drawn for PNG, while SVG streams a single document so the surface
	// is driven once at the end.
	for i := 0; i < frames-1; i++ {
		engine.Sim.Step()
	}
	if err := engine.Step(mount.DefaultFrameInterval); err != nil {
		return err
	}
	debug.LogTiming("layout+render", time.Since(start))

	if raster != nil {
		return raster.SavePNG(out)
	}
	return nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}
