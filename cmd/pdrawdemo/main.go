// Command pdrawdemo renders a sample figure to PNG.
//
// Static figures produce one image. Animated figures produce -frames
// images at -fps frames per second of animation time, numbered before the
// file extension (pendulum-000.png, pendulum-001.png, ...).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/pdraw"
	"github.com/gogpu/pdraw/canvas/raster"
	"github.com/gogpu/pdraw/config"
	"github.com/gogpu/pdraw/imagecache"
	"github.com/gogpu/pdraw/internal/figures"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		list       = flag.Bool("list", false, "list the figures and exit")
		figure     = flag.String("figure", "", "figure to render")
		width      = flag.Int("width", 0, "image width")
		height     = flag.Int("height", 0, "image height")
		output     = flag.String("output", "", "output file")
		frames     = flag.Int("frames", 0, "number of animation frames")
		fps        = flag.Float64("fps", 0, "animation frames per second")
	)
	flag.Parse()

	if *list {
		for _, f := range figures.All() {
			fmt.Printf("%-12s %s\n", f.Name, f.Description)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// Flags given on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "figure":
			cfg.Figure = *figure
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "output":
			cfg.Output = *output
		case "frames":
			cfg.Frames = *frames
		case "fps":
			cfg.FPS = *fps
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	pdraw.SetLogger(logger)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("render failed", "figure", cfg.Figure, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	fig, ok := figures.Lookup(cfg.Figure)
	if !ok {
		return fmt.Errorf("unknown figure %q (have %s)", cfg.Figure, strings.Join(figures.Names(), ", "))
	}
	if cfg.FontPath != "" {
		data, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return err
		}
		if err := raster.RegisterFont("regular", data); err != nil {
			return err
		}
	}

	images := imagecache.New(imageSource(cfg), imagecache.WithTimeout(10*time.Second))
	c := raster.New(cfg.Width, cfg.Height)
	a, err := fig.New(c, pdraw.WithImageCache(images))
	if err != nil {
		return err
	}
	defer a.Close()
	// Images requested by the first draw load in the background; wait so
	// they make it into the output.
	images.Wait()

	n := 1
	if fig.Animated {
		n = cfg.Frames
		a.StartAnim()
	}
	for i := range n {
		if fig.Animated {
			err = a.Frame(float64(i) * 1000 / cfg.FPS)
		} else {
			err = a.Redraw()
		}
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}
		path := framePath(cfg.Output, i, n)
		if err := c.SavePNG(path); err != nil {
			return err
		}
		slog.Info("wrote frame", "path", path, "t", a.LastDrawTime())
	}
	return ctx.Err()
}

// imageSource reads TeX labels and images from the configured URL when
// set, otherwise from the image directory.
func imageSource(cfg *config.Config) imagecache.Source {
	if cfg.TexBaseURL != "" {
		return imagecache.HTTPSource{BaseURL: cfg.TexBaseURL}
	}
	return imagecache.DirSource{Root: cfg.ImageDir}
}

// framePath numbers frame i of n before the extension of output. A single
// frame keeps output unchanged.
func framePath(output string, i, n int) string {
	if n == 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(output, ext), i, ext)
}
