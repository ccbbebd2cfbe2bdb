package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v3"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"

	_ "net/http/pprof"

	"github.com/royalcat/pointfield/config"
	"github.com/royalcat/pointfield/internal/logging"
	"github.com/royalcat/pointfield/internal/runstats"
	"github.com/royalcat/pointfield/jfa"
	"github.com/royalcat/pointfield/pointset"
	"github.com/royalcat/pointfield/preview"
	"github.com/royalcat/pointfield/server"
)

func main() {
	app := &cli.App{
		Name:        "pointfield",
		Description: "Generates spatial point distributions: regular grids and Poisson-disk blue noise",
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "generates a point distribution and writes it to a csv file",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "mode",
						Aliases:  []string{"m"},
						Usage:    "1: grid with exactly N points, 2: grid with spacing d, 3: poisson-disk with min distance d",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "value",
						Aliases:  []string{"v"},
						Usage:    "N for modes 1-2, minimum distance d for mode 3",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "width",
						Value: 100,
					},
					&cli.Float64Flag{
						Name:  "height",
						Value: 100,
					},
					&cli.Int64Flag{
						Name:        "seed",
						DefaultText: "current time",
					},
					&cli.StringFlag{
						Name:      "points",
						Aliases:   []string{"p"},
						Usage:     "output csv path, .zst suffix enables compression",
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "preview",
						Usage:     "optional html scatter preview path",
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "voronoi",
						Usage:     "optional voronoi ownership png path",
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "config",
						Aliases:   []string{"c"},
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "log-file",
						TakesFile: true,
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "write a runtime stats report next to the points file",
					},
					&cli.StringFlag{
						Name:        "pprof.listen",
						DefaultText: "",
					},
					&cli.BoolFlag{
						Name: "pprof.profile",
					},
					&cli.BoolFlag{
						Name: "pprof.heap",
					},
				},
				Action: generate,
			},
			{
				Name:  "serve",
				Usage: "serve a generated point set over http",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "points",
						Aliases:   []string{"p"},
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:      "config",
						Aliases:   []string{"c"},
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "log-file",
						TakesFile: true,
					},
				},
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx *cli.Context) error {
	closeLog, err := logging.Setup(slog.LevelInfo, ctx.String("log-file"))
	if err != nil {
		return err
	}
	defer closeLog()
	log := slog.Default()

	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}

	if pprofListen := ctx.String("pprof.listen"); pprofListen != "" {
		go func() {
			log.Info("Starting pprof server")
			err := http.ListenAndServe(pprofListen, nil)
			if err != nil {
				log.Error("Error starting pprof server", "error", err)
			}
		}()
	}

	if ctx.Bool("pprof.profile") {
		f, err := os.OpenFile("profile.cpu.pprof", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("error creating pprof file: %w", err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("error starting pprof: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	saveFile := ctx.String("points")
	if !strings.HasSuffix(saveFile, ".csv") && !strings.HasSuffix(saveFile, ".csv.zst") {
		saveFile = saveFile + ".csv"
	}

	var collector *runstats.Collector
	if ctx.Bool("stats") {
		collector, err = runstats.NewCollector(time.Second)
		if err != nil {
			return fmt.Errorf("error creating stats collector: %w", err)
		}
		collector.Start()
	}

	seed := ctx.Int64("seed")
	if !ctx.IsSet("seed") {
		seed = time.Now().UnixNano()
	}

	mode := ctx.Int("mode")
	value := ctx.Float64("value")
	width := ctx.Float64("width")
	height := ctx.Float64("height")
	log.Info("Generating points",
		"mode", mode, "value", value,
		"width", width, "height", height,
		"seed", seed)

	points, err := buildPoints(cfg, mode, value, width, height, seed)
	if err != nil {
		return err
	}
	log.Info("Generation complete", "points", humanize.Comma(int64(len(points))))

	if ctx.Bool("pprof.heap") {
		err := writeHeapProfile("profile")
		if err != nil {
			return fmt.Errorf("error writing heap profile: %s", err.Error())
		}
	}

	meta := pointset.NewMeta(mode, value, width, height, seed)
	meta.Count = len(points)
	if mode == 3 {
		meta.Attempts = cfg.Sampler.Attempts
	}

	p := pool.New().WithErrors()
	p.Go(func() error {
		if err := pointset.WriteFile(saveFile, points); err != nil {
			return fmt.Errorf("failed to save points: %w", err)
		}
		if stat, err := os.Stat(saveFile); err == nil {
			log.Info("Saved points", "file", saveFile, "size", humanize.Bytes(uint64(stat.Size())))
		}
		return nil
	})
	p.Go(func() error {
		return meta.WriteFile(pointset.MetaPath(saveFile))
	})
	if previewFile := ctx.String("preview"); previewFile != "" {
		p.Go(func() error {
			return writePreview(previewFile, points, width, height, cfg)
		})
	}
	if voronoiFile := ctx.String("voronoi"); voronoiFile != "" {
		p.Go(func() error {
			return writeVoronoi(voronoiFile, points, width, height, cfg)
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	if collector != nil {
		report := collector.Stop()
		statsFile := saveFile + ".stats.txt"
		if err := report.WriteFile(statsFile); err != nil {
			return err
		}
		log.Info("Wrote stats report", "file", statsFile)
	}

	return nil
}

func writeHeapProfile(name string) error {
	f, err := os.Create(name + ".heap.prof")
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func serve(ctx *cli.Context) error {
	closeLog, err := logging.Setup(slog.LevelInfo, ctx.String("log-file"))
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}

	pointsFile := ctx.String("points")
	points, err := pointset.ReadFile(pointsFile)
	if err != nil {
		return err
	}

	width, height := fieldExtent(pointsFile, points)

	return server.Run(ctx.Context, ctx.String("listen"), points, server.Options{
		Width:  width,
		Height: height,
		Preview: preview.Options{
			Title:      pointsFile,
			CanvasPx:   cfg.Preview.CanvasPx,
			SymbolSize: cfg.Preview.SymbolSize,
			Theme:      cfg.Preview.Theme,
		},
		VoronoiResolution: cfg.Voronoi.Resolution,
	})
}

func writePreview(name string, points []orb.Point, width, height float64, cfg *config.Config) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating preview file: %w", err)
	}
	defer f.Close()

	return preview.Render(f, points, preview.Options{
		Width:      width,
		Height:     height,
		CanvasPx:   cfg.Preview.CanvasPx,
		SymbolSize: cfg.Preview.SymbolSize,
		Theme:      cfg.Preview.Theme,
	})
}

func writeVoronoi(name string, points []orb.Point, width, height float64, cfg *config.Config) error {
	field, err := jfa.Rasterize(points, width, height, cfg.Voronoi.Resolution)
	if err != nil {
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating voronoi file: %w", err)
	}
	defer f.Close()

	return field.RenderPNG(f)
}
