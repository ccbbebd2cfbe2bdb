// Package server exposes a loaded point set over HTTP: raw points as JSON or
// CSV, the HTML scatter preview, the Voronoi ownership raster, and prometheus
// metrics.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	stdlog "log"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/royalcat/pointfield/jfa"
	"github.com/royalcat/pointfield/pointset"
	"github.com/royalcat/pointfield/preview"
)

// Options configures the served artifacts.
type Options struct {
	// Width and Height are the sampling rectangle the points were generated
	// in; they fix the preview axes and the Voronoi mapping.
	Width  float64
	Height float64

	Preview           preview.Options
	VoronoiResolution int
}

// Run serves points on address until ctx is canceled.
func Run(ctx context.Context, address string, points []orb.Point, o Options) error {
	log := slog.Default()

	s := &server{points: points, opts: o}

	r := router.New()
	r.GET("/points", s.PointsHandler)
	r.GET("/points.csv", s.PointsCSVHandler)
	r.GET("/preview", s.PreviewHandler)
	r.GET("/voronoi.png", s.VoronoiHandler)
	r.Handle(http.MethodGet, "/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))

	server := &fasthttp.Server{
		ReadTimeout: time.Second,
		Handler:     r.Handler,
	}

	go func() {
		log.Info("Server listening", "address", address, "points", len(points))
		if err := server.ListenAndServe(address); err != nil {
			stdlog.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

type server struct {
	points []orb.Point
	opts   Options

	voronoiOnce sync.Once
	voronoiPNG  []byte
	voronoiErr  error
}

func (s *server) PointsHandler(ctx *fasthttp.RequestCtx) {
	metricPointsCallCount.Inc()

	body, err := json.Marshal(s.points)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.BodyWriter().Write(body)
}

func (s *server) PointsCSVHandler(ctx *fasthttp.RequestCtx) {
	metricPointsCallCount.Inc()

	var buf bytes.Buffer
	if err := pointset.Write(&buf, s.points); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.Response.Header.SetContentType("text/csv; charset=utf-8")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.BodyWriter().Write(buf.Bytes())
}

func (s *server) PreviewHandler(ctx *fasthttp.RequestCtx) {
	metricPreviewCallCount.Inc()

	o := s.opts.Preview
	o.Width = s.opts.Width
	o.Height = s.opts.Height

	var buf bytes.Buffer
	if err := preview.Render(&buf, s.points, o); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.BodyWriter().Write(buf.Bytes())
}

func (s *server) VoronoiHandler(ctx *fasthttp.RequestCtx) {
	metricPreviewCallCount.Inc()

	s.voronoiOnce.Do(func() {
		field, err := jfa.Rasterize(s.points, s.opts.Width, s.opts.Height, s.opts.VoronoiResolution)
		if err != nil {
			s.voronoiErr = err
			return
		}
		var buf bytes.Buffer
		if err := field.RenderPNG(&buf); err != nil {
			s.voronoiErr = err
			return
		}
		s.voronoiPNG = buf.Bytes()
	})

	if s.voronoiErr != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.Response.Header.SetContentType("image/png")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.BodyWriter().Write(s.voronoiPNG)
}

var (
	metricPointsCallCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pointfield",
			Subsystem: "http_points",
			Name:      "call_count",
			Help:      "count of point list requests",
		},
	)
	metricPreviewCallCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pointfield",
			Subsystem: "http_preview",
			Name:      "call_count",
			Help:      "count of preview and voronoi requests",
		},
	)
)
