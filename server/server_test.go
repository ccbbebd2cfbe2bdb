package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/valyala/fasthttp"

	"github.com/royalcat/pointfield/preview"
)

func newTestServer(points []orb.Point) *server {
	return &server{
		points: points,
		opts: Options{
			Width:             100,
			Height:            100,
			Preview:           preview.Options{Title: "test"},
			VoronoiResolution: 32,
		},
	}
}

func TestPointsHandler(t *testing.T) {
	points := []orb.Point{{1, 2}, {3, 4}}
	s := newTestServer(points)

	ctx := &fasthttp.RequestCtx{}
	s.PointsHandler(ctx)

	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	var got []orb.Point
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != len(points) {
		t.Fatalf("got %d points, want %d", len(got), len(points))
	}
	for i := range got {
		if got[i] != points[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], points[i])
		}
	}
}

func TestPointsCSVHandler(t *testing.T) {
	s := newTestServer([]orb.Point{{1, 2}})

	ctx := &fasthttp.RequestCtx{}
	s.PointsCSVHandler(ctx)

	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	body := string(ctx.Response.Body())
	if !strings.HasPrefix(body, "x,y") {
		t.Fatalf("csv body missing header: %q", body)
	}
}

func TestPreviewHandler(t *testing.T) {
	s := newTestServer([]orb.Point{{10, 10}, {50, 50}})

	ctx := &fasthttp.RequestCtx{}
	s.PreviewHandler(ctx)

	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if ct := string(ctx.Response.Header.ContentType()); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q, want text/html", ct)
	}
}

func TestVoronoiHandlerCaches(t *testing.T) {
	s := newTestServer([]orb.Point{{10, 10}, {90, 90}})

	ctx := &fasthttp.RequestCtx{}
	s.VoronoiHandler(ctx)
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	first := append([]byte(nil), ctx.Response.Body()...)

	ctx = &fasthttp.RequestCtx{}
	s.VoronoiHandler(ctx)
	if string(first) != string(ctx.Response.Body()) {
		t.Fatalf("cached voronoi render differs between requests")
	}
}

func BenchmarkPointsHandler(b *testing.B) {
	points := make([]orb.Point, 10_000)
	for i := range points {
		points[i] = orb.Point{float64(i % 100), float64(i / 100)}
	}
	s := newTestServer(points)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx := &fasthttp.RequestCtx{}
		s.PointsHandler(ctx)
	}
}
