package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/kapu/chess-arena/internal/core"
)

func TestRenderPNG(t *testing.T) {
	r := NewBoardRenderer()
	data, err := r.RenderPNG(context.Background(), core.StandardSetup(), Options{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 624 || bounds.Dy() != 624 {
		t.Fatalf("image is %dx%d, want 624x624", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPNGHighlightAndFlip(t *testing.T) {
	b := core.StandardSetup()
	var v core.Validator
	m, ok := v.Validate(b, core.Sq(4, 1), core.Sq(4, 3), core.White)
	if !ok {
		t.Fatal("e2e4 rejected")
	}
	core.Apply(b, m)

	r := NewBoardRenderer()
	plain, err := r.RenderPNG(context.Background(), b, Options{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	decorated, err := r.RenderPNG(context.Background(), b, Options{Highlight: &m, Flipped: true})
	if err != nil {
		t.Fatalf("RenderPNG with options: %v", err)
	}
	if bytes.Equal(plain, decorated) {
		t.Fatal("highlight and flip changed nothing")
	}
}

func TestRenderPNGNilBoard(t *testing.T) {
	if _, err := NewBoardRenderer().RenderPNG(context.Background(), nil, Options{}); err == nil {
		t.Fatal("nil board accepted")
	}
}

func TestRenderPNGCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBoardRenderer().RenderPNG(ctx, core.StandardSetup(), Options{}); err == nil {
		t.Fatal("cancelled context accepted")
	}
}
