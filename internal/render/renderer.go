package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kapu/chess-arena/internal/core"
)

// Options selects extra decoration for a rendered board.
type Options struct {
	// Highlight marks the origin and destination of the last move.
	Highlight *core.Move
	// Flipped renders from Black's point of view.
	Flipped bool
}

// BoardRenderer renders a position to a PNG image.
type BoardRenderer interface {
	RenderPNG(ctx context.Context, board *core.Board, opts Options) ([]byte, error)
}

type svgBoardRenderer struct{}

// NewBoardRenderer returns the SVG-glyph PNG renderer.
func NewBoardRenderer() BoardRenderer {
	return &svgBoardRenderer{}
}

var (
	lightSquare    = color.RGBA{233, 207, 163, 255}
	darkSquare     = color.RGBA{187, 136, 96, 255}
	highlightColor = color.NRGBA{R: 246, G: 234, B: 113, A: 140}
	labelColor     = color.RGBA{60, 42, 30, 255}
)

func (r *svgBoardRenderer) RenderPNG(ctx context.Context, board *core.Board, opts Options) ([]byte, error) {
	if board == nil {
		return nil, fmt.Errorf("board is nil")
	}

	const (
		squareSize = 72
		margin     = 24
		boardSize  = squareSize * 8
	)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	total := boardSize + margin*2
	img := image.NewRGBA(image.Rect(0, 0, total, total))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{46, 34, 27, 255}), image.Point{}, imagedraw.Src)
	origin := image.Point{X: margin, Y: margin}

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := core.Sq(file, rank)
			rect := squareRect(sq, squareSize, origin, opts.Flipped)
			fill := lightSquare
			if (file+rank)%2 == 0 {
				fill = darkSquare
			}
			imagedraw.Draw(img, rect, image.NewUniform(fill), image.Point{}, imagedraw.Src)
		}
	}

	if opts.Highlight != nil {
		for _, sq := range []core.Square{opts.Highlight.From, opts.Highlight.To} {
			rect := squareRect(sq, squareSize, origin, opts.Flipped)
			imagedraw.Draw(img, rect, image.NewUniform(highlightColor), image.Point{}, imagedraw.Over)
		}
	}

	var err error
	board.Each(func(sq core.Square, p core.Piece) bool {
		glyph, gerr := pieceImage(p, squareSize)
		if gerr != nil {
			err = gerr
			return false
		}
		rect := squareRect(sq, squareSize, origin, opts.Flipped)
		imagedraw.Draw(img, rect, glyph, image.Point{}, imagedraw.Over)
		return true
	})
	if err != nil {
		return nil, err
	}

	drawCoordinates(img, squareSize, origin, margin, opts.Flipped)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// squareRect maps a board square to pixel space; rank 8 is at the top
// unless the board is flipped.
func squareRect(sq core.Square, squareSize int, origin image.Point, flipped bool) image.Rectangle {
	file, rank := sq.File, sq.Rank
	if flipped {
		file, rank = 7-file, 7-rank
	}
	x := origin.X + file*squareSize
	y := origin.Y + (7-rank)*squareSize
	return image.Rect(x, y, x+squareSize, y+squareSize)
}

func drawCoordinates(img *image.RGBA, squareSize int, origin image.Point, margin int, flipped bool) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
	}
	for i := 0; i < 8; i++ {
		fileChar := byte('a' + i)
		rankChar := byte('1' + i)
		if flipped {
			fileChar = byte('a' + 7 - i)
			rankChar = byte('8' - i)
		}
		// File letters under the board.
		x := origin.X + i*squareSize + squareSize/2 - 3
		y := origin.Y + squareSize*8 + margin/2 + 4
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(string(fileChar))
		// Rank digits along the left edge, rank 8 at the top by default.
		x = origin.X - margin/2 - 3
		y = origin.Y + (7-i)*squareSize + squareSize/2 + 4
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(string(rankChar))
	}
}
