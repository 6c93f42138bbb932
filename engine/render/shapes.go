package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whiteImg = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// fillPath fills a closed path with a flat colour
func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteImg, op)
}

// polygon builds a regular polygon of n points around (cx, cy). When inner
// is positive every other point sits at that radius instead (a star).
func polygon(cx, cy, r, inner float64, n int, rot float64) *vector.Path {
	var path vector.Path
	for i := 0; i < n; i++ {
		a := float64(i)/float64(n)*2*math.Pi + rot
		rr := r
		if inner > 0 && i%2 == 1 {
			rr = inner
		}
		x := float32(cx + math.Cos(a)*rr)
		y := float32(cy + math.Sin(a)*rr)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	return &path
}

// withAlpha scales the colour's alpha by a in [0,1]
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
