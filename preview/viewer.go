// Package preview shows built brush surfaces in an ebiten window with an
// orbit camera.
package preview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/gobrush"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	dragSpeed    = 1.0 / 200
	zoomStep     = 0.9
)

var outlineColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}

// Viewer is an ebiten.Game drawing a Scene.
type Viewer struct {
	scene  *Scene
	camera *Camera

	lastX, lastY int
	dragging     bool
	outlines     bool
	linesOnly    bool
}

// NewViewer frames the whole scene.
func NewViewer(sc *Scene) *Viewer {
	center, radius := sc.Bounds()
	return &Viewer{
		scene:    sc,
		camera:   NewCamera(center, radius),
		outlines: true,
	}
}

func (v *Viewer) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.dragging = true
		v.lastX, v.lastY = ebiten.CursorPosition()
	}
	if v.dragging {
		x, y := ebiten.CursorPosition()
		v.camera.AddAngle(-float64(x-v.lastX)*dragSpeed, float64(y-v.lastY)*dragSpeed)
		v.lastX, v.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.dragging = false
	}

	if _, dy := ebiten.Wheel(); dy > 0 {
		v.camera.Zoom(zoomStep)
	} else if dy < 0 {
		v.camera.Zoom(1 / zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.outlines = !v.outlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.linesOnly = !v.linesOnly
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	eye := v.camera.Eye()
	m := v.camera.Matrix(w, h)
	v.scene.sortByDistance(eye)

	var xp, yp []float32
	drawn := 0
	for _, i := range v.scene.order {
		t := &v.scene.tris[i]
		if !t.facing(eye) {
			continue
		}
		loop := v.camera.clip(t.corners[:])
		if len(loop) < 3 {
			continue
		}

		xp, yp = xp[:0], yp[:0]
		for _, c := range loop {
			x, y, _ := project(m, c, w, h)
			xp = append(xp, x)
			yp = append(yp, y)
		}

		col := shade(t.col, t.normal, eye.Sub(t.mid))
		if v.linesOnly {
			drawPolygonOutline(screen, xp, yp, 1, col)
		} else {
			fillConvexPolygon(screen, xp, yp, col)
			if v.outlines {
				drawPolygonOutline(screen, xp, yp, 1, outlineColor)
			}
		}
		drawn++
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  triangles: %d/%d  [O]utlines [L]ines",
		ebiten.ActualFPS(), drawn, v.scene.Len()))
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Run opens a window showing surfaces and blocks until it is closed.
func Run(title string, surfaces []*gobrush.Surface) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(NewViewer(NewScene(surfaces))); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
