// Package gui hosts a live canvas in a resizable raylib window.
package gui

import (
	"fmt"
	"image/color"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/session"
	"github.com/san-kum/voicecanvas/internal/storage"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColRecord  = rl.NewColor(255, 68, 68, 255)
)

const (
	hudHeight     = 28
	telemetrySize = 240
)

type App struct {
	Sess  *session.Session
	Store *storage.Store

	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA
	message    string
}

func NewApp(sess *session.Session, store *storage.Store) *App {
	return &App{Sess: sess, Store: store}
}

// Run opens a window sized to the canvas and blocks until it is closed.
// The session's loop must be running elsewhere.
func (a *App) Run() {
	st := a.Sess.Renderer().Status()
	w, h := st.Width, st.Height
	if w <= 0 || h <= 0 {
		w, h = 960, 540
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h+hudHeight), "voicecanvas")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	a.Sess.Renderer().Resize(w, h)
	defer a.unloadTexture()

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.Sess.StopRecording()
}

// Update forwards window resizes and key presses to the session.
func (a *App) Update() {
	r := a.Sess.Renderer()
	if rl.IsWindowResized() {
		r.Resize(canvasSize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight())))
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		if _, err := a.Sess.ToggleRecording(); err != nil {
			log.Printf("voicecanvas: %v", err)
			a.message = err.Error()
		}
	case rl.IsKeyPressed(rl.KeyS):
		r.SetStyle(nextStyle(r.Status().Style))
	case rl.IsKeyPressed(rl.KeyC):
		r.RequestClear()
	case rl.IsKeyPressed(rl.KeyU):
		r.RequestUndo()
	case rl.IsKeyPressed(rl.KeyW):
		a.save()
	}
	for i, k := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour} {
		if rl.IsKeyPressed(k) {
			r.SetStyle(art.Styles[i])
		}
	}
}

func (a *App) save() {
	if a.Store == nil {
		return
	}
	id, err := a.Sess.Save(a.Store, "gui")
	if err != nil {
		a.message = "save failed: " + err.Error()
		return
	}
	a.message = "saved " + id
}

// canvasSize is the surface area left once the HUD strip is removed.
func canvasSize(screenW, screenH int) (int, int) {
	return max(0, screenW), max(0, screenH-hudHeight)
}

func nextStyle(s art.Style) art.Style {
	for i, st := range art.Styles {
		if st == s {
			return art.Styles[(i+1)%len(art.Styles)]
		}
	}
	return art.DefaultStyle
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawCanvas()
	a.drawHUD()
	a.drawTelemetry()

	rl.EndDrawing()
}

func (a *App) drawCanvas() {
	snap := a.Sess.Renderer().Snapshot()
	if snap == nil {
		return
	}
	b := snap.Bounds()
	if b.Dx() != a.texW || b.Dy() != a.texH {
		a.unloadTexture()
		img := rl.GenImageColor(b.Dx(), b.Dy(), rl.Blank)
		a.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		a.texW, a.texH = b.Dx(), b.Dy()
	}
	a.pixels = straightPixels(a.pixels, snap)
	rl.UpdateTexture(a.tex, a.pixels)
	rl.DrawTexture(a.tex, 0, hudHeight, rl.White)
}

func (a *App) unloadTexture() {
	if a.texW > 0 {
		rl.UnloadTexture(a.tex)
	}
	a.texW, a.texH = 0, 0
}

func (a *App) drawHUD() {
	st := a.Sess.Renderer().Status()
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), hudHeight, ColBg)

	x := int32(10)
	if st.Recording {
		rl.DrawCircle(x+6, hudHeight/2, 6, ColRecord)
	} else {
		rl.DrawCircleLines(x+6, hudHeight/2, 6, ColTextDim)
	}
	x += 24

	text := fmt.Sprintf("%s  vol %.2f  particles %d  undo %d", st.Style, st.Volume, st.Particles, st.History)
	if st.HasAnalysis {
		text += fmt.Sprintf("  %s/%s", st.Analysis.Emotion, st.Analysis.Tempo)
	}
	rl.DrawText(text, x, 7, 14, ColAccent)

	hint := "SPACE rec  S style  C clear  U undo  W save"
	if a.message != "" {
		hint = a.message
	}
	hw := rl.MeasureText(hint, 12)
	rl.DrawText(hint, int32(rl.GetScreenWidth())-hw-10, 8, 12, ColText)
}

// drawTelemetry plots recent volume in the bottom-left corner.
func (a *App) drawTelemetry() {
	vols := a.Sess.Collector().Volumes()
	if len(vols) < 2 {
		return
	}
	if len(vols) > telemetrySize {
		vols = vols[len(vols)-telemetrySize:]
	}
	const h = 40
	base := int32(rl.GetScreenHeight()) - 10
	rl.DrawRectangle(10, base-h, telemetrySize, h, rl.NewColor(0, 0, 0, 120))
	for i := 1; i < len(vols); i++ {
		y0 := base - int32(vols[i-1]*h)
		y1 := base - int32(vols[i]*h)
		rl.DrawLine(int32(10+i-1), y0, int32(10+i), y1, ColAccent)
	}
}
