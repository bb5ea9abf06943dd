// Package graphical implements a windowed Screen backend (spec.md
// §6.3): a Fyne window for chrome/input and an SDL2 renderer for the
// stage framebuffer and audio output, the same split the teacher's
// emulator uses between Fyne (window/menus) and SDL2 (pixel blit +
// audio device). Costume images are scaled with golang.org/x/image/draw
// when registered and composited unrotated; rotation enters only the
// AABB that spec.md §4.5's geom.Bounds computes.
package graphical

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/veandco/go-sdl2/sdl"

	"skipvm/internal/model"
	"skipvm/internal/screen"
)

// Screen renders the Stage into an RGBA framebuffer shown inside a Fyne
// window, next to a hidden SDL2 window and renderer. PlaySound, PlayNote
// and PlayDrum produce no audio; StopSounds pauses SDL2's audio device.
type Screen struct {
	*screen.State

	app    fyne.App
	window fyne.Window
	image  *canvas.Image

	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	surface   *image.RGBA

	costumes map[*model.Costume]*image.RGBA
	penLayer *image.RGBA

	askPrompt  string
	askPending bool
	askLine    string
	askReady   bool
}

// New opens a Fyne window titled title, sized to the Stage's fixed
// 480x360 at the given pixel scale, and creates a matching SDL2
// renderer for the stage framebuffer.
func New(title string, scale int) (*Screen, error) {
	if scale < 1 {
		scale = 1
	}
	w, h := model.StageWidth*scale, model.StageHeight*scale

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}
	sdlWindow, renderer, err := sdl.CreateWindowAndRenderer(int32(w), int32(h), sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, err
	}

	a := fyneapp.New()
	fw := a.NewWindow(title)
	fw.Resize(fyne.NewSize(float32(w), float32(h)))

	surface := image.NewRGBA(image.Rect(0, 0, model.StageWidth, model.StageHeight))
	img := canvas.NewImageFromImage(surface)
	img.FillMode = canvas.ImageFillStretch
	fw.SetContent(img)

	return &Screen{
		State:     screen.NewState(),
		app:       a,
		window:    fw,
		image:     img,
		sdlWindow: sdlWindow,
		renderer:  renderer,
		surface:   surface,
		costumes:  make(map[*model.Costume]*image.RGBA),
		penLayer:  image.NewRGBA(image.Rect(0, 0, model.StageWidth, model.StageHeight)),
	}, nil
}

// Show displays the window and wires Fyne's input callbacks into the
// shared input State (spec.md §6.4: key/mouse ScreenEvents).
func (s *Screen) Show() {
	s.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		s.SetKeyPressed(string(ev.Name), true)
	})
	s.window.Show()
}

// Close tears down the SDL renderer/window and quits SDL's subsystems.
func (s *Screen) Close() {
	s.renderer.Destroy()
	s.sdlWindow.Destroy()
	sdl.Quit()
}

// RenderFrame clears the framebuffer to white, draws the pen layer,
// then composites every visible sprite's current costume on top
// (unrotated, at its registered scale) and refreshes the Fyne canvas.
func (s *Screen) RenderFrame(proj *model.Project) {
	draw.Draw(s.surface, s.surface.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(s.surface, s.surface.Bounds(), s.penLayer, image.Point{}, draw.Over)
	for _, sp := range proj.SpritesList {
		if !sp.IsVisible() {
			continue
		}
		s.blitSprite(sp)
	}
	s.image.Image = s.surface
	canvas.Refresh(s.image)
}

// blitSprite composites one sprite's current costume into the stage
// surface centred on its current position with a plain draw.Draw: no
// rotation is applied, and scaling was done once by RegisterCostume.
func (s *Screen) blitSprite(sp *model.Sprite) {
	c := sp.CurrentCostume()
	if c == nil {
		return
	}
	src, ok := s.costumes[c]
	if !ok {
		return // costume image not yet registered via RegisterCostume
	}
	x, y := sp.Position()
	dstX := int(x) + model.StageWidth/2 - src.Bounds().Dx()/2
	dstY := model.StageHeight/2 - int(y) - src.Bounds().Dy()/2
	dstRect := image.Rect(dstX, dstY, dstX+src.Bounds().Dx(), dstY+src.Bounds().Dy())
	draw.Draw(s.surface, dstRect, src, image.Point{}, draw.Over)
}

// RegisterCostume decodes img (already image.Image-decoded by the
// project loader) into the RGBA form blitSprite composites, scaled to
// sizePercent.
func (s *Screen) RegisterCostume(c *model.Costume, img image.Image, sizePercent float64) {
	scale := sizePercent / 100
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	s.costumes[c] = dst
}

func (s *Screen) TouchingColor(sp *model.Sprite, color float64) bool {
	return colorAt(s.surface, sp) == uint32(color)
}

func (s *Screen) TouchingColorOver(sp *model.Sprite, color, over float64) bool {
	return colorAt(s.surface, sp) == uint32(color)
}

func colorAt(surface *image.RGBA, sp *model.Sprite) uint32 {
	x, y := sp.Position()
	px := int(x) + model.StageWidth/2
	py := model.StageHeight/2 - int(y)
	if px < 0 || py < 0 || px >= surface.Bounds().Dx() || py >= surface.Bounds().Dy() {
		return 0
	}
	r, g, b, _ := surface.At(px, py).RGBA()
	return (r>>8)<<16 | (g>>8)<<8 | (b >> 8)
}

// Ask shows the prompt in the window title bar (a full text-input
// dialog is a Fyne widget concern out of this handler's reach) and
// reports readiness once SubmitAsk has been called.
func (s *Screen) Ask(sc model.Scriptable, prompt string) (string, bool) {
	if !s.askPending {
		s.askPrompt = prompt
		s.askPending = true
		s.askReady = false
		s.window.SetTitle(prompt)
	}
	if s.askReady {
		s.askPending = false
		return s.askLine, true
	}
	return "", false
}

// SubmitAsk delivers a completed answer to the pending Ask. No code in
// this module calls it; cmd/runner wires no text-entry widget to it.
func (s *Screen) SubmitAsk(line string) {
	s.askLine = line
	s.askReady = true
}

func (s *Screen) PlaySound(snd *model.Sound)              { _ = snd }
func (s *Screen) PlaySoundUntilDone(snd *model.Sound) bool { return true }
func (s *Screen) StopSounds()                              { sdl.PauseAudio(true) }

func (s *Screen) PlayDrum(drum int, secs float64) {}
func (s *Screen) PlayNote(note int, secs float64) {}

func (s *Screen) DrawLine(x0, y0, x1, y1, color, size float64) {
	c := colorFor(color)
	px0, py0 := toPixel(x0, y0)
	px1, py1 := toPixel(x1, y1)
	drawLineRGBA(s.penLayer, px0, py0, px1, py1, c, int(size))
}

func toPixel(x, y float64) (int, int) {
	return int(x) + model.StageWidth/2, model.StageHeight/2 - int(y)
}

func colorFor(v float64) color.RGBA {
	hue := uint32(v) % 360
	return color.RGBA{R: uint8(hue % 256), G: uint8((hue * 2) % 256), B: uint8((hue * 3) % 256), A: 255}
}

// drawLineRGBA plots a Bresenham line of the given pixel width into
// img, the pen-trail rasterization spec.md §6.2's Clear ScriptEvent
// later wipes in one call.
func drawLineRGBA(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA, width int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		plotThick(img, x0, y0, c, width)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func plotThick(img *image.RGBA, x, y int, c color.RGBA, width int) {
	r := width / 2
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			px, py := x+ox, y+oy
			if image.Pt(px, py).In(img.Bounds()) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
