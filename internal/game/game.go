// Package game hosts the confetti engine in an ebiten window: it owns the
// frame loop, the offscreen confetti canvas, the page backdrop and input.
package game

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/iburimskiy/confetti-burst/internal/backdrop"
	"github.com/iburimskiy/confetti-burst/internal/config"
	"github.com/iburimskiy/confetti-burst/internal/confetti"
	"github.com/iburimskiy/confetti-burst/internal/frame"
)

var (
	pageTop    = colorful.Color{R: 0xfd / 255.0, G: 0xf8 / 255.0, B: 0xec / 255.0}
	pageBottom = colorful.Color{R: 0xf3 / 255.0, G: 0xe1 / 255.0, B: 0xd0 / 255.0}
)

// Game implements ebiten.Game.
type Game struct {
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time

	loop   *frame.Loop
	engine *confetti.Engine
	canvas *canvas
	field  *backdrop.Field
	sound  *cheer

	start time.Time
	// deadlines of the engine's pending stop timers, oldest first
	stops []time.Time

	width, height   int
	layoutW         int
	layoutH         int
	background      *ebiten.Image
	backgroundDirty bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	lastErr error
}

// New builds the window state. A sound that fails to load is reported in the
// status line rather than aborting start-up.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
		canvas:          newCanvas(cfg.Width, cfg.Height),
		field:           backdrop.NewField(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), config.BackdropCount),
		sound:           newCheer(logger),
		width:           cfg.Width,
		height:          cfg.Height,
		layoutW:         cfg.Width,
		layoutH:         cfg.Height,
		backgroundDirty: true,
		prevKey:         map[ebiten.Key]bool{},
	}
	g.start = g.now()
	g.loop = frame.NewLoop(g.now)

	engine, err := confetti.New(g.canvas, g.loop, cfg.Width, cfg.Height,
		confetti.WithLogger(logger.Named("confetti")))
	if err != nil {
		return nil, fmt.Errorf("create confetti engine: %w", err)
	}
	g.engine = engine

	if cfg.SoundPath != "" {
		if err := g.sound.Load(cfg.SoundPath); err != nil {
			logger.Warn("celebration sound unavailable", zap.String("path", cfg.SoundPath), zap.Error(err))
			g.lastErr = err
		}
	}
	return g, nil
}

// Launch fires a confetti burst and the celebration sound.
func (g *Game) Launch() {
	d := g.cfg.Duration
	if d <= 0 {
		d = confetti.DefaultDuration
	}
	g.stops = append(g.stops, g.now().Add(d))
	g.engine.Launch(d)
	g.sound.Play()
	g.logger.Info("confetti launched", zap.Int("live", g.engine.Len()))
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if g.layoutW != g.width || g.layoutH != g.height {
		g.resize(g.layoutW, g.layoutH)
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.Launch()
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeySpace) || justPressed(ebiten.KeyEnter) {
		g.Launch()
	}
	if justPressed(ebiten.KeyS) {
		g.chooseSound()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.loop.Tick(g.now())
	return nil
}

func (g *Game) chooseSound() {
	path, err := pickSound()
	if err != nil {
		g.lastErr = err
		return
	}
	if path == "" {
		return
	}
	if err := g.sound.Load(path); err != nil {
		g.logger.Warn("celebration sound unavailable", zap.String("path", path), zap.Error(err))
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	g.engine.Resize(w, h)
	g.backgroundDirty = true
	g.logger.Debug("viewport resized", zap.Int("width", w), zap.Int("height", h))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawDots(screen)
	screen.DrawImage(g.canvas.img, nil)
	g.drawButton(screen)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// nextStop drops elapsed stop deadlines and returns the earliest one left.
// That timer ends every burst in flight.
func (g *Game) nextStop() (time.Time, bool) {
	now := g.now()
	for len(g.stops) > 0 && !now.Before(g.stops[0]) {
		g.stops = g.stops[1:]
	}
	if len(g.stops) == 0 {
		return time.Time{}, false
	}
	return g.stops[0], true
}

func (g *Game) status() string {
	status := "Click Launch or press Space for confetti, S: sound, Esc/Q: quit"
	if g.engine.Running() {
		status = fmt.Sprintf("Confetti: %d flakes", g.engine.Len())
		if stop, ok := g.nextStop(); ok {
			status += ", stops in " + formatDuration(stop.Sub(g.now()))
		}
	}
	if name := g.sound.Name(); name != "" {
		status += " | Sound: " + name
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	if g.backgroundDirty || g.background == nil {
		if g.background != nil {
			g.background.Deallocate()
		}
		g.background = ebiten.NewImage(max(g.width, 1), max(g.height, 1))
		for y := 0; y < g.height; y++ {
			ratio := float64(y) / float64(g.height)
			vector.StrokeLine(g.background, 0, float32(y)+0.5, float32(g.width), float32(y)+0.5, 1, gradientColor(pageTop, pageBottom, ratio), false)
		}
		g.backgroundDirty = false
	}
	screen.DrawImage(g.background, nil)
}

func (g *Game) drawDots(screen *ebiten.Image) {
	elapsed := g.now().Sub(g.start)
	for _, p := range g.field.Positions(elapsed, g.width, g.height) {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Dot.Size/2), p.Dot.Color(), true)
	}
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 0x9e, G: 0x3f, B: 0x3b, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 0xb3, G: 0x4d, B: 0x49, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 0xc7, G: 0x5b, B: 0x57, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 0xb5, G: 0x9d, B: 0x14, A: 255}, false)

	text := "Launch"
	textWidth := len(text) * 6 // debug font glyph width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

// Layout keeps the logical screen equal to the window, so the confetti
// surface always matches the viewport. The resize is applied on the next
// Update, which is where the engine runs.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layoutW, g.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops any burst in flight.
func (g *Game) Close() {
	g.engine.Stop()
}
