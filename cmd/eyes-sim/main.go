// Roboeyes simulator - runs the face in a desktop window.
// Digits 0-9 send the matching expression codes; f, z, a and w send
// scared, sleepy, asleep and wakeup. q or escape quits.
package main

import (
	"flag"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/teslashibe/go-roboeyes/internal/config"
	"github.com/teslashibe/go-roboeyes/internal/log"
	"github.com/teslashibe/go-roboeyes/pkg/command"
	"github.com/teslashibe/go-roboeyes/pkg/display"
	"github.com/teslashibe/go-roboeyes/pkg/eyes"
	"github.com/teslashibe/go-roboeyes/pkg/face"
)

var hotkeys = map[ebiten.Key]eyes.Expression{
	ebiten.KeyF: eyes.Scared,
	ebiten.KeyZ: eyes.Sleepy,
	ebiten.KeyA: eyes.Asleep,
	ebiten.KeyW: eyes.Wakeup,
}

type game struct {
	ctrl  *face.Controller
	fb    *display.Framebuffer
	queue *command.Queue

	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for i := 0; i <= 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit0 + ebiten.Key(i)) {
			g.queue.Send(i)
		}
	}
	for key, id := range hotkeys {
		if inpututil.IsKeyJustPressed(key) {
			g.queue.Send(int(id))
		}
	}

	// One face tick per game tick; ebiten's TPS is the control rate.
	g.ctrl.Step(time.Now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.fb.Size()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.fbImg = ebiten.NewImage(w, h)
	}

	dst := g.img.Pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v byte
			if g.fb.At(x, y) == display.On {
				v = 0xFF
			}
			j := (y*w + x) * 4
			dst[j+0] = v
			dst[j+1] = v
			dst[j+2] = v
			dst[j+3] = 0xFF
		}
	}

	g.fbImg.WritePixels(dst)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Size()
}

func main() {
	cfg := config.Default()
	cfg.LoadEnv()

	scale := flag.Int("scale", 4, "Window pixels per panel pixel")
	blink := flag.Bool("blink", cfg.AutoBlink, "Enable autonomous blinking")
	demo := flag.Bool("demo", cfg.DemoMode, "Cycle expressions until the first key")
	transition := flag.Duration("transition", cfg.Transition, "Duration for commanded transitions")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()
	cfg.AutoBlink, cfg.DemoMode, cfg.Transition, cfg.LogLevel = *blink, *demo, *transition, *logLevel

	log.Init(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	zoom := max(*scale, 1)

	catalog := eyes.NewCatalog(eyes.Geometry{
		DisplayWidth:  cfg.DisplayWidth,
		DisplayHeight: cfg.DisplayHeight,
		EyeWidth:      cfg.EyeWidth,
		EyeHeight:     cfg.EyeHeight,
		EyeSpacing:    cfg.EyeSpacing,
	})
	engine := eyes.NewEngine(catalog)
	sched := eyes.NewScheduler(engine, eyes.SchedulerOptions{
		AutoBlink: cfg.AutoBlink,
		Demo:      cfg.DemoMode,
	})
	fb := display.NewFramebuffer(cfg.DisplayWidth, cfg.DisplayHeight)
	queue := command.NewQueue(16)

	g := &game{
		fb:    fb,
		queue: queue,
		ctrl: face.New(face.Options{
			Engine:     engine,
			Scheduler:  sched,
			Dispatcher: eyes.NewDispatcher(engine, sched, cfg.Transition),
			Renderer:   eyes.NewRenderer(),
			Surface:    fb,
			Source:     queue,
			Rate:       cfg.TickRate,
		}),
	}

	engine.Request(time.Now(), eyes.Wakeup, 0)

	ebiten.SetWindowTitle("Roboeyes")
	ebiten.SetWindowSize(cfg.DisplayWidth*zoom, cfg.DisplayHeight*zoom)
	ebiten.SetTPS(int(time.Second / cfg.TickRate))
	if err := ebiten.RunGame(g); err != nil {
		log.Error("simulator exited", "error", err)
		os.Exit(1)
	}
}
