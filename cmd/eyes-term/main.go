// Roboeyes terminal preview - renders the face in the terminal using
// half-block cells, two panel rows per line. Digits 0-9 send the
// matching expression codes; f, z, a and w send scared, sleepy, asleep
// and wakeup. q or escape quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/teslashibe/go-roboeyes/internal/config"
	"github.com/teslashibe/go-roboeyes/internal/log"
	"github.com/teslashibe/go-roboeyes/pkg/command"
	"github.com/teslashibe/go-roboeyes/pkg/display"
	"github.com/teslashibe/go-roboeyes/pkg/eyes"
	"github.com/teslashibe/go-roboeyes/pkg/face"
)

type app struct {
	screen tcell.Screen
	ctrl   *face.Controller
	fb     *display.Framebuffer
	queue  *command.Queue
	rate   time.Duration
}

func newApp(cfg config.Config) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

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

	a := &app{
		screen: screen,
		fb:     fb,
		queue:  queue,
		rate:   cfg.TickRate,
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
	return a, nil
}

func (a *app) run() {
	ticker := time.NewTicker(a.rate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case <-ticker.C:
			a.ctrl.Step(time.Now())
			a.draw()
		}
	}
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch r := ev.Rune(); {
			case r == 'q':
				return false
			case r >= '0' && r <= '9':
				a.queue.Send(int(r - '0'))
			case r == 'f':
				a.queue.Send(int(eyes.Scared))
			case r == 'z':
				a.queue.Send(int(eyes.Sleepy))
			case r == 'a':
				a.queue.Send(int(eyes.Asleep))
			case r == 'w':
				a.queue.Send(int(eyes.Wakeup))
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}

	return true
}

func (a *app) draw() {
	a.screen.Clear()

	// '▀' carries the upper pixel in the foreground and the lower pixel
	// in the background, so each cell shows two panel rows.
	w, h := a.fb.Size()
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(a.fb.At(x, y))).
				Background(cellColor(a.fb.At(x, y+1)))
			a.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	st := a.ctrl.Status()
	line := fmt.Sprintf(" %s (%d)  keys: 0-9 f z a w  quit: q", st.Expression, st.Code)
	col := 0
	for _, r := range line {
		a.screen.SetContent(col, (h+1)/2, r, nil, tcell.StyleDefault)
		col++
	}

	a.screen.Show()
}

func cellColor(c display.Color) tcell.Color {
	if c == display.On {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}

func (a *app) cleanup() {
	a.screen.Fini()
}

func main() {
	cfg := config.Default()
	cfg.LoadEnv()

	blink := flag.Bool("blink", cfg.AutoBlink, "Enable autonomous blinking")
	demo := flag.Bool("demo", cfg.DemoMode, "Cycle expressions until the first key")
	transition := flag.Duration("transition", cfg.Transition, "Duration for commanded transitions")
	flag.Parse()
	cfg.AutoBlink, cfg.DemoMode, cfg.Transition = *blink, *demo, *transition

	// tcell owns the terminal while the preview runs, so anything the
	// logger writes would garble the screen; only errors get through.
	log.Init("error")

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer a.cleanup()

	a.run()
}
