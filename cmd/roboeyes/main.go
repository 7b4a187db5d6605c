// Roboeyes daemon - animated robot eyes for a small monochrome panel.
// Reads expression commands from stdin, an optional serial link and the
// web dashboard, and renders the face at a fixed tick rate.
package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-roboeyes/internal/config"
	"github.com/teslashibe/go-roboeyes/internal/log"
	"github.com/teslashibe/go-roboeyes/pkg/command"
	"github.com/teslashibe/go-roboeyes/pkg/display"
	"github.com/teslashibe/go-roboeyes/pkg/eyes"
	"github.com/teslashibe/go-roboeyes/pkg/face"
	"github.com/teslashibe/go-roboeyes/pkg/web"
)

func main() {
	cfg := parseFlags()
	log.Init(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
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

	go func() {
		if err := command.ScanInts(os.Stdin, queue.Send); err != nil {
			log.Warn("stdin reader stopped", "error", err)
		}
	}()

	if cfg.SerialPath != "" {
		port, err := os.Open(cfg.SerialPath)
		if err != nil {
			log.Error("cannot open serial device", "path", cfg.SerialPath, "error", err)
			os.Exit(1)
		}
		defer port.Close()
		go func() {
			if err := command.ScanFrames(port, byte(cfg.SerialAddr), queue.Send); err != nil {
				log.Warn("serial reader stopped", "error", err)
			}
		}()
		log.Info("serial reader started", "path", cfg.SerialPath, "addr", cfg.SerialAddr)
	}

	ctrl := face.New(face.Options{
		Engine:     engine,
		Scheduler:  sched,
		Dispatcher: eyes.NewDispatcher(engine, sched, cfg.Transition),
		Renderer:   eyes.NewRenderer(),
		Surface:    fb,
		Source:     queue,
		Rate:       cfg.TickRate,
	})

	if cfg.WebPort != "" {
		srv := web.NewServer(cfg.WebPort)
		srv.Status = ctrl.Status
		srv.Enqueue = queue.Send
		srv.Width = cfg.DisplayWidth
		srv.Height = cfg.DisplayHeight
		srv.StartAsync()
		defer srv.Shutdown()

		// State goes out only on change; frames only while someone is
		// watching. Both run on the control loop goroutine, so last
		// needs no lock.
		var last face.Status
		ctrl.OnFrame = func() {
			st := ctrl.Status()
			if st.Code != last.Code || st.InTransition != last.InTransition ||
				st.DemoActive != last.DemoActive || st.AutoBlink != last.AutoBlink {
				srv.BroadcastState(st)
				last = st
			}
			if srv.PreviewClientCount() > 0 {
				var buf bytes.Buffer
				if err := fb.EncodePNG(&buf); err == nil {
					srv.SendPreviewFrame(buf.Bytes())
				}
			}
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("roboeyes started",
		"width", cfg.DisplayWidth,
		"height", cfg.DisplayHeight,
		"rate", cfg.TickRate,
		"demo", cfg.DemoMode,
		"web", cfg.WebPort)

	engine.Request(time.Now(), eyes.Wakeup, 0)
	ctrl.Run(ctx)

	log.Info("roboeyes stopped")
}

// parseFlags parses command line flags and returns configuration.
// Environment overrides load first, so flags win over ROBOEYES_* vars.
func parseFlags() config.Config {
	cfg := config.Default()
	cfg.LoadEnv()

	width := flag.Int("width", cfg.DisplayWidth, "Display width in pixels")
	height := flag.Int("height", cfg.DisplayHeight, "Display height in pixels")
	eyeWidth := flag.Int("eye-width", cfg.EyeWidth, "Eye width in pixels")
	eyeHeight := flag.Int("eye-height", cfg.EyeHeight, "Eye height in pixels")
	eyeSpacing := flag.Int("eye-spacing", cfg.EyeSpacing, "Gap between the eyes in pixels")
	blink := flag.Bool("blink", cfg.AutoBlink, "Enable autonomous blinking")
	demo := flag.Bool("demo", cfg.DemoMode, "Cycle expressions until the first command")
	transition := flag.Duration("transition", cfg.Transition, "Duration for commanded transitions")
	rate := flag.Duration("rate", cfg.TickRate, "Control loop tick interval")
	port := flag.String("port", cfg.WebPort, "Dashboard listen port, empty to disable")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	serial := flag.String("serial", cfg.SerialPath, "Serial device to read framed commands from")
	serialAddr := flag.Int("serial-addr", cfg.SerialAddr, "Our address on the serial bus")
	flag.Parse()

	cfg.DisplayWidth, cfg.DisplayHeight = *width, *height
	cfg.EyeWidth, cfg.EyeHeight, cfg.EyeSpacing = *eyeWidth, *eyeHeight, *eyeSpacing
	cfg.AutoBlink, cfg.DemoMode = *blink, *demo
	cfg.Transition, cfg.TickRate = *transition, *rate
	cfg.WebPort, cfg.LogLevel = *port, *logLevel
	cfg.SerialPath, cfg.SerialAddr = *serial, *serialAddr
	return cfg
}
