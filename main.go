package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/leonelquinteros/gotext"

	"dropgrid/pkg/engine/audio"
	"dropgrid/pkg/engine/input"
	"dropgrid/pkg/game/config"
	"dropgrid/pkg/game/devtools"
	"dropgrid/pkg/game/gameplay"
	"dropgrid/pkg/game/renderer"
	ebitenrenderer "dropgrid/pkg/game/renderer/ebiten"
	"dropgrid/pkg/game/renderer/tui"
)

func initGettext() {
	gotext.Configure("locales", "en_GB", "default")
}

// initAudio starts the speaker, falling back to silence when audio is off
// or no device is available
func initAudio(cfg *config.Config) (audio.Out, func()) {
	if !cfg.Audio.Enabled {
		return audio.Discard{}, func() {}
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		log.Printf("Warning: audio disabled: %v", err)
		return audio.Discard{}, func() {}
	}
	return sm, sm.Cleanup
}

func main() {
	configPath := flag.String("config", config.DefaultPath(), "settings file (JSON)")
	useTUI := flag.Bool("tui", false, "run in the terminal instead of a window")
	script := flag.String("script", "", "run terminal commands from a file, then exit")
	dump := flag.Bool("dump", false, "print the demo grid and exit")
	flag.Parse()

	initGettext()
	renderer.InitColors()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Printf("Warning: could not load preferences, using defaults: %v", err)
		cfg = config.Default()
	}
	config.SetCurrent(cfg)

	au, closeAudio := initAudio(config.Current())
	defer closeAudio()

	switch {
	case *dump:
		s := gameplay.BuildScene(nil, renderer.NewRetained(), au)
		out, err := devtools.DumpGrid(s)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Print(out)

	case *script != "":
		f, err := os.Open(*script)
		if err != nil {
			log.Fatalf("script: %v", err)
		}
		defer f.Close()
		runTerminal(au, input.NewScriptReader(f), false)

	case *useTUI:
		runTerminal(au, input.NewLineReader(), true)

	default:
		runWindow(au)
	}
}

// runWindow opens the Ebiten window and blocks until it closes
func runWindow(au audio.Out) {
	view := config.Current().View
	e := ebitenrenderer.New(view.Width, view.Height)
	if err := e.Init(); err != nil {
		log.Fatalf("window: %v", err)
	}
	renderer.SetRenderer(e)

	s := gameplay.BuildScene(nil, e, au)
	defer gameplay.DestroyScene(s)
	e.Attach(s)

	if err := e.Run(); err != nil {
		log.Fatalf("window: %v", err)
	}
}

// runTerminal drives the scene from typed commands until quit or end of
// input. Interactive sessions redraw the whole frame after each command.
func runTerminal(au audio.Out, lines *input.LineReader, interactive bool) {
	t := tui.New()
	t.Init()
	renderer.SetRenderer(t)

	s := gameplay.BuildScene(nil, t, au)
	defer gameplay.DestroyScene(s)

	for !s.Quit {
		if interactive {
			t.Clear()
			t.RenderFrame(s)
		}

		line, err := lines.Next()
		if errors.Is(err, io.EOF) || errors.Is(err, input.ErrInterrupted) {
			break
		}
		if err != nil {
			log.Fatalf("input: %v", err)
		}

		if err := gameplay.ExecCommand(s, line); err != nil && !errors.Is(err, gameplay.ErrUnknownCommand) {
			s.AddMessage(renderer.ColorDenied.Sprint(err.Error()))
		}
	}

	if !interactive {
		t.RenderFrame(s)
		fmt.Println()
	}
}
