package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/camera"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/forge"
	"github.com/pthm-cable/antfarm/genesis"
	"github.com/pthm-cable/antfarm/rules"
	"github.com/pthm-cable/antfarm/seedpool"
	"github.com/pthm-cable/antfarm/sim"
	"github.com/pthm-cable/antfarm/telemetry"
	"github.com/pthm-cable/antfarm/validate"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 672
)

// palette maps cell colors to display colors; color 0 is the background.
var palette = []color.RGBA{
	{R: 16, G: 16, B: 24, A: 255},
	{R: 235, G: 94, B: 52, A: 255},
	{R: 52, G: 170, B: 235, A: 255},
	{R: 250, G: 216, B: 72, A: 255},
	{R: 94, G: 220, B: 104, A: 255},
	{R: 200, G: 92, B: 230, A: 255},
	{R: 240, G: 240, B: 240, A: 255},
	{R: 245, G: 150, B: 40, A: 255},
	{R: 70, G: 230, B: 210, A: 255},
	{R: 230, G: 70, B: 140, A: 255},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	count := flag.Int("count", 20, "Tables to generate in headless mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	stepsPerFrame := flag.Int("steps-per-frame", 64, "Simulation steps per rendered frame")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	slog.Info("building seed pool", "target_size", cfg.Pool.TargetSize)
	pool := seedpool.Shared(cfg)
	sampler := seedpool.NewSampler(pool, cfg)
	slog.Info("seed pool ready", "entries", pool.Len())

	validator, err := validate.New(cfg, func(w, h int) validate.Simulation {
		return sim.New(w, h)
	}, nil)
	if err != nil {
		slog.Error("validator setup failed", "error", err)
		os.Exit(1)
	}

	stream := genesis.NewStream(uint64(rngSeed))
	gen := forge.NewGenerator(cfg, sampler, validator, stream)

	if *headless {
		runHeadless(gen, cfg, *count, *outputDir, rngSeed)
		return
	}
	runViewer(gen, cfg, stream, *stepsPerFrame)
}

func runHeadless(gen *forge.Generator, cfg *config.Config, count int, outputDir string, seed int64) {
	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		slog.Error("output setup failed", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("config snapshot failed", "error", err)
	}

	slog.Info("starting headless generation", "seed", seed, "count", count)

	var records []telemetry.AttemptRecord
	for batch := 0; batch < count; batch++ {
		table, origin, res := gen.Generate()

		rec := telemetry.AttemptRecord{
			Batch:       batch,
			Attempt:     origin.Attempts,
			Strategy:    origin.Strategy,
			Detail:      origin.Detail,
			Accepted:    res.OK,
			Stage:       string(res.Stage),
			Reason:      res.Reason,
			States:      table.States(),
			Colors:      table.Colors(),
			WriteChange: res.Stats.WriteChange,
			Turning:     res.Stats.Turning,
			SelfState:   res.Stats.SelfState,
			Changed:     res.Activity.Changed,
			Late:        res.Activity.Late,
			TailChange:  res.Activity.Tail,
			Painted:     res.Activity.Painted,
			ColorsSeen:  res.Activity.ColorsSeen,
		}
		records = append(records, rec)
		slog.Info("generated", "record", rec)
		if err := out.WriteAttempt(rec); err != nil {
			slog.Error("attempt log failed", "error", err)
		}
	}

	slog.Info("batch complete",
		"count", count,
		"acceptance", telemetry.AcceptanceRate(records),
	)
}

func runViewer(gen *forge.Generator, cfg *config.Config, stream genesis.Stream, stepsPerFrame int) {
	rl.InitWindow(windowWidth, windowHeight, "Antfarm")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	w, h := cfg.Grid.Width, cfg.Grid.Height
	display := sim.New(w, h)

	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	// Repeat wrapping renders the toroidal seam when the camera pans
	// across a grid edge.
	rl.SetTextureWrap(texture, rl.WrapRepeat)

	pixels := make([]color.RGBA, w*h)
	cam := camera.New(previewSize, previewSize, w, h)

	table, origin, res := gen.Generate()
	install(display, table, cfg)

	chaosMode := false
	baseCfg := cfg
	paused := false
	speed := float32(stepsPerFrame)

	for !rl.WindowShouldClose() {
		regen := rl.IsKeyPressed(rl.KeyG)
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyR) {
			cam.Reset()
		}

		mouse := rl.GetMousePosition()
		overPreview := mouse.X >= 10 && mouse.X < 10+previewSize &&
			mouse.Y >= 10 && mouse.Y < 10+previewSize
		if overPreview {
			if wheel := rl.GetMouseWheelMove(); wheel != 0 {
				cam.ZoomBy(1 + wheel*0.1)
			}
			if rl.IsMouseButtonDown(rl.MouseButtonRight) {
				d := rl.GetMouseDelta()
				cam.Pan(-d.X, -d.Y)
			}
			if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
				cx, cy := cam.CellAt(mouse.X-10, mouse.Y-10)
				display.AddAgent(cx, cy, 0)
			}
		}

		panelX := float32(previewSize + 20)
		panelY := float32(40)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		if !paused {
			display.Update(int(speed))
		}
		blit(texture, pixels, display)
		vx, vy, vw, vh := cam.View()
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: vx, Y: vy, Width: vw, Height: vh},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		rl.DrawText("Antfarm", int32(panelX), 10, 20, rl.DarkGray)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, "Generate [G]") {
			regen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, chaosLabel(chaosMode)) {
			chaosMode = !chaosMode
			// Whole-value swap; the base config is never touched.
			if chaosMode {
				gen.SetConfig(baseCfg.Randomized(stream))
			} else {
				gen.SetConfig(baseCfg)
			}
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, pauseLabel(paused)) {
			paused = !paused
		}
		panelY += 50

		rl.DrawText("Steps per frame", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		speed = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: 180, Height: 20},
			"1", "512", speed, 1, 512,
		)
		panelY += 40

		rl.DrawText(fmt.Sprintf("strategy: %s", origin.Strategy), int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 18
		if origin.Detail != "" {
			rl.DrawText(fmt.Sprintf("detail: %s", origin.Detail), int32(panelX), int32(panelY), 14, rl.DarkGray)
			panelY += 18
		}
		rl.DrawText(fmt.Sprintf("attempts: %d", origin.Attempts), int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("%d states x %d colors", table.States(), table.Colors()),
			int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("steps: %d", display.Steps()), int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("agents: %d", display.AgentCount()), int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 18
		if origin.Warning {
			rl.DrawText("budget exhausted: unvalidated table", int32(panelX), int32(panelY), 14, rl.Maroon)
			panelY += 18
		}
		if !res.OK && res.Reason != "" {
			rl.DrawText(res.Reason, int32(panelX), int32(panelY), 12, rl.Gray)
		}

		rl.DrawText("wheel: zoom  right-drag: pan  [R]: reset view  click: drop agent",
			12, windowHeight-22, 12, rl.Gray)

		rl.EndDrawing()

		if regen {
			table, origin, res = gen.Generate()
			install(display, table, cfg)
		}
	}
}

// install loads a table into the display sim and seeds its agents.
func install(s *sim.Sim, table rules.Table, cfg *config.Config) {
	s.SetRules(table)
	s.Reset()
	s.ClearAgents()
	for i := 0; i < cfg.Grid.Agents; i++ {
		x, y := validate.DefaultPlacement("viewer", i, cfg.Grid.Agents, s.Width(), s.Height())
		s.AddAgent(x, y, uint8(i%4))
	}
}

func blit(texture rl.Texture2D, pixels []color.RGBA, s *sim.Sim) {
	cells := s.Cells()
	for i, c := range cells {
		pixels[i] = palette[int(c)%len(palette)]
	}
	rl.UpdateTexture(texture, pixels)
}

func chaosLabel(on bool) string {
	if on {
		return "Chaos: on"
	}
	return "Chaos: off"
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}
