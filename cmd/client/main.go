package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"atc-landing/internal/command"
	"atc-landing/internal/config"
	"atc-landing/internal/game/aircraft"
	"atc-landing/internal/game/simulation"
	"atc-landing/internal/landing"
	"atc-landing/internal/ui"
	"atc-landing/pkg/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"
)

const (
	AIRCRAFT_HIT_RADIUS = 12.0
	RADIO_LINES         = 6
)

type Camera struct {
	X, Y                 float64
	PanStartX, PanStartY int
	Scale                float64
}

type Game struct {
	width, height int
	camera        *Camera
	sim           *simulation.Simulation

	selectedAircraftID types.AircraftID
	commandInput       *ui.TextInput
	lastReadback       string
}

func NewGame(cfg *config.Config, engine *landing.Engine) *Game {
	game := &Game{
		sim:    simulation.NewSimulation(cfg.Simulation, engine),
		camera: &Camera{0, 0, 0, 0, 1.0},
		width:  int(cfg.Simulation.AirspaceWidth),
		height: int(cfg.Simulation.AirspaceHeight),
	}

	game.commandInput = ui.NewTextInput(10, game.height-48, game.width/2, 30, func(cmd string) {
		game.executeCommand(cmd)
	})

	return game
}

func (g *Game) Update() error {
	dt := 1.0 / g.sim.TickRate
	g.sim.Update(dt)

	g.handleInput()
	g.commandInput.Update()

	if _, ok := g.sim.Aircrafts[g.selectedAircraftID]; !ok {
		g.selectedAircraftID = ""
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	g.drawAirspace(screen)
	g.drawRunways(screen)

	for _, ac := range g.sim.Aircrafts {
		g.drawAircraft(screen, ac)
	}

	g.drawUI(screen)
	ebitenutil.DebugPrint(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		if g.commandInput.IsClicked(x, y) {
			g.commandInput.IsActive = true
			return
		}
		g.commandInput.IsActive = false

		wx, wy := g.screenToWorld(float64(x), float64(y))
		clickedPos := types.NewVec2(wx, wy)
		g.selectedAircraftID = "" // Clear current selection

		for _, ac := range g.sim.Aircrafts {
			if clickedPos.DistanceTo(ac.Position) <= AIRCRAFT_HIT_RADIUS/g.camera.Scale {
				g.selectedAircraftID = ac.ID
				log.Printf("Selected aircraft: %s", g.selectedAircraftID)
				break
			}
		}
	}

	// Shortcuts only apply while the scope, not the command line, has focus.
	if !g.commandInput.IsActive && g.selectedAircraftID != "" {
		if inpututil.IsKeyJustPressed(ebiten.KeyH) {
			if ac, ok := g.sim.Aircrafts[g.selectedAircraftID]; ok {
				g.executeCommand(fmt.Sprintf("H %.0f", math.Mod(ac.TargetHeading+45, 360)))
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyL) {
			g.executeCommand("LAND")
		}
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		cursorX, cursorY := ebiten.CursorPosition()
		worldX, worldY := g.screenToWorld(float64(cursorX), float64(cursorY))

		oldScale := g.camera.Scale
		if wy > 0 {
			oldScale *= 1.1
		} else {
			oldScale /= 1.1
		}
		g.camera.Scale = math.Max(0.5, math.Min(3.0, oldScale))

		newWorldX, newWorldY := g.screenToWorld(float64(cursorX), float64(cursorY))
		g.camera.X -= (newWorldX - worldX)
		g.camera.Y -= (newWorldY - worldY)
	}

	// Right mouse button for pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		dx, dy := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		} else {
			g.camera.X -= float64(dx-g.camera.PanStartX) / g.camera.Scale
			g.camera.Y -= float64(dy-g.camera.PanStartY) / g.camera.Scale
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		}
	}
}

func (g *Game) executeCommand(input string) {
	readback, err := command.Run(g.sim, input, g.selectedAircraftID)
	if err != nil {
		g.lastReadback = "ERROR: " + err.Error()
		return
	}
	g.lastReadback = readback
}

// Helper: Convert screen coordinates to world coordinates
func (g *Game) screenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/g.camera.Scale + g.camera.X
	wy = sy/g.camera.Scale + g.camera.Y
	return
}

// Helper: Convert world coordinates to screen coordinates
func (g *Game) worldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx - g.camera.X) * g.camera.Scale
	sy = (wy - g.camera.Y) * g.camera.Scale
	return
}

func aircraftColor(ac *aircraft.Aircraft) color.RGBA {
	switch {
	case ac.Emergency:
		return color.RGBA{255, 80, 80, 255}
	case ac.Priority:
		return color.RGBA{255, 200, 0, 255}
	case ac.State == aircraft.APPROACH || ac.State == aircraft.LANDED:
		return color.RGBA{0, 255, 120, 255}
	case ac.State == aircraft.HOLDING:
		return color.RGBA{180, 180, 255, 255}
	default:
		return color.RGBA{255, 255, 255, 255}
	}
}

func (g *Game) drawAircraft(screen *ebiten.Image, ac *aircraft.Aircraft) {
	screenX, screenY := g.worldToScreen(ac.Position.X, ac.Position.Y)
	sx, sy := float32(screenX), float32(screenY)
	clr := aircraftColor(ac)

	// Target symbol instead of a sprite, oriented along the heading line.
	size := float32(4 * g.camera.Scale)
	vector.StrokeRect(screen, sx-size, sy-size, 2*size, 2*size, 1, clr, false)

	if g.selectedAircraftID == ac.ID {
		vector.StrokeRect(screen, sx-10, sy-10, 20, 20, 1, color.RGBA{255, 255, 255, 255}, false)
	}

	lineLength := 30.0 // world units, scaled on projection
	radians := ac.Heading * math.Pi / 180.0
	endWorldX := ac.Position.X + lineLength*math.Sin(radians)
	endWorldY := ac.Position.Y - lineLength*math.Cos(radians)
	endScreenX, endScreenY := g.worldToScreen(endWorldX, endWorldY)
	vector.StrokeLine(screen, sx, sy, float32(endScreenX), float32(endScreenY), 1, color.RGBA{100, 100, 255, 255}, false)

	tag := ""
	switch {
	case ac.Emergency:
		tag = " EMER"
	case ac.Priority:
		tag = " PRI"
	}
	status := aircraft.StateStringMap[ac.State]
	if ac.AssignedRunway != "" {
		status += " " + ac.AssignedRunway
	}

	tagText := fmt.Sprintf("%s%s\nALT:%.0f (%.0f)\nSPD:%.0f (%.0f)\nHDG:%.0f (%.0f)\nSTS: %s",
		ac.ID, tag, ac.Altitude, ac.TargetAltitude,
		ac.Speed, ac.TargetSpeed,
		ac.Heading, ac.TargetHeading, status)

	ebitenutil.DebugPrintAt(screen, tagText, int(screenX)+10, int(screenY)-20)

	if ac.IsConflicting {
		vector.DrawFilledCircle(screen, sx, sy, float32(10*g.camera.Scale), color.RGBA{255, 0, 0, 100}, false)
	} else if ac.ConflictPredicted {
		vector.StrokeCircle(screen, sx, sy, float32(12*g.camera.Scale), 1, color.RGBA{255, 160, 0, 200}, false)
	}
}

func (g *Game) drawAirspace(screen *ebiten.Image) {
	for _, wp := range g.sim.Airspace.Waypoints {
		screenX, screenY := g.worldToScreen(wp.Position.X, wp.Position.Y)
		vector.DrawFilledCircle(screen, float32(screenX), float32(screenY), float32(3*g.camera.Scale), color.RGBA{0, 255, 255, 255}, false)
		ebitenutil.DebugPrintAt(screen, wp.Name, int(screenX)+5, int(screenY)+5)
	}

	sector := g.sim.Airspace.Sectors["SECTOR1"]
	if sector != nil && len(sector.Bounds) >= 2 {
		for i := 0; i < len(sector.Bounds); i++ {
			p1World := sector.Bounds[i]
			p2World := sector.Bounds[(i+1)%len(sector.Bounds)]
			p1ScreenX, p1ScreenY := g.worldToScreen(p1World.X, p1World.Y)
			p2ScreenX, p2ScreenY := g.worldToScreen(p2World.X, p2World.Y)
			vector.StrokeLine(screen, float32(p1ScreenX), float32(p1ScreenY), float32(p2ScreenX), float32(p2ScreenY), float32(1*g.camera.Scale), color.RGBA{0, 100, 0, 255}, false)
		}
	}
}

func (g *Game) drawRunways(screen *ebiten.Image) {
	home := g.sim.Airspace.HomeAirport()
	if home == nil {
		return
	}
	for _, name := range home.RunwayOrder {
		rwy := home.Runways[name]
		radians := rwy.Heading * math.Pi / 180.0
		endX := rwy.Threshold.X + rwy.Length*math.Sin(radians)
		endY := rwy.Threshold.Y - rwy.Length*math.Cos(radians)

		x1, y1 := g.worldToScreen(rwy.Threshold.X, rwy.Threshold.Y)
		x2, y2 := g.worldToScreen(endX, endY)

		clr := color.RGBA{200, 200, 200, 255}
		if rwy.Closed {
			clr = color.RGBA{200, 0, 0, 255}
		}
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(4*g.camera.Scale), clr, false)
		ebitenutil.DebugPrintAt(screen, rwy.Name, int(x1)-24, int(y1)-8)
	}
}

func (g *Game) drawUI(screen *ebiten.Image) {
	g.commandInput.Draw(screen)

	selectedAcText := "Selected: None"
	if g.selectedAircraftID != "" {
		selectedAcText = "Selected: " + string(g.selectedAircraftID)
	}
	ebitenutil.DebugPrintAt(screen, selectedAcText, 10, g.height-68)
	if g.lastReadback != "" {
		ebitenutil.DebugPrintAt(screen, g.lastReadback, g.width/2+20, g.height-42)
	}

	status := fmt.Sprintf("WX: %.0f kt / %.0f m\nLanded: %d  Denied: %d\nHandoffs: %d  Missed: %d  Conflicts: %d",
		g.sim.Weather.WindSpeed, g.sim.Weather.Visibility,
		g.sim.Landings, g.sim.Denials,
		g.sim.HandOffs, g.sim.MissedHandoffs, g.sim.Conflicts)
	if rec := g.sim.LastDecision; rec != nil {
		status += fmt.Sprintf("\nLast: %s %s", rec.Callsign, rec.Decision)
	}
	ebitenutil.DebugPrintAt(screen, status, g.width-360, 10)

	y := 80
	for _, msg := range g.sim.RecentRadioMessages(RADIO_LINES) {
		line := fmt.Sprintf("%s %s: %s", msg.Timestamp.Format("15:04:05"), msg.Callsign, msg.Message)
		if msg.IsUrgent {
			line = "!! " + line
		}
		ebitenutil.DebugPrintAt(screen, line, g.width-360, y)
		y += 16
	}
}

func main() {
	configPath := flag.String("config", "configs/atc.yaml", "path to the simulation config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	engineLogger := log.New("landing")
	cfg.ApplyLogging(engineLogger)

	game := NewGame(cfg, landing.NewEngine(engineLogger))

	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("ATC Landing Simulator")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
