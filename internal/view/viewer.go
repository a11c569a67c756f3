// Package view is the Ebiten front end: it draws a game.World through a
// camera and turns mouse and keyboard input into world operations.
package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Isle-Sim/internal/camera"
	"github.com/Garsondee/Isle-Sim/internal/game"
	"github.com/Garsondee/Isle-Sim/internal/logger"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// statusTicks is how long an input outcome stays on the HUD (~3s at 60TPS).
const statusTicks = 180

// Game implements ebiten.Game for one World.
type Game struct {
	world  *game.World
	assets *game.NameIndex
	cam    *camera.Camera
	events *EventLog

	width, height int // window
	viewW, viewH  int // map viewport, left of the event panel

	selectedKind game.BuildingKind
	rotation     game.Rotation
	selected     game.ActorID
	hasSelected  bool
	paused       bool

	status      string
	statusUntil int
	frame       int
}

// New creates a viewer for w. assets must be the index the world was built
// with so tile ids resolve back to names.
func New(w *game.World, assets *game.NameIndex, width, height int) *Game {
	viewW := width - logPanelWidth
	m := w.Map()
	return &Game{
		world:  w,
		assets: assets,
		cam:    camera.New(m.Width, m.Height, viewW, height),
		events: NewEventLog(),
		width:  width,
		height: height,
		viewW:  viewW,
		viewH:  height,
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.frame++
	g.handleCamera()
	g.handleKeys()
	g.handleMouse()
	if !g.paused {
		g.world.Update(1.0 / game.TicksPerSecond)
	}
	g.events.Sync(g.world.Log())
	return nil
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusUntil = g.frame + statusTicks
}

// report logs a rejected input and shows it on the HUD.
func (g *Game) report(op string, err error) {
	logger.Log.WithError(err).WithField("op", op).Debug("input rejected")
	g.setStatus("%s: %v", op, err)
}

// cursorTile returns the map tile under the mouse, if any.
func (g *Game) cursorTile() (game.Pos, bool) {
	mx, my := ebiten.CursorPosition()
	if mx >= g.viewW {
		return game.Pos{}, false
	}
	return g.cam.ScreenToTile(float64(mx), float64(my))
}

// --- Input ---

func (g *Game) handleCamera() {
	const panSpeed = 6.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cam.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cam.Pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cam.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cam.Pan(panSpeed, 0)
	}

	mx, my := ebiten.CursorPosition()
	if _, wy := ebiten.Wheel(); wy != 0 && mx < g.viewW {
		g.cam.ZoomBy(math.Copysign(1, wy), float64(mx), float64(my))
	}
	cx, cy := float64(g.viewW)/2, float64(g.viewH)/2
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.cam.ZoomBy(1, cx, cy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.cam.ZoomBy(-1, cx, cy)
	}
}

var kindKeys = [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

func (g *Game) handleKeys() {
	kinds := game.BuildingKinds()
	for i, k := range kindKeys {
		if i < len(kinds) && inpututil.IsKeyJustPressed(k) {
			g.selectedKind = kinds[i]
			g.setStatus("building: %s", g.selectedKind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rotation = (g.rotation + 1) % 4
		g.setStatus("rotation: %d", g.rotation.Degrees())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleSelection()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if p, ok := g.cursorTile(); ok {
			id, err := g.world.SpawnActor(p.X, p.Y)
			if err != nil {
				g.report("spawn", err)
			} else {
				g.selected, g.hasSelected = id, true
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.clearAtCursor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.hasSelected {
		if err := g.world.ClearActorTarget(g.selected); err != nil {
			g.report("stop", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
}

func (g *Game) handleMouse() {
	p, ok := g.cursorTile()
	if !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if id, found := g.actorAt(p); found {
			g.selected, g.hasSelected = id, true
		} else if g.hasSelected {
			if err := g.world.SetActorTarget(g.selected, p.X, p.Y); err != nil {
				g.report("move", err)
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if _, err := g.world.PlaceBuildingRotated(p.X, p.Y, g.selectedKind, g.rotation); err != nil {
			g.report("place", err)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.clearAtCursor()
	}
}

func (g *Game) clearAtCursor() {
	p, ok := g.cursorTile()
	if !ok {
		return
	}
	if _, err := g.world.ClearBuilding(p.X, p.Y); err != nil {
		g.report("clear", err)
	}
}

func (g *Game) actorAt(p game.Pos) (game.ActorID, bool) {
	for _, a := range g.world.Actors() {
		if a.Tile() == p {
			return a.ID(), true
		}
	}
	return 0, false
}

func (g *Game) cycleSelection() {
	actors := g.world.Actors()
	if len(actors) == 0 {
		return
	}
	next := 0
	if g.hasSelected {
		for i, a := range actors {
			if a.ID() == g.selected {
				next = (i + 1) % len(actors)
				break
			}
		}
	}
	g.selected, g.hasSelected = actors[next].ID(), true
}

func (g *Game) copyReport() {
	r := game.BuildReport(g.world)
	if err := clipboard.WriteAll(r.Format()); err != nil {
		g.report("copy", err)
		return
	}
	g.setStatus("report copied (seed %d)", r.Seed)
}

// --- Drawing ---

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 14, A: 255})
	g.drawTerrain(screen)
	g.drawBuildings(screen)
	g.drawActors(screen)
	g.drawCursor(screen)
	g.drawHUD(screen)
	g.events.Draw(screen, g.viewW, g.height)
}

// visibleTiles returns the inclusive tile range inside the viewport.
func (g *Game) visibleTiles() (x0, y0, x1, y1 int) {
	m := g.world.Map()
	wx0, wy0 := g.cam.ScreenToWorld(0, 0)
	wx1, wy1 := g.cam.ScreenToWorld(float64(g.viewW), float64(g.viewH))
	a := game.WorldToCell(wx0, wy0)
	b := game.WorldToCell(wx1, wy1)
	return max(0, a.X), max(0, a.Y), min(m.Width-1, b.X), min(m.Height-1, b.Y)
}

func (g *Game) drawTerrain(screen *ebiten.Image) {
	m := g.world.Map()
	size := float32(game.TileSize * g.cam.Zoom)
	x0, y0, x1, y1 := g.visibleTiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t, err := m.TileAt(x, y)
			if err != nil {
				continue
			}
			sx, sy := g.cam.TileToScreen(game.Pt(x, y))
			fx, fy := float32(sx), float32(sy)
			c := assetColour(g.assets.Name(t.AssetID))
			vector.FillRect(screen, fx, fy, size+0.5, size+0.5, c, false)

			e := m.Edges(x, y)
			if e == 0 {
				continue
			}
			ec := edgeColour(c)
			w := float32(math.Max(1, g.cam.Zoom))
			if e.Has(game.EdgeNorth) {
				vector.StrokeLine(screen, fx, fy, fx+size, fy, w, ec, false)
			}
			if e.Has(game.EdgeSouth) {
				vector.StrokeLine(screen, fx, fy+size, fx+size, fy+size, w, ec, false)
			}
			if e.Has(game.EdgeWest) {
				vector.StrokeLine(screen, fx, fy, fx, fy+size, w, ec, false)
			}
			if e.Has(game.EdgeEast) {
				vector.StrokeLine(screen, fx+size, fy, fx+size, fy+size, w, ec, false)
			}
		}
	}
}

func (g *Game) drawBuildings(screen *ebiten.Image) {
	m := g.world.Map()
	size := float32(game.TileSize * g.cam.Zoom)
	inset := size * 0.1
	x0, y0, x1, y1 := g.visibleTiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			b, err := m.BuildingAt(x, y)
			if err != nil || b == nil {
				continue
			}
			sx, sy := g.cam.TileToScreen(b.Pos)
			fx, fy := float32(sx)+inset, float32(sy)+inset
			inner := size - 2*inset
			vector.FillRect(screen, fx, fy, inner, inner, assetColour(g.assets.Name(b.AssetID)), false)

			// Facing mark: a line across the tile along the rotation.
			if b.Kind == game.BuildingWall || b.Kind == game.BuildingGate {
				cx, cy := fx+inner/2, fy+inner/2
				rad := float64(b.Rotation.Degrees()) * math.Pi / 180
				dx := float32(math.Cos(rad)) * inner / 2
				dy := float32(math.Sin(rad)) * inner / 2
				vector.StrokeLine(screen, cx-dx, cy-dy, cx+dx, cy+dy, 2, color.RGBA{R: 30, G: 30, B: 30, A: 255}, false)
			}
		}
	}
}

func (g *Game) drawActors(screen *ebiten.Image) {
	r := float32(game.TileSize*g.cam.Zoom) * 0.35
	for _, a := range g.world.Actors() {
		selected := g.hasSelected && a.ID() == g.selected
		ax, ay := a.Position()
		sx, sy := g.cam.WorldToScreen(ax, ay)

		if selected {
			// Remaining route.
			px, py := float32(sx), float32(sy)
			for _, wp := range a.Waypoints() {
				wx, wy := game.CellToWorld(wp)
				qx, qy := g.cam.WorldToScreen(wx, wy)
				vector.StrokeLine(screen, px, py, float32(qx), float32(qy), 1.5, color.RGBA{R: 250, G: 220, B: 60, A: 160}, false)
				vector.FillCircle(screen, float32(qx), float32(qy), 2.5, color.RGBA{R: 250, G: 220, B: 60, A: 220}, false)
				px, py = float32(qx), float32(qy)
			}
		}
		vector.FillCircle(screen, float32(sx), float32(sy), r, actorColour(selected, a.State()), true)
	}
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	p, ok := g.cursorTile()
	if !ok {
		return
	}
	sx, sy := g.cam.TileToScreen(p)
	size := float32(game.TileSize * g.cam.Zoom)
	vector.StrokeRect(screen, float32(sx), float32(sy), size, size, 1, color.RGBA{R: 255, G: 255, B: 255, A: 160}, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	m := g.world.Map()
	state := "running"
	if g.paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("seed %d  %dx%d  T=%d  %s", m.Seed, m.Width, m.Height, g.world.Tick(), state),
		fmt.Sprintf("build: %s (rot %d)  zoom %.1fx", g.selectedKind, g.rotation.Degrees(), g.cam.Zoom),
		"1-4 kind  R rotate  RMB place  MMB/X clear",
		"N spawn  LMB select/move  Tab cycle  Esc stop",
		"WASD pan  wheel zoom  Space pause  C copy",
	}
	if p, ok := g.cursorTile(); ok {
		if t, err := m.TileAt(p.X, p.Y); err == nil {
			c, _ := m.Costs().Get(p.X, p.Y)
			cost := fmt.Sprint(c)
			if c == game.Impassable {
				cost = "blocked"
			}
			lines = append(lines, fmt.Sprintf("%s %s cost=%s", p, t.Category, cost))
		}
	}
	if g.frame < g.statusUntil {
		lines = append(lines, g.status)
	}

	vector.FillRect(screen, 4, 4, 330, float32(len(lines)*14+8), color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, 10, 18+i*14, color.White)
	}
}
