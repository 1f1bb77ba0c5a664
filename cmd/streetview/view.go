package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/core/ecs"
	"github.com/curbrush/world/internal/system"
)

const (
	unitsPerRow  = 2.0 // Z units per terminal row
	unitsPerCol  = 1.0 // X units per terminal column
	playerRowGap = 4   // rows between the player and the bottom edge
)

type glyph struct {
	r     rune
	style tcell.Style
}

var (
	styleRoad     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSidewalk = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleGrass    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
)

var kindGlyph = map[component.Kind]glyph{
	component.KindCrossing:   {'=', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	component.KindBuilding:   {'#', tcell.StyleDefault.Foreground(tcell.ColorOlive)},
	component.KindSkyscraper: {'█', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	component.KindTree:       {'♣', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	component.KindTallTree:   {'♠', tcell.StyleDefault.Foreground(tcell.ColorLime)},
	component.KindBush:       {'*', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	component.KindBench:      {'b', tcell.StyleDefault.Foreground(tcell.ColorMaroon)},
	component.KindTrashBin:   {'u', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	component.KindFlowerBed:  {'%', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	component.KindLampPost:   {'|', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	component.KindPedestrian: {'@', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	component.KindVehicle:    {'V', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	component.KindPigeon:     {',', tcell.StyleDefault.Foreground(tcell.ColorSilver)},
	component.KindCrane:      {'T', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	component.KindAirplane:   {'+', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)},
}

var hazardGlyph = [...]rune{
	component.HazardManhole: 'o',
	component.HazardPuddle:  '~',
	component.HazardPothole: 'x',
	component.HazardCurb:    '_',
}

// projection maps world coordinates to terminal cells with the player
// near the bottom edge, looking up the screen along +Z.
type projection struct {
	w, h    int
	playerZ float64
}

func (p projection) cell(x, z float64) (col, row int, ok bool) {
	col = p.w/2 + int(math.Round(x/unitsPerCol))
	row = p.h - 1 - playerRowGap - int(math.Round((z-p.playerZ)/unitsPerRow))
	// the last row belongs to the status line
	return col, row, col >= 0 && col < p.w && row >= 0 && row < p.h-1
}

// draw renders a top-down view of the session.
func draw(screen tcell.Screen, sess *system.Session) {
	screen.Clear()
	w, h := screen.Size()
	proj := projection{w: w, h: h, playerZ: sess.Player.Z}
	store := sess.Store
	layout := sess.Config.Layout

	// Ground bands
	for row := 0; row < h-1; row++ {
		for col := 0; col < w; col++ {
			x := math.Abs(float64(col-w/2) * unitsPerCol)
			switch {
			case x <= layout.RoadHalfWidth:
				screen.SetContent(col, row, '·', nil, styleRoad)
			case x <= layout.SidewalkOuter():
				screen.SetContent(col, row, '░', nil, styleSidewalk)
			case x >= layout.Grass.Min && x <= layout.Grass.Max:
				screen.SetContent(col, row, '"', nil, styleGrass)
			}
		}
	}

	// Entities; larger footprints first so actors stay visible on top.
	for _, layer := range [][]component.Kind{
		{component.KindCrossing, component.KindBuilding, component.KindSkyscraper, component.KindCrane},
		{component.KindTree, component.KindTallTree, component.KindBush, component.KindBench,
			component.KindTrashBin, component.KindFlowerBed, component.KindLampPost, component.KindHazard},
		{component.KindPigeon, component.KindPedestrian, component.KindVehicle, component.KindAirplane},
	} {
		want := make(map[component.Kind]bool, len(layer))
		for _, k := range layer {
			want[k] = true
		}
		store.Tags.Each(func(id ecs.EntityID, tag *component.Tag) {
			if want[tag.Kind] {
				drawEntity(screen, proj, store, id, tag)
			}
		})
	}

	if col, row, ok := proj.cell(0, sess.Player.Z); ok {
		screen.SetContent(col, row, '▲', nil, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	}
	drawStatus(screen, sess, w, h)
	screen.Show()
}

func drawEntity(screen tcell.Screen, proj projection, store *component.Store, id ecs.EntityID, tag *component.Tag) {
	tr, ok := store.Transforms.Get(id)
	if !ok {
		return
	}
	g, known := kindGlyph[tag.Kind]
	if tag.Kind == component.KindHazard {
		if hz, ok := store.Hazards.Get(id); ok {
			g = glyph{hazardGlyph[hz.Kind], tcell.StyleDefault.Foreground(tcell.ColorRed)}
			known = true
		}
	}
	if tag.Kind == component.KindVehicle {
		if v, ok := store.Vehicles.Get(id); ok && v.Lane == component.LaneOncoming {
			g.r = 'A'
		}
	}
	if !known {
		return
	}

	// Footprint fill for buildings and crossings, single cell otherwise.
	halfW := math.Max(tr.Width/2, 0)
	halfD := math.Max(tr.Depth/2, 0)
	if tag.Kind != component.KindBuilding && tag.Kind != component.KindSkyscraper && tag.Kind != component.KindCrossing {
		halfW, halfD = 0, 0
	}
	for x := tr.X - halfW; x <= tr.X+halfW; x += unitsPerCol {
		for z := tr.Z - halfD; z <= tr.Z+halfD; z += unitsPerRow {
			if col, row, ok := proj.cell(x, z); ok {
				screen.SetContent(col, row, g.r, nil, g.style)
			}
		}
	}
}

func drawStatus(screen tcell.Screen, sess *system.Session, w, h int) {
	p := sess.Player
	line := fmt.Sprintf(" %s  z %.0f  speed %.0f  view %.0f  difficulty %.2f  chunks %d  vehicles %d  entities %d   [+/-] speed [[/]] view [r] reset [m] mode [q] quit",
		sess.Model.Mode(), p.Z, p.Speed, sess.Streamer.RenderDistance(), sess.Model.Difficulty(p.Distance),
		len(sess.Streamer.ActiveIndices()), sess.Vehicles.Len(), sess.Store.World.Live())
	col := 0
	for _, r := range line {
		if col >= w {
			break
		}
		screen.SetContent(col, h-1, r, nil, styleStatus)
		col++
	}
	for ; col < w; col++ {
		screen.SetContent(col, h-1, ' ', nil, styleStatus)
	}
}
