package main

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/paulmach/orb"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/model"
	"github.com/udisondev/npcai/internal/runner"
)

const margin = 20

var (
	colorBackground = color.NRGBA{24, 24, 28, 255}
	colorBorder     = color.NRGBA{90, 90, 100, 255}
	colorObstacle   = color.NRGBA{120, 80, 60, 255}
	colorPatrol     = color.NRGBA{70, 110, 70, 255}
	colorSight      = color.NRGBA{200, 200, 80, 255}
	colorStopChase  = color.NRGBA{110, 110, 60, 255}
	colorAttack     = color.NRGBA{220, 70, 60, 255}
	colorTarget     = color.NRGBA{80, 160, 230, 255}
	colorDead       = color.NRGBA{100, 100, 100, 255}
	colorPath       = color.NRGBA{150, 150, 150, 255}
)

var stateColors = map[model.BehaviorState]color.NRGBA{
	model.StatePatrolling: {90, 200, 90, 255},
	model.StateChasing:    {230, 150, 40, 255},
	model.StateSearching:  {190, 90, 220, 255},
	model.StateAttacking:  {230, 50, 50, 255},
}

// viewer draws the world top-down (X right, Z up).
type viewer struct {
	ctx    context.Context
	runner *runner.Runner
	bound  orb.Bound
	scale  float64
}

func newViewer(ctx context.Context, r *runner.Runner) *viewer {
	b := r.Spawner.Surface().Bound()
	sx := float64(screenWidth-2*margin) / (b.Max[0] - b.Min[0])
	sy := float64(screenHeight-2*margin) / (b.Max[1] - b.Min[1])
	return &viewer{
		ctx:    ctx,
		runner: r,
		bound:  b,
		scale:  math.Min(sx, sy),
	}
}

func (v *viewer) Update() error {
	if v.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	tl := v.project(v.bound.Min[0], v.bound.Max[1])
	vector.StrokeRect(screen, tl[0], tl[1],
		float32((v.bound.Max[0]-v.bound.Min[0])*v.scale),
		float32((v.bound.Max[1]-v.bound.Min[1])*v.scale),
		2, colorBorder, false)

	for _, ring := range v.runner.Spawner.Surface().Obstacles() {
		v.drawRing(screen, ring)
	}

	for _, a := range v.runner.Spawner.Agents() {
		v.drawAgent(screen, a.Gizmos())
	}

	target := v.runner.Target
	tp := v.projectVec(target.Entity.Position())
	tc := colorTarget
	if target.Health.IsDead() {
		tc = colorDead
	}
	vector.DrawFilledCircle(screen, tp[0], tp[1], 6, tc, true)

	ebitenutil.DebugPrintAt(screen, v.status(), 4, 2)
}

func (v *viewer) drawAgent(screen *ebiten.Image, g ai.Gizmos) {
	v.drawPatrol(screen, g.Patrol)

	p := v.projectVec(g.Position)
	r := float32(v.scale)
	vector.StrokeCircle(screen, p[0], p[1], float32(g.SightRange)*r, 1, colorSight, true)
	vector.StrokeCircle(screen, p[0], p[1], float32(g.StopChasingRange)*r, 1, colorStopChase, true)
	if g.AttackRange > 0 {
		width := float32(1)
		if g.WindowOpen {
			width = 3
		}
		vector.StrokeCircle(screen, p[0], p[1], float32(g.AttackRange)*r, width, colorAttack, true)
	}

	if !g.Waiting && g.State != model.StateAttacking {
		d := v.projectVec(g.Destination)
		vector.StrokeLine(screen, p[0], p[1], d[0], d[1], 1, colorPath, true)
	}

	// Yaw is measured from +X toward +Z; screen Y grows downward.
	hx := p[0] + float32(math.Cos(g.Yaw)*10)
	hy := p[1] - float32(math.Sin(g.Yaw)*10)
	vector.DrawFilledCircle(screen, p[0], p[1], 7, stateColors[g.State], true)
	vector.StrokeLine(screen, p[0], p[1], hx, hy, 2, color.White, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s", g.Name, g.State), int(p[0])+10, int(p[1])-8)
}

func (v *viewer) drawPatrol(screen *ebiten.Image, area model.PatrolArea) {
	switch area.Shape() {
	case model.PatrolSphere:
		c := v.projectVec(area.Center())
		vector.StrokeCircle(screen, c[0], c[1], float32(area.Radius()*v.scale), 1, colorPatrol, true)
	default:
		b := area.Bound()
		tl := v.project(b.Min[0], b.Max[1])
		vector.StrokeRect(screen, tl[0], tl[1],
			float32((b.Max[0]-b.Min[0])*v.scale),
			float32((b.Max[1]-b.Min[1])*v.scale),
			1, colorPatrol, true)
	}
}

func (v *viewer) drawRing(screen *ebiten.Image, ring orb.Ring) {
	for i := 1; i < len(ring); i++ {
		a := v.project(ring[i-1][0], ring[i-1][1])
		b := v.project(ring[i][0], ring[i][1])
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 2, colorObstacle, true)
	}
}

func (v *viewer) status() string {
	h := v.runner.Target.Health
	return fmt.Sprintf("tick %d  target %d/%d  TPS %.0f",
		v.runner.Ticks.Ticks(), h.Current(), h.Max(), ebiten.ActualTPS())
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (v *viewer) projectVec(p model.Vec3) [2]float32 {
	return v.project(p.X, p.Z)
}

// project maps XZ world coordinates to screen pixels.
func (v *viewer) project(x, z float64) [2]float32 {
	return [2]float32{
		float32(margin + (x-v.bound.Min[0])*v.scale),
		float32(margin + (v.bound.Max[1]-z)*v.scale),
	}
}
