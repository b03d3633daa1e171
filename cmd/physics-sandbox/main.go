// Command physics-sandbox visualizes a running physics world in the
// terminal: falling circles and boxes collide in a walled arena while a
// kinematic paddle is steered with the arrow keys. Collision-enter events
// drained from the world's queue trigger a sine blip, pitch scaled by
// impact speed.
package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/rigid2d/events"
	"github.com/lixenwraith/rigid2d/physics"
)

const (
	spawnIntervalMs = 1200
	maxDynamic      = 40
	paddleSpeed     = 2.0 // Cells per keypress
	gravityY        = 30.0
	blipMs          = 40
)

type Sandbox struct {
	screen        tcell.Screen
	width, height int

	world   *physics.World
	dynamic []*physics.Shape
	paddle  *physics.Transform

	lastSpawn time.Time
	lastTick  time.Time

	audioInit bool
}

func NewSandbox() (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	s := &Sandbox{
		screen:    screen,
		lastSpawn: time.Now(),
		lastTick:  time.Now(),
	}
	s.width, s.height = screen.Size()

	cfg := physics.DefaultConfig()
	cfg.Gravity = mgl64.Vec2{0, gravityY} // Screen coordinates, y grows down
	cfg.CellSize = 8
	s.world = physics.NewWorld(cfg)

	s.buildArena()

	if err := s.initAudio(); err != nil {
		// Non-fatal, the sandbox can run without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	return s, nil
}

func (s *Sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

// playBlip plays a short tone, pitch rising with impact speed
func (s *Sandbox) playBlip(impactSpeed float64) {
	if !s.audioInit {
		return
	}

	freq := 220 + math.Min(impactSpeed*20, 880)
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(blipMs*time.Millisecond), sine))
}

// buildArena registers immovable walls around the screen edges and the
// kinematic paddle. Wall shapes carry no body, which makes them infinite
// mass for resolution
func (s *Sandbox) buildArena() {
	w := float64(s.width)
	h := float64(s.height)

	wall := func(cx, cy, sx, sy float64) {
		t := physics.NewTransform(mgl64.Vec2{cx, cy})
		s.world.AddShape(physics.NewBoxShape(t, mgl64.Vec2{sx, sy}))
	}
	wall(w/2, h+0.5, w, 1)  // Floor, just below the last row
	wall(w/2, -0.5, w, 1)   // Ceiling
	wall(-0.5, h/2, 1, h)   // Left
	wall(w+0.5, h/2, 1, h)  // Right

	s.paddle = physics.NewTransform(mgl64.Vec2{w / 2, h - 3})
	paddleBody := physics.NewBody(1)
	paddleBody.SetKinematic(true)
	shape := physics.NewBoxShape(s.paddle, mgl64.Vec2{10, 1})
	shape.Body = paddleBody
	s.world.AddShape(shape)
}

// spawn drops a random dynamic shape from the top of the arena
func (s *Sandbox) spawn() {
	t := physics.NewTransform(mgl64.Vec2{2 + rand.Float64()*float64(s.width-4), 2})
	body := physics.NewBody(0.5 + rand.Float64()*2)
	body.Restitution = 0.3 + rand.Float64()*0.6
	body.Friction = 0.2
	body.SetVelocity(mgl64.Vec2{rand.Float64()*10 - 5, 0})

	var shape *physics.Shape
	if rand.Intn(2) == 0 {
		shape = physics.NewCircleShape(t, 0.5+rand.Float64())
	} else {
		side := 1 + rand.Float64()*2
		shape = physics.NewBoxShape(t, mgl64.Vec2{side, side})
	}
	shape.Body = body

	s.world.AddShape(shape)
	s.dynamic = append(s.dynamic, shape)

	// Retire the oldest shape once the arena is full
	if len(s.dynamic) > maxDynamic {
		s.world.RemoveShape(s.dynamic[0])
		s.dynamic = s.dynamic[1:]
	}
}

func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			s.paddle.Position[0] -= paddleSpeed
		case tcell.KeyRight:
			s.paddle.Position[0] += paddleSpeed
		case tcell.KeyUp:
			s.paddle.Position[1] -= paddleSpeed
		case tcell.KeyDown:
			s.paddle.Position[1] += paddleSpeed
		}
	case *tcell.EventResize:
		s.width, s.height = s.screen.Size()
	}
	return true
}

func (s *Sandbox) tick() {
	now := time.Now()
	delta := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	if now.Sub(s.lastSpawn).Milliseconds() > spawnIntervalMs {
		s.spawn()
		s.lastSpawn = now
	}

	s.world.Update(delta)

	for _, ev := range s.world.DispatchEvents() {
		if ev.Type == events.ContactEnter && ev.ImpactSpeed > 2 {
			s.playBlip(ev.ImpactSpeed)
		}
	}

	s.draw()
}

func (s *Sandbox) draw() {
	s.screen.Clear()

	for _, shape := range s.dynamic {
		pos := shape.Transform.Position
		x, y := int(pos.X()), int(pos.Y())
		if x < 0 || x >= s.width || y < 0 || y >= s.height {
			continue
		}

		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		if shape.Body != nil && shape.Body.Grounded {
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		}

		switch shape.Kind {
		case physics.ShapeCircle:
			r := '○'
			if shape.Radius > 1 {
				r = '●'
			}
			s.screen.SetContent(x, y, r, nil, style)
		case physics.ShapeBox:
			b := shape.Bounds()
			for by := int(b.Min.Y()); by <= int(b.Max.Y()); by++ {
				for bx := int(b.Min.X()); bx <= int(b.Max.X()); bx++ {
					if bx >= 0 && bx < s.width && by >= 0 && by < s.height {
						s.screen.SetContent(bx, by, '▒', nil, style)
					}
				}
			}
		}
	}

	// Paddle
	px, py := int(s.paddle.Position.X()), int(s.paddle.Position.Y())
	for dx := -5; dx <= 5; dx++ {
		if px+dx >= 0 && px+dx < s.width && py >= 0 && py < s.height {
			s.screen.SetContent(px+dx, py, '═', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		}
	}

	stats := s.world.Stats()
	status := fmt.Sprintf(" shapes:%d active:%d contacts:%d cells:%d steps:%d ",
		stats.Shapes, stats.Active, stats.Contacts, stats.GridCells, stats.Steps)
	for i, r := range status {
		if i < s.width {
			s.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
		}
	}

	s.screen.Show()
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- s.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sandbox) cleanup() {
	if s.audioInit {
		speaker.Close()
	}
	s.screen.Fini()
}

func main() {
	sandbox, err := NewSandbox()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sandbox.cleanup()

	sandbox.run()
}
