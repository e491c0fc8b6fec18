// Package machine builds and steps the Rube Goldberg scene: a Box2D
// world with a ball run, a ramp and a row of dominoes. The package owns
// body placement and impact reporting; the simulation itself is Box2D's.
package machine

import (
	"math"

	"github.com/ByteArena/box2d"
)

// PixelsPerMeter converts between Box2D's meter-based world and the
// renderer's pixel coordinates.
const PixelsPerMeter = 32.0

const (
	velocityIterations = 8
	positionIterations = 3
)

// Kind classifies the parts of the machine.
type Kind int

const (
	KindGround Kind = iota
	KindRamp
	KindBall
	KindDomino
)

// Part is one rigid body of the machine together with the sprite that
// renders it.
type Part struct {
	body     *box2d.B2Body
	kind     Kind
	spriteID int
}

// Kind returns the part's classification.
func (p *Part) Kind() Kind {
	return p.kind
}

// Pose is a part's render state in pixel coordinates, y up from the
// bottom of the screen.
type Pose struct {
	SpriteID int
	X, Y     float64
	Angle    float64 // radians, counterclockwise
}

// SpriteIDs names the sprites the machine renders with.
type SpriteIDs struct {
	Ball   int
	Domino int
	Ramp   int
}

// World is the machine's physics world plus the bookkeeping to render
// it and to report impacts. Single-threaded: Step and the accessors are
// called from the main loop only.
type World struct {
	world    box2d.B2World
	parts    []*Part
	listener *contactListener
	sprites  SpriteIDs

	widthMeters  float64
	heightMeters float64
}

// New builds the machine scene for a screen of the given pixel size.
func New(screenWidth, screenHeight int, sprites SpriteIDs) *World {
	m := &World{
		world:        box2d.MakeB2World(box2d.MakeB2Vec2(0, -10)),
		sprites:      sprites,
		widthMeters:  float64(screenWidth) / PixelsPerMeter,
		heightMeters: float64(screenHeight) / PixelsPerMeter,
	}

	m.listener = newContactListener()
	m.world.SetContactListener(m.listener)

	m.buildScene()
	return m
}

func (m *World) buildScene() {
	// Static floor across the whole scene.
	m.addBox(KindGround, -1, m.widthMeters/2, 0.25, m.widthMeters/2, 0.25, 0, false)

	// A ramp on the upper left feeding the ball toward the dominoes.
	m.addBox(KindRamp, m.sprites.Ramp, m.widthMeters*0.22, m.heightMeters*0.65, 4.0, 0.2, -0.3, false)

	// The ball starts at the top of the ramp.
	m.addBall(m.sprites.Ball, m.widthMeters*0.1, m.heightMeters*0.65+3.0, 0.4)

	// A row of dominoes on the floor to the right.
	const dominoCount = 8
	for i := 0; i < dominoCount; i++ {
		x := m.widthMeters*0.45 + float64(i)*0.9
		m.addBox(KindDomino, m.sprites.Domino, x, 0.5+1.2, 0.15, 1.2, 0, true)
	}
}

func (m *World) addBox(kind Kind, spriteID int, x, y, hx, hy, angle float64, dynamic bool) *Part {
	bd := box2d.MakeB2BodyDef()
	if dynamic {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	} else {
		bd.Type = box2d.B2BodyType.B2_staticBody
	}
	bd.Position.Set(x, y)
	bd.Angle = angle

	body := m.world.CreateBody(&bd)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(hx, hy)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 1.0
	fd.Friction = 0.4
	body.CreateFixtureFromDef(&fd)

	part := &Part{body: body, kind: kind, spriteID: spriteID}
	body.SetUserData(part)
	m.parts = append(m.parts, part)
	return part
}

func (m *World) addBall(spriteID int, x, y, radius float64) *Part {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position.Set(x, y)

	body := m.world.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = radius

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 2.0
	fd.Friction = 0.2
	fd.Restitution = 0.3
	body.CreateFixtureFromDef(&fd)

	part := &Part{body: body, kind: KindBall, spriteID: spriteID}
	body.SetUserData(part)
	m.parts = append(m.parts, part)
	return part
}

// Step advances the simulation by dt milliseconds.
func (m *World) Step(dtMillis int) {
	if dtMillis <= 0 {
		return
	}
	m.world.Step(float64(dtMillis)/1000, velocityIterations, positionIterations)
}

// Poses returns the render state of every drawable part in pixel
// coordinates.
func (m *World) Poses() []Pose {
	poses := make([]Pose, 0, len(m.parts))
	for _, part := range m.parts {
		if part.spriteID < 0 {
			continue
		}
		pos := part.body.GetPosition()
		poses = append(poses, Pose{
			SpriteID: part.spriteID,
			X:        pos.X * PixelsPerMeter,
			Y:        pos.Y * PixelsPerMeter,
			Angle:    part.body.GetAngle(),
		})
	}
	return poses
}

// Impacts drains and returns the collision impacts recorded since the
// last call, in pixel coordinates.
func (m *World) Impacts() []Impact {
	return m.listener.drain()
}

// Finished reports whether the machine has run to completion: the last
// domino has fallen over.
func (m *World) Finished() bool {
	var last *Part
	for _, part := range m.parts {
		if part.kind == KindDomino {
			last = part
		}
	}
	if last == nil {
		return false
	}
	return math.Abs(last.body.GetAngle()) > 1.0
}
