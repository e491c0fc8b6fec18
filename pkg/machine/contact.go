package machine

import "github.com/ByteArena/box2d"

// impactThreshold is the minimum normal impulse worth reporting as an
// audible impact.
const impactThreshold = 1.0

// Impact is one collision strong enough to be audible, in pixel
// coordinates.
type Impact struct {
	X, Y     float64
	Strength float64
}

// contactListener collects impact events during Step. Box2D invokes the
// callbacks on the stepping goroutine, so no locking is needed.
type contactListener struct {
	impacts []Impact
}

func newContactListener() *contactListener {
	return &contactListener{}
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
	maxImpulse := 0.0
	for i := 0; i < impulse.Count; i++ {
		if impulse.NormalImpulses[i] > maxImpulse {
			maxImpulse = impulse.NormalImpulses[i]
		}
	}
	if maxImpulse < impactThreshold {
		return
	}

	pos := contact.GetFixtureA().GetBody().GetPosition()
	l.impacts = append(l.impacts, Impact{
		X:        pos.X * PixelsPerMeter,
		Y:        pos.Y * PixelsPerMeter,
		Strength: maxImpulse,
	})
}

func (l *contactListener) drain() []Impact {
	impacts := l.impacts
	l.impacts = nil
	return impacts
}
