package fx

const (
	hopDuration   = 0.35
	hopHeight     = 0.6
	landingWobble = 0.35 // radians
	wobbleFreq    = 9.0
	wobbleDamping = 0.35
	grabScale     = 0.85
)

// Board animates the skateboard sprite. It implements trick.VisualSink.
type Board struct {
	pose  Transform
	tween Tween

	grabbing bool

	wobble, wobbleVel float64
	spring            stepSpring
}

func NewBoard() *Board {
	return &Board{
		pose:   Identity(),
		spring: newStepSpring(wobbleFreq, wobbleDamping),
	}
}

func (b *Board) PlayOllie() {
	b.pose = b.tween.Start(b.pose, hopDuration, Hop(hopHeight))
}

func (b *Board) PlayFlip(duration float64, spins int, _ int) {
	b.pose = b.tween.Start(b.pose, duration, Spin(spins))
}

func (b *Board) BeginGrab(int) {
	b.grabbing = true
}

func (b *Board) EndGrab(int) {
	b.grabbing = false
}

// Reset snaps the board back to its resting pose and kicks a small landing
// wobble that settles on its own.
func (b *Board) Reset() {
	b.pose = b.tween.Cancel(b.pose)
	b.grabbing = false
	b.wobble = landingWobble
	b.wobbleVel = 0
}

// Update advances animations by dt seconds of frame time.
func (b *Board) Update(dt float64) {
	b.pose = b.tween.Advance(b.pose, dt)
	b.wobble, b.wobbleVel = b.spring.update(b.wobble, b.wobbleVel, 0, dt)
}

// Pose returns the transform to draw this frame. A held grab shrinks Scale.
func (b *Board) Pose() Transform {
	p := b.pose
	p.Rotation += b.wobble
	if b.grabbing {
		p.Scale *= grabScale
	}
	return p
}
