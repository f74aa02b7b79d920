package trick

// VisualSink receives animation cues. It is observational: nothing it does
// feeds back into the machine.
type VisualSink interface {
	PlayOllie()
	PlayFlip(duration float64, spins int, index int)
	BeginGrab(index int)
	EndGrab(index int)
	Reset()
}

// ScoreSink receives point deltas as they are awarded.
type ScoreSink interface {
	AddPoints(points int, label string)
}

type nopVisual struct{}

func (nopVisual) PlayOllie() {}
func (nopVisual) PlayFlip(float64, int, int) {}
func (nopVisual) BeginGrab(int) {}
func (nopVisual) EndGrab(int) {}
func (nopVisual) Reset() {}

type nopScore struct{}

func (nopScore) AddPoints(int, string) {}

// AirResult is published when an air session ends.
type AirResult struct {
	Landed bool
	Reason string
	Points int
	Tricks []string
}

// observers is an ordered subscriber list. Unsubscribing from inside a
// callback takes effect from the next emit.
type observers[T any] struct {
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func (o *observers[T]) subscribe(fn func(T)) func() {
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *observers[T]) emit(v T) {
	snapshot := o.subs
	for _, s := range snapshot {
		s.fn(v)
	}
}
