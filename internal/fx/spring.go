package fx

import "github.com/charmbracelet/harmonica"

// stepSpring is a damped spring whose coefficients follow the frame step, so
// the motion takes the same wall time at any tick rate.
type stepSpring struct {
	freq, damping float64
	dt            float64
	s             harmonica.Spring
}

func newStepSpring(freq, damping float64) stepSpring {
	return stepSpring{freq: freq, damping: damping}
}

func (s *stepSpring) update(pos, vel, target, dt float64) (float64, float64) {
	if dt <= 0 {
		return pos, vel
	}
	if dt != s.dt {
		s.s = harmonica.NewSpring(dt, s.freq, s.damping)
		s.dt = dt
	}
	return s.s.Update(pos, vel, target)
}
