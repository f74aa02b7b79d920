package fx

import (
	"fmt"
	"math"
)

const (
	bannerSeconds = 1.5
	scoreFreq     = 6.0
	scoreDamping  = 1.0
)

// HUD tracks the score display. It implements trick.ScoreSink.
type HUD struct {
	score      int
	shown      float64
	shownVel   float64
	spring     stepSpring
	banner     string
	bannerLeft float64

	lands int
	bails int
}

func NewHUD() *HUD {
	return &HUD{
		spring: newStepSpring(scoreFreq, scoreDamping),
	}
}

func (h *HUD) AddPoints(points int, label string) {
	h.score += points
	h.show(fmt.Sprintf("%s +%d", label, points))
}

// Landed and Bailed count air outcomes for the status line.
func (h *HUD) Landed() { h.lands++ }

func (h *HUD) Bailed(reason string) {
	h.bails++
	h.show("BAIL: " + reason)
}

func (h *HUD) show(msg string) {
	h.banner = msg
	h.bannerLeft = bannerSeconds
}

func (h *HUD) Update(dt float64) {
	h.shown, h.shownVel = h.spring.update(h.shown, h.shownVel, float64(h.score), dt)
	if h.bannerLeft > 0 {
		h.bannerLeft -= dt
		if h.bannerLeft <= 0 {
			h.banner = ""
		}
	}
}

func (h *HUD) Score() int { return h.score }

// DisplayedScore is the eased score shown on screen.
func (h *HUD) DisplayedScore() int { return int(math.Round(h.shown)) }

func (h *HUD) Banner() string { return h.banner }
func (h *HUD) Lands() int { return h.lands }
func (h *HUD) Bails() int { return h.bails }
