package game

// checkRamps launches the player when the board first touches a ramp. A ramp
// hit while airborne stretches the air session instead.
func (w *World) checkRamps() {
	hit := -1
	if w.Player.IsOnBoard() {
		hit = FindTouching(w.Player.Body.Position, PlayerRadius, w.Props, PropRamp)
	}
	entered := hit >= 0 && hit != w.onRamp
	w.onRamp = hit
	if !entered {
		return
	}

	if w.Tricks.Airborne() {
		w.Tricks.ExtendAirtime(RampExtend)
		w.log.Debug("ramp extend", "ramp", hit)
		return
	}
	w.Tricks.TriggerAirtime(RampAirtime)
	w.log.Debug("ramp launch", "ramp", hit)
}

// checkRails grinds while the board is grounded on a rail.
func (w *World) checkRails() {
	on := w.Player.IsOnBoard() && !w.Tricks.Airborne() &&
		FindTouching(w.Player.Body.Position, PlayerRadius, w.Props, PropRail) >= 0
	if on {
		w.Tricks.StartGrind()
	} else {
		w.Tricks.StopGrind()
	}
}

// checkYank bails an airborne player when the dog pulls too hard.
func (w *World) checkYank(tension float64) bool {
	if !w.Tricks.Airborne() || tension <= YankBailTension {
		return false
	}
	w.Tricks.OnBail("leash yank")
	return true
}
