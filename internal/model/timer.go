package model

// TimerEpsilon absorbs the rounding error of summing float dt steps.
// 150 steps of 1/30 s leave about 1e-14 s on a 5 s countdown.
const TimerEpsilon = 1e-9

// TimerElapsed reports whether a countdown with left seconds remaining
// has run out.
func TimerElapsed(left float64) bool {
	return left <= TimerEpsilon
}

// TimerReached reports whether elapsed seconds have reached duration.
func TimerReached(elapsed, duration float64) bool {
	return elapsed >= duration-TimerEpsilon
}
