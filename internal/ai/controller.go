package ai

// Controller drives one AI-owned character. Controllers are ticked by the
// TickManager on the simulation goroutine.
type Controller interface {
	// Start activates the controller after registration.
	Start()

	// Stop deactivates the controller. A stopped controller ignores Tick.
	Stop()

	SetIntention(intention Intention)

	CurrentIntention() Intention

	// Tick advances the controller by dt seconds.
	Tick(dt float64)
}
