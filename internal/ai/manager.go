package ai

import (
	"fmt"
	"log/slog"
	"slices"
)

// TickManager ticks all registered AI controllers in registration order.
// It is owned by the simulation goroutine and takes no locks.
type TickManager struct {
	controllers map[uint32]Controller // objectID → controller
	order       []uint32
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{
		controllers: make(map[uint32]Controller),
	}
}

// Register registers and starts a controller. A controller already
// registered under objectID is stopped and replaced.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if old, ok := m.controllers[objectID]; ok {
		old.Stop()
	} else {
		m.order = append(m.order, objectID)
	}
	m.controllers[objectID] = controller
	controller.Start()

	slog.Debug("AI controller registered",
		"objectID", objectID,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes the controller of objectID.
func (m *TickManager) Unregister(objectID uint32) {
	controller, ok := m.controllers[objectID]
	if !ok {
		return
	}
	delete(m.controllers, objectID)
	m.order = slices.DeleteFunc(m.order, func(id uint32) bool { return id == objectID })

	controller.Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// Tick ticks every controller once. Controllers may unregister themselves
// or others during the pass.
func (m *TickManager) Tick(dt float64) {
	ids := slices.Clone(m.order)

	count := 0
	for _, id := range ids {
		controller, ok := m.controllers[id]
		if !ok {
			continue
		}
		controller.Tick(dt)
		count++
	}

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", count)
	}
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return len(m.controllers)
}

// GetController returns controller for objectID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	controller, ok := m.controllers[objectID]
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return controller, nil
}

// Clear stops and removes all controllers.
func (m *TickManager) Clear() {
	for _, id := range m.order {
		m.controllers[id].Stop()
	}
	clear(m.controllers)
	m.order = m.order[:0]
}
