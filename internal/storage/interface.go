package storage

import "habitkit/internal/models"

// Provider is the persistence gateway for habit aggregates. A habit and its
// completion history live and die together: UpdateHabit persists the whole
// aggregate, PurgeHabit removes both atomically.
//
// Providers are not safe for concurrent use by multiple goroutines or
// processes; callers must serialize writes per habit id themselves. The CLI
// and TUI drive a provider from a single goroutine.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(ownerID string, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error
	PurgeHabit(id string) error

	// Utils
	GetConfigPath() string
}
