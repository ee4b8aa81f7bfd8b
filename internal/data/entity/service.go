package entity

// Service is a bookable catalog item. Price is in minor currency units.
type Service struct {
	Base
	Name            string         `db:"name"`
	Skill           string         `db:"skill"` // capability a human resource must have
	DurationMinutes int            `db:"duration_minutes"`
	Price           int64          `db:"price"`
	ResourceTypes   []ResourceType `db:"resource_types"`
	Active          bool           `db:"active"`
}
