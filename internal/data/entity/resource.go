package entity

import "github.com/google/uuid"

type ResourceType string

const (
	ResourceTypeHuman     ResourceType = "human"
	ResourceTypeRoom      ResourceType = "room"
	ResourceTypeEquipment ResourceType = "equipment"
)

type Resource struct {
	Base
	Name   string       `db:"name"`
	Type   ResourceType `db:"type"`
	Skills []string     `db:"skills"` // human capabilities, empty for rooms/equipment
	Hours  []WorkingHours
}

// WorkingHours is one weekday row of a resource's weekly template.
// Open == Close means the resource does not work that day.
type WorkingHours struct {
	ResourceID   uuid.UUID `db:"resource_id"`
	Weekday      int       `db:"weekday"` // 0 = Sunday ... 6 = Saturday
	OpenMinutes  int       `db:"open_minutes"`
	CloseMinutes int       `db:"close_minutes"`
}

// HoursFor returns the open/close minutes for a weekday, ok=false on a day off.
func (r *Resource) HoursFor(weekday int) (int, int, bool) {
	for _, h := range r.Hours {
		if h.Weekday == weekday && h.OpenMinutes < h.CloseMinutes {
			return h.OpenMinutes, h.CloseMinutes, true
		}
	}
	return 0, 0, false
}

// HasSkill reports whether a human resource can perform the given skill.
func (r *Resource) HasSkill(skill string) bool {
	for _, s := range r.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// HasSkills reports whether the resource covers every skill in the set.
func (r *Resource) HasSkills(skills []string) bool {
	for _, skill := range skills {
		if !r.HasSkill(skill) {
			return false
		}
	}
	return true
}
