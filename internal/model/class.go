package model

// ValidClassTypes are the accepted values for Class.Type.
var ValidClassTypes = []string{"Regular", "Special", "Makeup", "Online"}

// Class is a scheduled course offering tied to one Section, with one
// or more weekly time slots and a room.
//
// SectionName is a denormalized copy of Section.Section taken at write
// time. It is not cascaded when the section is later renamed; readers
// accept the staleness window.
type Class struct {
	ID          int        `json:"id"`
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Units       int        `json:"units"`
	SectionID   int        `json:"section_id"`
	SectionName string     `json:"section_name"`
	Schedules   []Schedule `json:"schedules"`
	Room        string     `json:"room"`
	Instructor  string     `json:"instructor"`
	Type        string     `json:"type"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

// Clone returns an independent copy of the class, including its
// schedule slice.
func (c Class) Clone() Class {
	out := c
	out.Schedules = make([]Schedule, len(c.Schedules))
	copy(out.Schedules, c.Schedules)
	return out
}
