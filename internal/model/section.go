package model

// Valid values for Section enum fields.
var (
	ValidSectionTypes = []string{"Lecture", "Laboratory", "Hybrid"}
	ValidYears        = []string{"1st", "2nd", "3rd", "4th", "5th"}
)

// Section is an administrative grouping of students that classes are
// scheduled against. IDs are assigned by the repository and immutable.
type Section struct {
	ID         int    `json:"id"`
	Section    string `json:"section"`
	Program    string `json:"program"`
	Curriculum string `json:"curriculum"`
	Year       string `json:"year"`
	Capacity   int    `json:"capacity"`
	Type       string `json:"type"`
	Remarks    string `json:"remarks"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Clone returns an independent copy of the section.
func (s Section) Clone() Section { return s }
