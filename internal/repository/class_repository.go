package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cisclab/registrar-backend/internal/apperror"
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/store"
)

var classRequiredFields = []string{
	"code", "title", "units", "section_id", "schedules", "room", "instructor", "type",
}

var scheduleRequiredFields = []string{"day", "start_time", "end_time"}

// unknownSectionName is denormalized onto a class when its section
// cannot be resolved at write time.
const unknownSectionName = "Unknown"

// ClassRepository provides CRUD over the classes collection. It leans
// on the section repository for referential validation and for the
// denormalized section name, and detects room/schedule conflicts
// against every other class.
type ClassRepository struct {
	store    *store.Store[model.Class]
	sections *SectionRepository
}

// NewClassRepository creates a ClassRepository over the given store
// and section repository.
func NewClassRepository(st *store.Store[model.Class], sections *SectionRepository) *ClassRepository {
	return &ClassRepository{store: st, sections: sections}
}

// GetAll retrieves all classes.
func (r *ClassRepository) GetAll() ([]model.Class, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// GetByID retrieves a class by id. Returns (nil, nil) when the id does
// not exist.
func (r *ClassRepository) GetByID(id int) (*model.Class, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			cls := doc.Items[i].Clone()
			return &cls, nil
		}
	}
	return nil, nil
}

// GetBySection retrieves all classes tagged to the given section.
func (r *ClassRepository) GetBySection(sectionID int) ([]model.Class, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Class, 0, len(all))
	for _, cls := range all {
		if cls.SectionID == sectionID {
			matched = append(matched, cls)
		}
	}
	return matched, nil
}

// Conflicts scans every existing class for room/day/time collisions
// with the candidate schedules. Classes in another room are skipped;
// back-to-back slots sharing an endpoint do not collide. excludeID
// skips one class (the one being updated); pass 0 for creates. The
// returned list holds one message per colliding pair — empty means no
// conflict. The check is advisory: callers decide whether a non-empty
// result rejects the write.
func (r *ClassRepository) Conflicts(schedules []model.Schedule, room string, excludeID int) ([]string, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	var conflicts []string
	for _, existing := range all {
		if excludeID != 0 && existing.ID == excludeID {
			continue
		}
		if existing.Room != room {
			continue
		}

		for _, candidate := range schedules {
			for _, slot := range existing.Schedules {
				if candidate.Day != slot.Day {
					continue
				}

				newStart, err := model.ParseClockTime(candidate.StartTime)
				if err != nil {
					return nil, apperror.NewValidationf("schedules", "%v", err)
				}
				newEnd, err := model.ParseClockTime(candidate.EndTime)
				if err != nil {
					return nil, apperror.NewValidationf("schedules", "%v", err)
				}
				existStart, err := model.ParseClockTime(slot.StartTime)
				if err != nil {
					return nil, apperror.NewValidationf("schedules", "%v", err)
				}
				existEnd, err := model.ParseClockTime(slot.EndTime)
				if err != nil {
					return nil, apperror.NewValidationf("schedules", "%v", err)
				}

				if model.Overlaps(newStart, newEnd, existStart, existEnd) {
					conflicts = append(conflicts, fmt.Sprintf(
						"Conflict with %s (%s) in %s on %s %s - %s",
						existing.Code, existing.Title, room, candidate.Day,
						slot.StartTime, slot.EndTime,
					))
				}
			}
		}
	}
	return conflicts, nil
}

// Create validates the payload, optionally rejects on schedule
// conflicts, denormalizes the section name, assigns the next id and
// saves atomically. Returns a copy of the persisted record.
func (r *ClassRepository) Create(payload map[string]any, checkConflicts bool) (*model.Class, error) {
	if err := r.validateClassPayload(payload, false); err != nil {
		return nil, err
	}

	schedules, err := schedulesFromPayload(payload["schedules"])
	if err != nil {
		return nil, err
	}
	room, _ := payload["room"].(string)

	if checkConflicts {
		conflicts, err := r.Conflicts(schedules, room, 0)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, apperror.NewScheduleConflict(conflicts)
		}
	}

	// Resolve the denormalized section name. The section was present
	// during validation; if it vanished since, fall back to "Unknown"
	// rather than failing the write (benign race under the
	// single-writer assumption).
	sectionID, _ := coerceInt(payload["section_id"])
	sectionName := unknownSectionName
	if section, err := r.sections.GetByID(sectionID); err == nil && section != nil {
		sectionName = section.Section
	}

	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	cls := model.Class{}
	if err := r.applyClassPayload(&cls, payload); err != nil {
		return nil, err
	}
	cls.ID = doc.ClaimNextID(func(c model.Class) int { return c.ID })
	cls.SectionName = sectionName
	cls.CreatedAt = nowStamp()
	cls.UpdatedAt = cls.CreatedAt

	doc.Items = append(doc.Items, cls)
	if err := r.store.Save(doc); err != nil {
		return nil, err
	}

	out := cls.Clone()
	return &out, nil
}

// Update validates the partial payload, conflict-checks the effective
// schedules and room (payload value if present, else the stored one)
// excluding the class itself, re-resolves the section name when
// section_id changes, then merges and saves.
func (r *ClassRepository) Update(id int, payload map[string]any, checkConflicts bool) (*model.Class, error) {
	if err := r.validateClassPayload(payload, true); err != nil {
		return nil, err
	}

	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.NewNotFound("Class", id)
	}
	existing := &doc.Items[idx]

	if checkConflicts {
		schedulesToCheck := existing.Schedules
		if raw, ok := payload["schedules"]; ok {
			schedulesToCheck, err = schedulesFromPayload(raw)
			if err != nil {
				return nil, err
			}
		}
		roomToCheck := existing.Room
		if room, ok := payload["room"].(string); ok {
			roomToCheck = room
		}

		conflicts, err := r.Conflicts(schedulesToCheck, roomToCheck, id)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, apperror.NewScheduleConflict(conflicts)
		}
	}

	createdAt := existing.CreatedAt
	if err := r.applyClassPayload(existing, payload); err != nil {
		return nil, err
	}
	if _, ok := payload["section_id"]; ok {
		existing.SectionName = unknownSectionName
		if section, err := r.sections.GetByID(existing.SectionID); err == nil && section != nil {
			existing.SectionName = section.Section
		}
	}
	existing.UpdatedAt = nowStamp()
	existing.ID = id
	existing.CreatedAt = createdAt
	if existing.CreatedAt == "" {
		existing.CreatedAt = existing.UpdatedAt
	}

	updated := existing.Clone()
	if err := r.store.Save(doc); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the class with the given id. Returns false (not an
// error) when the id was not present.
func (r *ClassRepository) Delete(id int) (bool, error) {
	doc, err := r.store.Load()
	if err != nil {
		return false, err
	}

	kept := doc.Items[:0]
	for _, cls := range doc.Items {
		if cls.ID != id {
			kept = append(kept, cls)
		}
	}
	if len(kept) == len(doc.Items) {
		return false, nil
	}
	doc.Items = kept

	if err := r.store.Save(doc); err != nil {
		return false, err
	}
	return true, nil
}

// Search returns classes matching every supplied filter exactly. A
// filter key absent from a record is an automatic non-match.
func (r *ClassRepository) Search(filters map[string]any) ([]model.Class, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return all, nil
	}

	results := make([]model.Class, 0, len(all))
	for _, cls := range all {
		rec, err := recordToMap(cls)
		if err != nil {
			return nil, apperror.NewStorage("encode class for search", err)
		}
		if matchesFilters(rec, filters) {
			results = append(results, cls)
		}
	}
	return results, nil
}

// validateClassPayload checks field presence (create only), value
// ranges, enum membership, section existence and every schedule entry.
func (r *ClassRepository) validateClassPayload(payload map[string]any, isUpdate bool) error {
	if !isUpdate {
		var missing []string
		for _, f := range classRequiredFields {
			if _, ok := payload[f]; !ok {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return apperror.NewValidation(
				fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
				missing...,
			)
		}
	}

	if v, ok := payload["units"]; ok {
		units, valid := coerceInt(v)
		if !valid {
			return apperror.NewValidationf("units", "units must be a valid integer")
		}
		if units < 1 || units > 6 {
			return apperror.NewValidationf("units", "units must be between 1 and 6")
		}
	}

	if v, ok := payload["section_id"]; ok {
		sectionID, valid := coerceInt(v)
		if !valid {
			return apperror.NewValidationf("section_id", "section_id must be a valid integer")
		}
		section, err := r.sections.GetByID(sectionID)
		if err != nil {
			return apperror.NewValidationf("section_id", "error validating section_id: %v", err)
		}
		if section == nil {
			return apperror.NewValidationf("section_id", "section with ID %d does not exist", sectionID)
		}
	}

	if v, ok := payload["schedules"]; ok {
		if err := validateSchedulesValue(v); err != nil {
			return err
		}
	}

	if v, ok := payload["type"]; ok {
		s, _ := v.(string)
		if !model.Contains(model.ValidClassTypes, s) {
			return apperror.NewValidationf("type",
				"invalid type. Must be one of: %s", strings.Join(model.ValidClassTypes, ", "))
		}
	}

	for _, field := range []string{"code", "title", "instructor", "room"} {
		if v, ok := payload[field]; ok && !nonEmptyString(v) {
			return apperror.NewValidationf(field, "%s must be a non-empty string", field)
		}
	}

	return nil
}

// validateSchedulesValue checks the schedules payload: a non-empty
// list whose entries each carry a valid day and a strictly ordered
// start/end time pair. Errors name the failing schedule index.
func validateSchedulesValue(v any) error {
	entries, ok := v.([]any)
	if !ok {
		// A typed slice (internal callers) is fine too.
		typed, typedOK := v.([]model.Schedule)
		if !typedOK {
			return apperror.NewValidationf("schedules", "schedules must be a list")
		}
		entries = make([]any, len(typed))
		for i, s := range typed {
			entries[i] = map[string]any{
				"day": s.Day, "start_time": s.StartTime, "end_time": s.EndTime,
			}
		}
	}
	if len(entries) == 0 {
		return apperror.NewValidationf("schedules", "class must have at least one schedule")
	}

	for i, entry := range entries {
		if err := validateScheduleEntry(entry); err != nil {
			return apperror.NewValidationf("schedules", "schedule %d invalid: %v", i+1, err)
		}
	}
	return nil
}

func validateScheduleEntry(entry any) error {
	obj, ok := entry.(map[string]any)
	if !ok {
		return fmt.Errorf("schedule entry must be an object")
	}

	var missing []string
	for _, f := range scheduleRequiredFields {
		if _, ok := obj[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("schedule missing fields: %s", strings.Join(missing, ", "))
	}

	day, _ := obj["day"].(string)
	if !model.IsValidDay(day) {
		return fmt.Errorf("invalid day %q. Must be one of: %s", day, strings.Join(model.ValidDays, ", "))
	}

	startRaw, _ := obj["start_time"].(string)
	endRaw, _ := obj["end_time"].(string)
	start, err := model.ParseClockTime(startRaw)
	if err != nil {
		return fmt.Errorf("invalid time format: %v", err)
	}
	end, err := model.ParseClockTime(endRaw)
	if err != nil {
		return fmt.Errorf("invalid time format: %v", err)
	}
	if end <= start {
		return fmt.Errorf("end time (%s) must be after start time (%s)", endRaw, startRaw)
	}
	return nil
}

// schedulesFromPayload converts the validated schedules payload value
// into typed schedules.
func schedulesFromPayload(v any) ([]model.Schedule, error) {
	if typed, ok := v.([]model.Schedule); ok {
		out := make([]model.Schedule, len(typed))
		copy(out, typed)
		return out, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, apperror.NewValidationf("schedules", "schedules must be a list")
	}
	var schedules []model.Schedule
	if err := json.Unmarshal(raw, &schedules); err != nil {
		return nil, apperror.NewValidationf("schedules", "schedules must be a list")
	}
	return schedules, nil
}

// applyClassPayload merges the supplied fields into cls. Values are
// assumed validated; unknown keys are ignored.
func (r *ClassRepository) applyClassPayload(cls *model.Class, payload map[string]any) error {
	if v, ok := payload["code"]; ok {
		cls.Code, _ = v.(string)
	}
	if v, ok := payload["title"]; ok {
		cls.Title, _ = v.(string)
	}
	if v, ok := payload["units"]; ok {
		cls.Units, _ = coerceInt(v)
	}
	if v, ok := payload["section_id"]; ok {
		cls.SectionID, _ = coerceInt(v)
	}
	if v, ok := payload["schedules"]; ok {
		schedules, err := schedulesFromPayload(v)
		if err != nil {
			return err
		}
		cls.Schedules = schedules
	}
	if v, ok := payload["room"]; ok {
		cls.Room, _ = v.(string)
	}
	if v, ok := payload["instructor"]; ok {
		cls.Instructor, _ = v.(string)
	}
	if v, ok := payload["type"]; ok {
		cls.Type, _ = v.(string)
	}
	return nil
}
