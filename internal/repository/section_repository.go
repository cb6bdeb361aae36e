package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cisclab/registrar-backend/internal/apperror"
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/store"
)

var sectionRequiredFields = []string{
	"section", "program", "curriculum", "year", "capacity", "type", "remarks",
}

// SectionRepository provides CRUD over the sections collection with
// field validation and id generation.
type SectionRepository struct {
	store *store.Store[model.Section]
}

// NewSectionRepository creates a SectionRepository over the given
// store.
func NewSectionRepository(st *store.Store[model.Section]) *SectionRepository {
	return &SectionRepository{store: st}
}

// GetAll retrieves all sections.
func (r *SectionRepository) GetAll() ([]model.Section, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// GetByID retrieves a section by id. Returns (nil, nil) when the id
// does not exist.
func (r *SectionRepository) GetByID(id int) (*model.Section, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			sec := doc.Items[i].Clone()
			return &sec, nil
		}
	}
	return nil, nil
}

// Create validates the payload, assigns the next free id, stamps
// timestamps, appends and saves atomically. Returns a copy of the
// persisted record.
func (r *SectionRepository) Create(payload map[string]any) (*model.Section, error) {
	if err := validateSectionPayload(payload, false); err != nil {
		return nil, err
	}

	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	sec := model.Section{}
	applySectionPayload(&sec, payload)
	sec.ID = doc.ClaimNextID(func(s model.Section) int { return s.ID })
	sec.CreatedAt = nowStamp()
	sec.UpdatedAt = sec.CreatedAt

	doc.Items = append(doc.Items, sec)
	if err := r.store.Save(doc); err != nil {
		return nil, err
	}

	out := sec.Clone()
	return &out, nil
}

// Update validates the partial payload, merges it over the existing
// record, re-stamps updated_at and saves. The id and created_at of the
// record never change.
func (r *SectionRepository) Update(id int, payload map[string]any) (*model.Section, error) {
	if err := validateSectionPayload(payload, true); err != nil {
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
		return nil, apperror.NewNotFound("Section", id)
	}

	existing := &doc.Items[idx]
	createdAt := existing.CreatedAt
	applySectionPayload(existing, payload)
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

// Delete removes the section with the given id. Returns false (not an
// error) when the id was not present.
func (r *SectionRepository) Delete(id int) (bool, error) {
	doc, err := r.store.Load()
	if err != nil {
		return false, err
	}

	kept := doc.Items[:0]
	for _, sec := range doc.Items {
		if sec.ID != id {
			kept = append(kept, sec)
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

// Search returns sections matching every supplied filter exactly. A
// filter key absent from a record is an automatic non-match.
func (r *SectionRepository) Search(filters map[string]any) ([]model.Section, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return all, nil
	}

	results := make([]model.Section, 0, len(all))
	for _, sec := range all {
		rec, err := recordToMap(sec)
		if err != nil {
			return nil, apperror.NewStorage("encode section for search", err)
		}
		if matchesFilters(rec, filters) {
			results = append(results, sec)
		}
	}
	return results, nil
}

// validateSectionPayload checks field presence (create only), value
// ranges and enum membership. The returned ValidationError names the
// offending field(s).
func validateSectionPayload(payload map[string]any, isUpdate bool) error {
	if !isUpdate {
		var missing []string
		for _, f := range sectionRequiredFields {
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

	if v, ok := payload["capacity"]; ok {
		capacity, valid := coerceInt(v)
		if !valid {
			return apperror.NewValidationf("capacity", "capacity must be a valid integer")
		}
		if capacity <= 0 {
			return apperror.NewValidationf("capacity", "capacity must be a positive integer")
		}
	}

	if v, ok := payload["type"]; ok {
		s, _ := v.(string)
		if !model.Contains(model.ValidSectionTypes, s) {
			return apperror.NewValidationf("type",
				"invalid type. Must be one of: %s", strings.Join(model.ValidSectionTypes, ", "))
		}
	}

	if v, ok := payload["year"]; ok {
		s, _ := v.(string)
		if !model.Contains(model.ValidYears, s) {
			return apperror.NewValidationf("year",
				"invalid year. Must be one of: %s", strings.Join(model.ValidYears, ", "))
		}
	}

	for _, field := range []string{"section", "program", "curriculum"} {
		if v, ok := payload[field]; ok && !nonEmptyString(v) {
			return apperror.NewValidationf(field, "%s must be a non-empty string", field)
		}
	}

	return nil
}

// applySectionPayload merges the supplied fields into sec. Values are
// assumed validated; unknown keys are ignored.
func applySectionPayload(sec *model.Section, payload map[string]any) {
	if v, ok := payload["section"]; ok {
		sec.Section, _ = v.(string)
	}
	if v, ok := payload["program"]; ok {
		sec.Program, _ = v.(string)
	}
	if v, ok := payload["curriculum"]; ok {
		sec.Curriculum, _ = v.(string)
	}
	if v, ok := payload["year"]; ok {
		sec.Year, _ = v.(string)
	}
	if v, ok := payload["capacity"]; ok {
		sec.Capacity, _ = coerceInt(v)
	}
	if v, ok := payload["type"]; ok {
		sec.Type, _ = v.(string)
	}
	if v, ok := payload["remarks"]; ok {
		sec.Remarks, _ = v.(string)
	}
}
