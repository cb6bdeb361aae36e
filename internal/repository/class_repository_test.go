package repository

import (
	"path/filepath"
	"testing"

	"github.com/cisclab/registrar-backend/internal/apperror"
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassRepo(t *testing.T) (*ClassRepository, *SectionRepository) {
	t.Helper()
	dir := t.TempDir()

	sectionStore := store.New[model.Section](filepath.Join(dir, "sections.json"), "sections")
	require.NoError(t, sectionStore.EnsureExists())
	sections := NewSectionRepository(sectionStore)

	classStore := store.New[model.Class](filepath.Join(dir, "classes.json"), "classes")
	require.NoError(t, classStore.EnsureExists())
	return NewClassRepository(classStore, sections), sections
}

func seedSection(t *testing.T, sections *SectionRepository) *model.Section {
	t.Helper()
	sec, err := sections.Create(validSectionPayload())
	require.NoError(t, err)
	return sec
}

func schedule(day, start, end string) map[string]any {
	return map[string]any{"day": day, "start_time": start, "end_time": end}
}

func validClassPayload(sectionID int) map[string]any {
	return map[string]any{
		"code":       "IT57",
		"title":      "Databases",
		"units":      3,
		"section_id": sectionID,
		"schedules":  []any{schedule("Monday", "07:00 AM", "08:30 AM")},
		"room":       "CISC Room 3",
		"instructor": "Dela Cruz",
		"type":       "Regular",
	}
}

func TestClassCreateDenormalizesSectionName(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	created, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "3A", created.SectionName)
	assert.Equal(t, sec.ID, created.SectionID)
	require.Len(t, created.Schedules, 1)
	assert.Equal(t, "Monday", created.Schedules[0].Day)
}

func TestClassCreateRejectsOverlapInSameRoom(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	second := validClassPayload(sec.ID)
	second["code"] = "IT58"
	second["title"] = "Web Development"
	second["schedules"] = []any{schedule("Monday", "08:00 AM", "09:00 AM")}

	_, err = repo.Create(second, true)
	var conflictErr *apperror.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Contains(t, conflictErr.Conflicts[0], "IT57")
	assert.Contains(t, conflictErr.Conflicts[0], "CISC Room 3")
}

func TestClassCreateBackToBackDoesNotConflict(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	first := validClassPayload(sec.ID)
	first["schedules"] = []any{schedule("Monday", "09:00 AM", "10:00 AM")}
	_, err := repo.Create(first, true)
	require.NoError(t, err)

	second := validClassPayload(sec.ID)
	second["code"] = "IT58"
	second["schedules"] = []any{schedule("Monday", "10:00 AM", "11:00 AM")}
	_, err = repo.Create(second, true)
	require.NoError(t, err)
}

func TestClassCreateDifferentRoomOrDayNeverConflicts(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	otherRoom := validClassPayload(sec.ID)
	otherRoom["code"] = "IT58"
	otherRoom["room"] = "CISC Lab 1"
	_, err = repo.Create(otherRoom, true)
	require.NoError(t, err)

	otherDay := validClassPayload(sec.ID)
	otherDay["code"] = "IT59"
	otherDay["schedules"] = []any{schedule("Tuesday", "07:00 AM", "08:30 AM")}
	_, err = repo.Create(otherDay, true)
	require.NoError(t, err)
}

func TestClassCreateConflictBypass(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	second := validClassPayload(sec.ID)
	second["code"] = "IT58"
	second["schedules"] = []any{schedule("Monday", "08:00 AM", "09:00 AM")}

	created, err := repo.Create(second, false)
	require.NoError(t, err)
	assert.Equal(t, "IT58", created.Code)
}

func TestClassCreateValidation(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	cases := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"units too low", func(p map[string]any) { p["units"] = 0 }, "units"},
		{"units too high", func(p map[string]any) { p["units"] = 7 }, "units"},
		{"bad type", func(p map[string]any) { p["type"] = "Elective" }, "type"},
		{"empty code", func(p map[string]any) { p["code"] = " " }, "code"},
		{"empty room", func(p map[string]any) { p["room"] = "" }, "room"},
		{"empty schedules", func(p map[string]any) { p["schedules"] = []any{} }, "schedules"},
		{"schedules not a list", func(p map[string]any) { p["schedules"] = "Monday" }, "schedules"},
		{"unknown section", func(p map[string]any) { p["section_id"] = 999 }, "section_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validClassPayload(sec.ID)
			tc.mutate(payload)

			_, err := repo.Create(payload, true)
			var validationErr *apperror.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tc.field)
		})
	}
}

func TestClassCreateNamesFailingScheduleIndex(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	payload := validClassPayload(sec.ID)
	payload["schedules"] = []any{
		schedule("Monday", "07:00 AM", "08:30 AM"),
		schedule("Tuesday", "10:00 AM", "09:00 AM"), // end before start
	}

	_, err := repo.Create(payload, true)
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "schedule 2")
}

func TestClassCreateMissingFields(t *testing.T) {
	repo, _ := newClassRepo(t)

	_, err := repo.Create(map[string]any{"code": "IT57"}, true)
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")
	assert.Contains(t, validationErr.Fields, "schedules")
}

func TestClassUpdateExcludesSelfFromConflictCheck(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	created, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	// Updating only the title keeps the class's own schedules, which
	// must not be treated as colliding with themselves.
	updated, err := repo.Update(created.ID, map[string]any{"title": "Advanced Databases"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Databases", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestClassUpdateDetectsConflictWithOtherClass(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	second := validClassPayload(sec.ID)
	second["code"] = "IT58"
	second["schedules"] = []any{schedule("Monday", "09:00 AM", "10:00 AM")}
	other, err := repo.Create(second, true)
	require.NoError(t, err)

	// Moving the second class onto the first one's slot must be caught.
	_, err = repo.Update(other.ID, map[string]any{
		"schedules": []any{schedule("Monday", "07:30 AM", "08:00 AM")},
	}, true)
	var conflictErr *apperror.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)

	// The bypass applies the same change.
	updated, err := repo.Update(other.ID, map[string]any{
		"schedules": []any{schedule("Monday", "07:30 AM", "08:00 AM")},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "07:30 AM", updated.Schedules[0].StartTime)
}

func TestClassUpdateReResolvesSectionName(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	otherPayload := validSectionPayload()
	otherPayload["section"] = "4B"
	otherSec, err := sections.Create(otherPayload)
	require.NoError(t, err)

	created, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)
	require.Equal(t, "3A", created.SectionName)

	updated, err := repo.Update(created.ID, map[string]any{"section_id": otherSec.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, otherSec.ID, updated.SectionID)
	assert.Equal(t, "4B", updated.SectionName)
}

func TestClassSectionNameStaysStaleAfterSectionRename(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	created, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	// Renaming the section does not cascade into existing classes.
	_, err = sections.Update(sec.ID, map[string]any{"section": "3C"})
	require.NoError(t, err)

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "3A", fetched.SectionName)
}

func TestClassUpdateNotFound(t *testing.T) {
	repo, _ := newClassRepo(t)

	_, err := repo.Update(7, map[string]any{"title": "Ghost"}, true)
	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestClassGetBySection(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	otherPayload := validSectionPayload()
	otherPayload["section"] = "4B"
	otherSec, err := sections.Create(otherPayload)
	require.NoError(t, err)

	_, err = repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	second := validClassPayload(otherSec.ID)
	second["code"] = "IT58"
	second["room"] = "CISC Lab 1"
	_, err = repo.Create(second, true)
	require.NoError(t, err)

	classes, err := repo.GetBySection(sec.ID)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "IT57", classes[0].Code)
}

func TestClassDeleteMissingID(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)
	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	before, err := repo.GetAll()
	require.NoError(t, err)

	deleted, err := repo.Delete(404)
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestClassSearch(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	second := validClassPayload(sec.ID)
	second["code"] = "IT58"
	second["instructor"] = "Reyes"
	second["room"] = "CISC Lab 1"
	_, err = repo.Create(second, true)
	require.NoError(t, err)

	results, err := repo.Search(map[string]any{"instructor": "Dela Cruz", "section_id": sec.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "IT57", results[0].Code)

	results, err = repo.Search(map[string]any{"semester": "1st"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClassConflictsAdvisory(t *testing.T) {
	repo, sections := newClassRepo(t)
	sec := seedSection(t, sections)

	_, err := repo.Create(validClassPayload(sec.ID), true)
	require.NoError(t, err)

	conflicts, err := repo.Conflicts(
		[]model.Schedule{{Day: "Monday", StartTime: "07:30 AM", EndTime: "09:00 AM"}},
		"CISC Room 3", 0,
	)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0], "Databases")

	conflicts, err = repo.Conflicts(
		[]model.Schedule{{Day: "Friday", StartTime: "07:30 AM", EndTime: "09:00 AM"}},
		"CISC Room 3", 0,
	)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
