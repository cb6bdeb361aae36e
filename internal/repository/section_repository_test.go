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

func newSectionRepo(t *testing.T) *SectionRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sections.json")
	st := store.New[model.Section](path, "sections")
	require.NoError(t, st.EnsureExists())
	return NewSectionRepository(st)
}

func validSectionPayload() map[string]any {
	return map[string]any{
		"section":    "3A",
		"program":    "BSIT",
		"curriculum": "2023-2024",
		"year":       "3rd",
		"capacity":   40,
		"type":       "Lecture",
		"remarks":    "Regular",
	}
}

func TestSectionCreateThenGetByID(t *testing.T) {
	repo := newSectionRepo(t)

	created, err := repo.Create(validSectionPayload())
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "3A", fetched.Section)
	assert.Equal(t, "BSIT", fetched.Program)
	assert.Equal(t, "2023-2024", fetched.Curriculum)
	assert.Equal(t, "3rd", fetched.Year)
	assert.Equal(t, 40, fetched.Capacity)
	assert.Equal(t, "Lecture", fetched.Type)
	assert.Equal(t, "Regular", fetched.Remarks)
}

func TestSectionCreateAssignsSequentialIDs(t *testing.T) {
	repo := newSectionRepo(t)

	first, err := repo.Create(validSectionPayload())
	require.NoError(t, err)
	second, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestSectionCreateMissingFields(t *testing.T) {
	repo := newSectionRepo(t)

	payload := validSectionPayload()
	delete(payload, "year")
	delete(payload, "capacity")

	_, err := repo.Create(payload)
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "year")
	assert.Contains(t, validationErr.Fields, "capacity")
}

func TestSectionCreateValidation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value any
		field string
	}{
		{"zero capacity", "capacity", 0, "capacity"},
		{"negative capacity", "capacity", -3, "capacity"},
		{"non-numeric capacity", "capacity", "lots", "capacity"},
		{"bad type", "type", "Seminar", "type"},
		{"bad year", "year", "6th", "year"},
		{"empty section", "section", "   ", "section"},
		{"empty program", "program", "", "program"},
		{"non-string curriculum", "curriculum", 2023, "curriculum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newSectionRepo(t)
			payload := validSectionPayload()
			payload[tc.key] = tc.value

			_, err := repo.Create(payload)
			var validationErr *apperror.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tc.field)
		})
	}
}

func TestSectionCreateCoercesCapacityString(t *testing.T) {
	repo := newSectionRepo(t)

	payload := validSectionPayload()
	payload["capacity"] = "45"
	created, err := repo.Create(payload)
	require.NoError(t, err)
	assert.Equal(t, 45, created.Capacity)
}

func TestSectionUpdatePartial(t *testing.T) {
	repo := newSectionRepo(t)
	created, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, map[string]any{"capacity": 50})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Capacity)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "3A", updated.Section)
}

func TestSectionUpdateEmptyPayloadChangesNothingButUpdatedAt(t *testing.T) {
	repo := newSectionRepo(t)
	created, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, map[string]any{})
	require.NoError(t, err)

	want := created.Clone()
	want.UpdatedAt = updated.UpdatedAt
	assert.Equal(t, &want, updated)
}

func TestSectionUpdateRejectsInvalidField(t *testing.T) {
	repo := newSectionRepo(t)
	created, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	_, err = repo.Update(created.ID, map[string]any{"type": "Gymnasium"})
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// A rejected update must not have touched the record.
	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lecture", fetched.Type)
}

func TestSectionUpdateNotFound(t *testing.T) {
	repo := newSectionRepo(t)

	_, err := repo.Update(42, map[string]any{"capacity": 10})
	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, 42, notFoundErr.ID)
}

func TestSectionDelete(t *testing.T) {
	repo := newSectionRepo(t)
	created, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	deleted, err := repo.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestSectionDeleteMissingIDLeavesCollectionUnchanged(t *testing.T) {
	repo := newSectionRepo(t)
	_, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	before, err := repo.GetAll()
	require.NoError(t, err)

	deleted, err := repo.Delete(999)
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSectionSearch(t *testing.T) {
	repo := newSectionRepo(t)

	_, err := repo.Create(validSectionPayload())
	require.NoError(t, err)
	other := validSectionPayload()
	other["section"] = "4B"
	other["year"] = "4th"
	_, err = repo.Create(other)
	require.NoError(t, err)

	// Exact-match AND over all supplied pairs.
	results, err := repo.Search(map[string]any{"program": "BSIT", "year": "3rd"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "3A", results[0].Section)

	// Numeric filters compare against numeric fields.
	results, err = repo.Search(map[string]any{"capacity": 40})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// A key absent from the record is a non-match, not ignored.
	results, err = repo.Search(map[string]any{"department": "CISC"})
	require.NoError(t, err)
	assert.Empty(t, results)

	// Empty filters return everything.
	results, err = repo.Search(nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSectionGetAllReturnsIndependentCopies(t *testing.T) {
	repo := newSectionRepo(t)
	created, err := repo.Create(validSectionPayload())
	require.NoError(t, err)

	first, err := repo.GetAll()
	require.NoError(t, err)
	first[0].Section = "mutated"

	second, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "3A", second.Section)
}
