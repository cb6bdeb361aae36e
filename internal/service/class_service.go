package service

import (
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ClassService handles class business logic.
type ClassService struct {
	classRepo *repository.ClassRepository
	log       zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, log zerolog.Logger) *ClassService {
	return &ClassService{classRepo: classRepo, log: log}
}

// List retrieves all classes.
func (s *ClassService) List() ([]model.Class, error) {
	return s.classRepo.GetAll()
}

// GetByID retrieves a class by id; (nil, nil) when absent.
func (s *ClassService) GetByID(id int) (*model.Class, error) {
	return s.classRepo.GetByID(id)
}

// GetBySection retrieves all classes tagged to a section.
func (s *ClassService) GetBySection(sectionID int) ([]model.Class, error) {
	return s.classRepo.GetBySection(sectionID)
}

// Create persists a new class. checkConflicts=false bypasses schedule
// conflict rejection (administrative override).
func (s *ClassService) Create(payload map[string]any, checkConflicts bool) (*model.Class, error) {
	cls, err := s.classRepo.Create(payload, checkConflicts)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("id", cls.ID).Str("code", cls.Code).Msg("Class created")
	return cls, nil
}

// Update applies a partial payload to an existing class, conflict
// checking against every other class unless bypassed.
func (s *ClassService) Update(id int, payload map[string]any, checkConflicts bool) (*model.Class, error) {
	cls, err := s.classRepo.Update(id, payload, checkConflicts)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("id", id).Msg("Class updated")
	return cls, nil
}

// Delete removes a class; false when the id was not present.
func (s *ClassService) Delete(id int) (bool, error) {
	deleted, err := s.classRepo.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info().Int("id", id).Msg("Class deleted")
	}
	return deleted, nil
}

// Search returns classes matching every supplied filter.
func (s *ClassService) Search(filters map[string]any) ([]model.Class, error) {
	return s.classRepo.Search(filters)
}
