package service

import (
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SectionService handles section business logic.
type SectionService struct {
	sectionRepo *repository.SectionRepository
	log         zerolog.Logger
}

// NewSectionService creates a new SectionService.
func NewSectionService(sectionRepo *repository.SectionRepository, log zerolog.Logger) *SectionService {
	return &SectionService{sectionRepo: sectionRepo, log: log}
}

// List retrieves all sections.
func (s *SectionService) List() ([]model.Section, error) {
	return s.sectionRepo.GetAll()
}

// GetByID retrieves a section by id; (nil, nil) when absent.
func (s *SectionService) GetByID(id int) (*model.Section, error) {
	return s.sectionRepo.GetByID(id)
}

// Create persists a new section from the given payload.
func (s *SectionService) Create(payload map[string]any) (*model.Section, error) {
	sec, err := s.sectionRepo.Create(payload)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("id", sec.ID).Str("section", sec.Section).Msg("Section created")
	return sec, nil
}

// Update applies a partial payload to an existing section.
func (s *SectionService) Update(id int, payload map[string]any) (*model.Section, error) {
	sec, err := s.sectionRepo.Update(id, payload)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("id", id).Msg("Section updated")
	return sec, nil
}

// Delete removes a section; false when the id was not present.
func (s *SectionService) Delete(id int) (bool, error) {
	deleted, err := s.sectionRepo.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info().Int("id", id).Msg("Section deleted")
	}
	return deleted, nil
}

// Search returns sections matching every supplied filter.
func (s *SectionService) Search(filters map[string]any) ([]model.Section, error) {
	return s.sectionRepo.Search(filters)
}
