package service

import (
	"errors"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/pkg/logger"
)

var ErrTagNotFound = errors.New("tag not found")

type TagService interface {
	ListTags() ([]dto.TagDTO, error)
	GetTag(id uint) (dto.TagDTO, error)
	CreateTag(in dto.TagDTO) (dto.TagDTO, error)
	UpdateTag(id uint, in dto.TagDTO) error
	DeleteTag(id uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// ListTags 모든 태그 목록 조회
func (s *tagService) ListTags() ([]dto.TagDTO, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		return nil, translateLookup(err, ErrTagNotFound)
	}
	return dto.FromTags(tags), nil
}

func (s *tagService) GetTag(id uint) (dto.TagDTO, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return dto.TagDTO{}, translateLookup(err, ErrTagNotFound)
	}
	return dto.FromTag(tag), nil
}

func (s *tagService) CreateTag(in dto.TagDTO) (dto.TagDTO, error) {
	tag := &model.Tag{
		Name:     in.Name,
		Products: []model.ProductTag{},
	}

	if err := s.tagRepo.Create(tag); err != nil {
		logger.Error("Failed to create tag", err, map[string]interface{}{
			"name": tag.Name,
		})
		return dto.TagDTO{}, translateLookup(err, ErrTagNotFound)
	}

	logger.Info("Tag created successfully", map[string]interface{}{
		"tag_id": tag.ID,
		"name":   tag.Name,
	})
	return dto.FromTag(tag), nil
}

func (s *tagService) UpdateTag(id uint, in dto.TagDTO) error {
	if in.ID != id {
		return ErrIDMismatch
	}

	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return translateLookup(err, ErrTagNotFound)
	}

	tag.Name = in.Name

	outcome, err := s.tagRepo.Update(tag)
	if err != nil {
		return translateLookup(err, ErrTagNotFound)
	}
	if outcome == repository.UpdateConflict {
		return resolveConflict("tag", id, s.tagRepo.Exists, ErrTagNotFound)
	}
	return nil
}

func (s *tagService) DeleteTag(id uint) error {
	if err := s.tagRepo.Delete(id); err != nil {
		return translateLookup(err, ErrTagNotFound)
	}

	logger.Info("Tag deleted successfully", map[string]interface{}{
		"tag_id": id,
	})
	return nil
}
