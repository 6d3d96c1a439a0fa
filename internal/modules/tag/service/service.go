package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/tag/dto"
	"teamnexus.com/collegeportal/internal/modules/tag/repository"
	"teamnexus.com/collegeportal/pkg/apperror"
	commonDto "teamnexus.com/collegeportal/pkg/dto"
)

type TagService interface {
	CreateTag(ctx context.Context, req dto.CreateTagRequest) (*commonDto.TagResponse, error)
	GetAllTags(ctx context.Context, filter dto.TagFilter) ([]commonDto.TagResponse, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) CreateTag(ctx context.Context, req dto.CreateTagRequest) (*commonDto.TagResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Name is required")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation(fmt.Sprintf("tag %s already exists", name))
	}

	tag := &entity.Tag{Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation(fmt.Sprintf("tag %s already exists", name))
		}
		return nil, err
	}

	return &commonDto.TagResponse{ID: tag.ID, Name: tag.Name}, nil
}

func (s *tagService) GetAllTags(ctx context.Context, filter dto.TagFilter) ([]commonDto.TagResponse, error) {
	tags, err := s.repo.FindAll(ctx, strings.TrimSpace(filter.Search))
	if err != nil {
		return nil, err
	}
	return commonDto.NewTagResponses(tags), nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("tag")
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
