package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	likeDto "teamnexus.com/collegeportal/internal/modules/like/dto"
	likeRepo "teamnexus.com/collegeportal/internal/modules/like/repository"
	postRepo "teamnexus.com/collegeportal/internal/modules/post/repository"
	"teamnexus.com/collegeportal/internal/realtime"
	"teamnexus.com/collegeportal/pkg/apperror"
)

type LikeService interface {
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*likeDto.LikeResponse, error)
}

type likeService struct {
	repo      likeRepo.LikeRepository
	postRepo  postRepo.PostRepository
	publisher realtime.Publisher
}

func NewLikeService(repo likeRepo.LikeRepository, postRepo postRepo.PostRepository, publisher realtime.Publisher) LikeService {
	if publisher == nil {
		publisher = realtime.Discard
	}
	return &likeService{
		repo:      repo,
		postRepo:  postRepo,
		publisher: publisher,
	}
}

func (s *likeService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*likeDto.LikeResponse, error) {
	if _, err := s.postRepo.FindActiveByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post")
		}
		return nil, err
	}

	liked, count, err := s.repo.Toggle(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.EventLikePost, realtime.LikePayload{
		PostID: postID,
		Count:  count,
	})

	status := likeDto.StatusUnliked
	if liked {
		status = likeDto.StatusLiked
	}
	return &likeDto.LikeResponse{Status: status, Count: count}, nil
}
