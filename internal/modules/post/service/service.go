package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	likeRepo "teamnexus.com/collegeportal/internal/modules/like/repository"
	postDto "teamnexus.com/collegeportal/internal/modules/post/dto"
	postRepo "teamnexus.com/collegeportal/internal/modules/post/repository"
	search "teamnexus.com/collegeportal/internal/modules/search/service"
	tagRepo "teamnexus.com/collegeportal/internal/modules/tag/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/internal/realtime"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/markdown"
	"teamnexus.com/collegeportal/pkg/ratelimiter"
	"teamnexus.com/collegeportal/pkg/storage"
)

// RedirectFeed is where clients go after a refused feed action.
const RedirectFeed = "/feed"

// RateLimits are the per-user cooldowns between posts and between comments.
type RateLimits struct {
	Post    time.Duration
	Comment time.Duration
}

type PostService interface {
	GetFeed(ctx context.Context, filter postDto.FeedFilter) (*postDto.FeedResponse, error)
	CreatePost(ctx context.Context, user *entity.User, req postDto.CreatePostRequest, file *dto.FileUpload) (*postDto.PostResponse, error)
	GetPost(ctx context.Context, viewerID uuid.UUID, postID uuid.UUID) (*postDto.PostDetailResponse, error)
	AddComment(ctx context.Context, user *entity.User, postID uuid.UUID, req postDto.CreateCommentRequest) (*postDto.CommentResponse, error)
	DeletePost(ctx context.Context, user *entity.User, postID uuid.UUID) error
	DeleteComment(ctx context.Context, user *entity.User, commentID uuid.UUID) error
	PurgePost(ctx context.Context, user *entity.User, postID uuid.UUID) error
}

type postService struct {
	postRepo    postRepo.PostRepository
	likeRepo    likeRepo.LikeRepository
	tagRepo     tagRepo.TagRepository
	fileStorage storage.FileStorage
	limiter     *ratelimiter.Limiter
	limits      RateLimits
	publisher   realtime.Publisher
	meili       search.Indexer
}

func NewPostService(
	postRepo postRepo.PostRepository,
	likeRepo likeRepo.LikeRepository,
	tagRepo tagRepo.TagRepository,
	fileStorage storage.FileStorage,
	limiter *ratelimiter.Limiter,
	limits RateLimits,
	publisher realtime.Publisher,
	meili search.Indexer,
) PostService {
	if publisher == nil {
		publisher = realtime.Discard
	}
	return &postService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		tagRepo:     tagRepo,
		fileStorage: fileStorage,
		limiter:     limiter,
		limits:      limits,
		publisher:   publisher,
		meili:       meili,
	}
}

func (s *postService) GetFeed(ctx context.Context, filter postDto.FeedFilter) (*postDto.FeedResponse, error) {
	posts, err := s.postRepo.FindFeed(ctx, postRepo.FeedQuery{
		Tag:    strings.TrimSpace(filter.Tag),
		Search: strings.TrimSpace(filter.Search),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := s.likeRepo.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	data := make([]postDto.PostResponse, 0, len(posts))
	for i := range posts {
		data = append(data, mapPost(&posts[i], counts[posts[i].ID]))
	}

	return &postDto.FeedResponse{Data: data, Tags: dto.NewTagResponses(tags)}, nil
}

func (s *postService) CreatePost(ctx context.Context, user *entity.User, req postDto.CreatePostRequest, file *dto.FileUpload) (*postDto.PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperror.Validation("Title and Content are required")
	}

	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	for _, raw := range req.Tags {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("invalid tag id %q", raw))
		}
		tagIDs = append(tagIDs, id)
	}

	if err := s.limiter.Allow(ctx, user.ID, "post", s.limits.Post); err != nil {
		return nil, err
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = s.limiter.Clear(ctx, user.ID, "post")
		}
	}()

	fileURL, err := saveFile(ctx, s.fileStorage, file)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		AuthorID: user.ID,
		Title:    title,
		Content:  content,
		FileURL:  fileURL,
	}

	if err := s.postRepo.Create(ctx, post, tagIDs); err != nil {
		if fileURL != nil {
			_ = s.fileStorage.Delete(ctx, *fileURL)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	creationFailed = false

	s.publisher.Publish(realtime.EventNewPost, realtime.NewPostPayload{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    user.DisplayName(),
		CreatedAt: dto.FormatTime(post.CreatedAt),
	})

	if s.meili != nil {
		if err := s.meili.IndexPost(post); err != nil {
			log.Printf("Failed to index post %s: %v", post.ID, err)
		}
	}

	res := mapPost(post, 0)
	return &res, nil
}

func (s *postService) GetPost(ctx context.Context, viewerID uuid.UUID, postID uuid.UUID) (*postDto.PostDetailResponse, error) {
	post, err := s.findActivePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.postRepo.FindActiveComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.IsLiked(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	res := &postDto.PostDetailResponse{
		Post:     mapPost(post, count),
		Comments: make([]postDto.CommentResponse, 0, len(comments)),
		Liked:    liked,
	}
	for i := range comments {
		res.Comments = append(res.Comments, mapComment(&comments[i]))
	}
	return res, nil
}

func (s *postService) AddComment(ctx context.Context, user *entity.User, postID uuid.UUID, req postDto.CreateCommentRequest) (*postDto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}

	if _, err := s.findActivePost(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.limiter.Allow(ctx, user.ID, "comment", s.limits.Comment); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:   postID,
		AuthorID: user.ID,
		Content:  content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		_ = s.limiter.Clear(ctx, user.ID, "comment")
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *user

	s.publisher.Publish(realtime.EventNewComment, realtime.NewCommentPayload{
		PostID:    postID,
		CommentID: comment.ID,
		Author:    user.DisplayName(),
		Content:   comment.Content,
		CreatedAt: dto.FormatTime(comment.CreatedAt),
	})

	res := mapComment(comment)
	return &res, nil
}

func (s *postService) DeletePost(ctx context.Context, user *entity.User, postID uuid.UUID) error {
	post, err := s.findActivePost(ctx, postID)
	if err != nil {
		return err
	}

	if !policy.CanModerate(user, policy.ActionDeletePost, post) {
		return apperror.Forbidden("you do not have permission to delete this post")
	}

	if err := s.postRepo.SoftDelete(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("post")
		}
		return err
	}

	s.unindex(postID)
	return nil
}

func (s *postService) DeleteComment(ctx context.Context, user *entity.User, commentID uuid.UUID) error {
	comment, err := s.postRepo.FindActiveCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("comment")
		}
		return err
	}

	if !policy.CanModerate(user, policy.ActionDeleteComment, comment) {
		return apperror.Forbidden("you do not have permission to delete this comment")
	}

	if err := s.postRepo.SoftDeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("comment")
		}
		return err
	}
	return nil
}

// PurgePost permanently removes a post with its comments, likes and reports.
// Only admins may purge, whatever the post's state.
func (s *postService) PurgePost(ctx context.Context, user *entity.User, postID uuid.UUID) error {
	if !policy.CanModerate(user, policy.ActionPurgePost, nil) {
		return apperror.Forbidden("admin access required")
	}

	if err := s.postRepo.HardDelete(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("post")
		}
		return err
	}

	s.unindex(postID)
	return nil
}

func (s *postService) findActivePost(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	post, err := s.postRepo.FindActiveByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post")
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) unindex(postID uuid.UUID) {
	if s.meili == nil {
		return
	}
	if err := s.meili.DeletePost(postID.String()); err != nil {
		log.Printf("Failed to remove post %s from index: %v", postID, err)
	}
}

func saveFile(ctx context.Context, fs storage.FileStorage, file *dto.FileUpload) (*string, error) {
	if file == nil {
		return nil, nil
	}
	return storage.SaveUpload(ctx, fs, storage.AreaFeed, file.Name, file.File)
}

func mapPost(post *entity.Post, likes int64) postDto.PostResponse {
	return postDto.PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		ContentHTML: markdown.Render(post.Content),
		FileURL:     post.FileURL,
		Author:      dto.NewAuthorResponse(post.Author),
		Tags:        dto.NewTagResponses(post.Tags),
		LikeCount:   likes,
		IsReported:  post.IsReported,
		CreatedAt:   dto.FormatTime(post.CreatedAt),
	}
}

func mapComment(comment *entity.Comment) postDto.CommentResponse {
	return postDto.CommentResponse{
		ID:          comment.ID,
		PostID:      comment.PostID,
		Content:     comment.Content,
		ContentHTML: markdown.Render(comment.Content),
		Author:      dto.NewAuthorResponse(comment.Author),
		CreatedAt:   dto.FormatTime(comment.CreatedAt),
	}
}
