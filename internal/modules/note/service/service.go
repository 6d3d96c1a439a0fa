package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	noteDto "teamnexus.com/collegeportal/internal/modules/note/dto"
	noteRepo "teamnexus.com/collegeportal/internal/modules/note/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/storage"
)

const RedirectList = "/notes"

// Download is an opened note file. When the file is held by a remote backend
// Body is nil and the caller should redirect to URL.
type Download struct {
	Name string
	URL  string
	Body io.ReadCloser
}

type NoteService interface {
	List(ctx context.Context, filter noteDto.NoteFilter) ([]noteDto.NoteResponse, error)
	Upload(ctx context.Context, user *entity.User, req noteDto.UploadNoteRequest, file *dto.FileUpload) (*noteDto.NoteResponse, error)
	Download(ctx context.Context, id uuid.UUID) (*Download, error)
	Delete(ctx context.Context, user *entity.User, id uuid.UUID) error
}

type noteService struct {
	repo        noteRepo.NoteRepository
	fileStorage storage.FileStorage
}

func NewNoteService(repo noteRepo.NoteRepository, fileStorage storage.FileStorage) NoteService {
	return &noteService{repo: repo, fileStorage: fileStorage}
}

func (s *noteService) List(ctx context.Context, filter noteDto.NoteFilter) ([]noteDto.NoteResponse, error) {
	notes, err := s.repo.FindAll(ctx, filter.Semester, strings.TrimSpace(filter.Subject))
	if err != nil {
		return nil, err
	}

	out := make([]noteDto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, mapNote(&notes[i]))
	}
	return out, nil
}

func (s *noteService) Upload(ctx context.Context, user *entity.User, req noteDto.UploadNoteRequest, file *dto.FileUpload) (*noteDto.NoteResponse, error) {
	if !policy.CanModerate(user, policy.ActionUploadNote, nil) {
		return nil, apperror.Forbidden("you do not have permission to upload notes")
	}
	if file == nil || file.Name == "" {
		return nil, apperror.Validation("no file selected")
	}

	fileURL, err := storage.SaveUpload(ctx, s.fileStorage, storage.AreaNotes, file.Name, file.File)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		Title:      strings.TrimSpace(req.Title),
		FileURL:    *fileURL,
		Semester:   req.Semester,
		Subject:    strings.TrimSpace(req.Subject),
		UploaderID: user.ID,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		note.Description = &d
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.discardFile(ctx, note.FileURL)
		return nil, fmt.Errorf("create note: %w", err)
	}

	res := mapNote(note)
	return &res, nil
}

func (s *noteService) Download(ctx context.Context, id uuid.UUID) (*Download, error) {
	note, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Download{Name: storage.OriginalName(note.FileURL), URL: note.FileURL}

	body, err := s.fileStorage.Open(ctx, note.FileURL)
	if errors.Is(err, storage.ErrRemoteFile) {
		return d, nil
	}
	if err != nil {
		// the row outlived its file
		log.Printf("Failed to open note file %s: %v", note.FileURL, err)
		return nil, apperror.NotFound("file")
	}
	d.Body = body
	return d, nil
}

func (s *noteService) Delete(ctx context.Context, user *entity.User, id uuid.UUID) error {
	note, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModerate(user, policy.ActionDeleteNote, note) {
		return apperror.Forbidden("you do not have permission to delete this note")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("note")
		}
		return err
	}

	s.discardFile(ctx, note.FileURL)
	return nil
}

func (s *noteService) find(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("note")
		}
		return nil, err
	}
	return note, nil
}

func (s *noteService) discardFile(ctx context.Context, fileURL string) {
	if err := s.fileStorage.Delete(ctx, fileURL); err != nil {
		log.Printf("Failed to delete file %s: %v", fileURL, err)
	}
}

func mapNote(n *entity.Note) noteDto.NoteResponse {
	return noteDto.NoteResponse{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		FileURL:     n.FileURL,
		FileName:    storage.OriginalName(n.FileURL),
		Semester:    n.Semester,
		Subject:     n.Subject,
		Uploader:    dto.NewAuthorResponse(n.Uploader),
		UploadedAt:  dto.FormatTime(n.UploadedAt),
	}
}
