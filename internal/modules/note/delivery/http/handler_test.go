package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"teamnexus.com/collegeportal/internal/entity"
	noteDto "teamnexus.com/collegeportal/internal/modules/note/dto"
	noteRepo "teamnexus.com/collegeportal/internal/modules/note/repository"
	note "teamnexus.com/collegeportal/internal/modules/note/service"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/storage"
)

type remoteStorage struct{ storage.FileStorage }

func (remoteStorage) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, storage.ErrRemoteFile
}

func setup(t *testing.T, fs storage.FileStorage) (*gin.Engine, note.NoteService, *entity.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	svc := note.NewNoteService(noteRepo.NewNoteRepository(db), fs)

	r := gin.New()
	r.GET("/notes/:id/download", NewNoteHandler(svc).Download)
	return r, svc, teacher
}

func TestDownloadStreamsAttachment(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	r, svc, teacher := setup(t, fs)

	res, err := svc.Upload(context.Background(), teacher,
		noteDto.UploadNoteRequest{Title: "Syllabus", Semester: 2, Subject: "Maths"},
		&dto.FileUpload{Name: "syllabus.txt", File: io.NopCloser(strings.NewReader("chapter 1"))})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes/"+res.ID.String()+"/download", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename=syllabus.txt` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if w.Body.String() != "chapter 1" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestDownloadRemoteRedirects(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	r, svc, teacher := setup(t, remoteStorage{local})

	res, err := svc.Upload(context.Background(), teacher,
		noteDto.UploadNoteRequest{Title: "Slides", Semester: 2, Subject: "Maths"},
		&dto.FileUpload{Name: "slides.pdf", File: io.NopCloser(strings.NewReader("%PDF"))})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes/"+res.ID.String()+"/download", nil))

	if w.Code != http.StatusFound || w.Header().Get("Location") != res.FileURL {
		t.Errorf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}
}

func TestDownloadUnknownNote(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	r, _, _ := setup(t, fs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes/0195a3c0-0000-7000-8000-000000000000/download", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
