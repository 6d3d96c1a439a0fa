package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	noteDto "teamnexus.com/collegeportal/internal/modules/note/dto"
	noteRepo "teamnexus.com/collegeportal/internal/modules/note/repository"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/storage"
)

func newService(t *testing.T) (*gorm.DB, NoteService, storage.FileStorage) {
	t.Helper()
	db := testdb.New(t)
	fs, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	return db, NewNoteService(noteRepo.NewNoteRepository(db), fs), fs
}

func file(name, body string) *dto.FileUpload {
	return &dto.FileUpload{Name: name, Size: int64(len(body)), File: io.NopCloser(strings.NewReader(body))}
}

func TestUploadPermissions(t *testing.T) {
	db, svc, _ := newService(t)
	ctx := context.Background()
	req := noteDto.UploadNoteRequest{Title: "Unit 1", Semester: 3, Subject: "DBMS"}

	for _, role := range []string{entity.RoleStudent, entity.RoleCR, entity.RoleFaculty} {
		u := testdb.CreateUser(t, db, "u"+role, role)
		if _, err := svc.Upload(ctx, u, req, file("unit1.pdf", "x")); !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("%s: err = %v, want forbidden", role, err)
		}
	}

	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	if _, err := svc.Upload(ctx, teacher, req, nil); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("missing file err = %v", err)
	}

	res, err := svc.Upload(ctx, teacher, req, file("unit 1.pdf", "x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.FileName != "unit_1.pdf" || !strings.HasPrefix(res.FileURL, "/static/"+storage.AreaNotes+"/") {
		t.Errorf("res = %+v", res)
	}
}

func TestSameFileNameDoesNotOverwrite(t *testing.T) {
	db, svc, _ := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	req := noteDto.UploadNoteRequest{Title: "Notes", Semester: 1, Subject: "Maths"}

	first, err := svc.Upload(ctx, teacher, req, file("notes.pdf", "first"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	second, err := svc.Upload(ctx, teacher, req, file("notes.pdf", "second"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if first.FileURL == second.FileURL {
		t.Fatalf("both uploads stored at %s", first.FileURL)
	}

	d, err := svc.Download(ctx, first.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer d.Body.Close()
	body, _ := io.ReadAll(d.Body)
	if string(body) != "first" {
		t.Errorf("first note body = %q", body)
	}
}

func TestListFilters(t *testing.T) {
	db, svc, _ := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)

	seed := []noteDto.UploadNoteRequest{
		{Title: "a", Semester: 1, Subject: "Maths"},
		{Title: "b", Semester: 1, Subject: "Physics"},
		{Title: "c", Semester: 2, Subject: "Maths"},
	}
	for _, req := range seed {
		if _, err := svc.Upload(ctx, teacher, req, file(req.Title+".pdf", req.Title)); err != nil {
			t.Fatalf("Upload %s: %v", req.Title, err)
		}
	}

	cases := []struct {
		filter noteDto.NoteFilter
		want   []string
	}{
		{noteDto.NoteFilter{}, []string{"c", "b", "a"}},
		{noteDto.NoteFilter{Semester: 1}, []string{"b", "a"}},
		{noteDto.NoteFilter{Subject: "Maths"}, []string{"c", "a"}},
		{noteDto.NoteFilter{Semester: 2, Subject: "Physics"}, nil},
	}
	for _, tc := range cases {
		notes, err := svc.List(ctx, tc.filter)
		if err != nil {
			t.Fatalf("List(%+v): %v", tc.filter, err)
		}
		var got []string
		for _, n := range notes {
			got = append(got, n.Title)
		}
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Errorf("List(%+v) = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestDeleteNote(t *testing.T) {
	db, svc, fs := newService(t)
	ctx := context.Background()
	owner := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	other := testdb.CreateUser(t, db, "arjun", entity.RoleTeacher)
	admin := testdb.CreateUser(t, db, "root", entity.RoleAdmin)
	req := noteDto.UploadNoteRequest{Title: "Lab manual", Semester: 4, Subject: "OS"}

	res, err := svc.Upload(ctx, owner, req, file("lab.pdf", "x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, other, res.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("other teacher delete err = %v", err)
	}
	if err := svc.Delete(ctx, admin, res.ID); err != nil {
		t.Fatalf("admin Delete: %v", err)
	}
	if _, err := fs.Open(ctx, res.FileURL); err == nil {
		t.Error("file still on disk after delete")
	}
	if err := svc.Delete(ctx, admin, res.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}
