package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"teamnexus.com/collegeportal/internal/entity"
	feedbackDto "teamnexus.com/collegeportal/internal/modules/feedback/dto"
	feedbackRepo "teamnexus.com/collegeportal/internal/modules/feedback/repository"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
)

func submit(content string, anonymous *bool) feedbackDto.SubmitFeedbackRequest {
	return feedbackDto.SubmitFeedbackRequest{Content: content, Anonymous: anonymous}
}

func TestSubmitDefaultsToAnonymous(t *testing.T) {
	db := testdb.New(t)
	svc := NewFeedbackService(feedbackRepo.NewFeedbackRepository(db))
	ctx := context.Background()
	ravi := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	res, err := svc.Submit(ctx, ravi, submit("  Library should open on Sundays\nplease  ", nil))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.IsAnonymous {
		t.Error("feedback should default to anonymous")
	}
	if res.Content != "Library should open on Sundays\nplease" {
		t.Errorf("content = %q", res.Content)
	}

	named := false
	res, err = svc.Submit(ctx, ravi, submit("Canteen food is great", &named))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.IsAnonymous {
		t.Error("explicit is_anonymous=false was not kept")
	}

	if _, err := svc.Submit(ctx, ravi, submit(" \n\t", nil)); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("blank err = %v, want validation", err)
	}
}

func TestListHidesAnonymousAuthors(t *testing.T) {
	db := testdb.New(t)
	svc := NewFeedbackService(feedbackRepo.NewFeedbackRepository(db))
	ctx := context.Background()
	ravi := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)
	anu := testdb.CreateUser(t, db, "anu", entity.RoleStudent)
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	admin := testdb.CreateUser(t, db, "root", entity.RoleAdmin)

	named := false
	if _, err := svc.Submit(ctx, ravi, submit("Hostel wifi is down", nil)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Submit(ctx, anu, submit("More lab hours", &named)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.List(ctx, anu); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("student list err = %v, want forbidden", err)
	}

	authors := func(viewer *entity.User) map[string]string {
		t.Helper()
		items, err := svc.List(ctx, viewer)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("items = %d, want 2", len(items))
		}
		out := make(map[string]string)
		for _, it := range items {
			if it.Author != nil {
				out[it.Content] = it.Author.Username
			} else {
				out[it.Content] = ""
			}
		}
		return out
	}

	staffView := authors(teacher)
	if staffView["Hostel wifi is down"] != "" {
		t.Errorf("teacher saw anonymous author %q", staffView["Hostel wifi is down"])
	}
	if staffView["More lab hours"] != "anu" {
		t.Errorf("named author = %q", staffView["More lab hours"])
	}

	if adminView := authors(admin); adminView["Hostel wifi is down"] != "ravi" {
		t.Errorf("admin view = %v", adminView)
	}

	mine, err := svc.Mine(ctx, ravi)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Author == nil || mine[0].Author.Username != "ravi" {
		t.Errorf("mine = %+v", mine)
	}
}

func TestDeleteFeedbackAdminOnly(t *testing.T) {
	db := testdb.New(t)
	svc := NewFeedbackService(feedbackRepo.NewFeedbackRepository(db))
	ctx := context.Background()
	ravi := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	admin := testdb.CreateUser(t, db, "root", entity.RoleAdmin)

	res, err := svc.Submit(ctx, ravi, submit("Spam", nil))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.Delete(ctx, teacher, res.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("teacher delete err = %v", err)
	}
	if err := svc.Delete(ctx, admin, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, admin, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing err = %v, want not found", err)
	}
}
