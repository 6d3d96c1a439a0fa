package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	eventDto "teamnexus.com/collegeportal/internal/modules/event/dto"
	eventRepo "teamnexus.com/collegeportal/internal/modules/event/repository"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/storage"
)

var fixedNow = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*gorm.DB, *eventService) {
	t.Helper()
	db := testdb.New(t)
	fs, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	svc := NewEventService(eventRepo.NewEventRepository(db), fs).(*eventService)
	svc.now = func() time.Time { return fixedNow }
	return db, svc
}

func request(title string, start time.Time, length time.Duration) eventDto.EventRequest {
	return eventDto.EventRequest{
		Title:     title,
		StartTime: start.Format(time.RFC3339),
		EndTime:   start.Add(length).Format(time.RFC3339),
	}
}

func TestParseTime(t *testing.T) {
	for _, in := range []string{"2025-03-05T14:30", "2025-03-05T14:30:00", "2025-03-05 14:30", "2025-03-05T14:30:00+05:30"} {
		if _, err := ParseTime(in); err != nil {
			t.Errorf("ParseTime(%q): %v", in, err)
		}
	}
	if _, err := ParseTime("next tuesday"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateEventValidatesWindow(t *testing.T) {
	db, svc := newService(t)
	cr := testdb.CreateUser(t, db, "kavya", entity.RoleCR)

	_, err := svc.Create(context.Background(), cr, request("Backwards", fixedNow, -time.Hour), nil)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("err = %v, want validation error", err)
	}

	// zero length is allowed
	if _, err := svc.Create(context.Background(), cr, request("Instant", fixedNow, 0), nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestCreateEventRequiresPosterRole(t *testing.T) {
	db, svc := newService(t)
	faculty := testdb.CreateUser(t, db, "suresh", entity.RoleFaculty)

	_, err := svc.Create(context.Background(), faculty, request("Seminar", fixedNow.Add(time.Hour), time.Hour), nil)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestListPartitionsUpcomingAndPast(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)

	starts := map[string]time.Time{
		"last week":  fixedNow.Add(-7 * 24 * time.Hour),
		"yesterday":  fixedNow.Add(-24 * time.Hour),
		"right now":  fixedNow,
		"next month": fixedNow.Add(30 * 24 * time.Hour),
		"tomorrow":   fixedNow.Add(24 * time.Hour),
	}
	for title, start := range starts {
		if _, err := svc.Create(ctx, teacher, request(title, start, time.Hour), nil); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	titles := func(events []eventDto.EventResponse) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.Title)
		}
		return out
	}

	wantUpcoming := []string{"right now", "tomorrow", "next month"}
	wantPast := []string{"yesterday", "last week"}
	if got := titles(list.Upcoming); len(got) != 3 || got[0] != wantUpcoming[0] || got[1] != wantUpcoming[1] || got[2] != wantUpcoming[2] {
		t.Errorf("upcoming = %v, want %v", got, wantUpcoming)
	}
	if got := titles(list.Past); len(got) != 2 || got[0] != wantPast[0] || got[1] != wantPast[1] {
		t.Errorf("past = %v, want %v", got, wantPast)
	}
}

func TestRSVPIsIdempotent(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	ev, err := svc.Create(ctx, teacher, request("Hackathon", fixedNow.Add(48*time.Hour), 8*time.Hour), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	detail, err := svc.Get(ctx, student.ID, ev.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.IsRegistered || detail.RSVPCount != 0 {
		t.Fatalf("detail before rsvp = %+v", detail)
	}

	created, err := svc.RSVP(ctx, student.ID, ev.ID)
	if err != nil || !created {
		t.Fatalf("first RSVP = %v, %v", created, err)
	}
	created, err = svc.RSVP(ctx, student.ID, ev.ID)
	if err != nil || created {
		t.Fatalf("second RSVP = %v, %v", created, err)
	}

	detail, err = svc.Get(ctx, student.ID, ev.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !detail.IsRegistered || detail.RSVPCount != 1 {
		t.Errorf("detail after rsvp = %+v", detail)
	}

	mine, err := svc.Registered(ctx, student.ID)
	if err != nil {
		t.Fatalf("Registered: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != ev.ID {
		t.Errorf("registered = %+v", mine)
	}
}

func TestRSVPUnknownEvent(t *testing.T) {
	db, svc := newService(t)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	_, err := svc.RSVP(context.Background(), student.ID, student.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestEditAndDeleteOwnerOnly(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	owner := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	admin := testdb.CreateUser(t, db, "root", entity.RoleAdmin)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	ev, err := svc.Create(ctx, owner, request("Fest", fixedNow.Add(72*time.Hour), 4*time.Hour), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.RSVP(ctx, student.ID, ev.ID); err != nil {
		t.Fatalf("RSVP: %v", err)
	}

	edit := request("Fest 2025", fixedNow.Add(96*time.Hour), 4*time.Hour)
	edit.Location = "Main ground"
	if _, err := svc.Update(ctx, admin, ev.ID, edit, nil); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("admin update err = %v", err)
	}

	updated, err := svc.Update(ctx, owner, ev.ID, edit, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Fest 2025" || updated.Location == nil || *updated.Location != "Main ground" {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Delete(ctx, admin, ev.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("admin delete err = %v", err)
	}
	if err := svc.Delete(ctx, owner, ev.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var rsvps int64
	db.Model(&entity.EventRSVP{}).Count(&rsvps)
	if rsvps != 0 {
		t.Errorf("rsvp rows = %d, want 0", rsvps)
	}
	if _, err := svc.Get(ctx, student.ID, ev.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get after delete err = %v", err)
	}
}

func TestBlankTitleRejected(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)

	if _, err := svc.Create(ctx, teacher, request("  \t", fixedNow.Add(time.Hour), time.Hour), nil); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Create err = %v, want validation error", err)
	}
	var count int64
	db.Model(&entity.Event{}).Count(&count)
	if count != 0 {
		t.Fatalf("event rows = %d, want 0", count)
	}

	ev, err := svc.Create(ctx, teacher, request("Orientation", fixedNow.Add(time.Hour), time.Hour), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(ctx, teacher, ev.ID, request("   ", fixedNow.Add(time.Hour), time.Hour), nil); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Update err = %v, want validation error", err)
	}

	detail, err := svc.Get(ctx, teacher.ID, ev.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Event.Title != "Orientation" {
		t.Errorf("title = %q", detail.Event.Title)
	}
}
