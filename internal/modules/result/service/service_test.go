package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	resultDto "teamnexus.com/collegeportal/internal/modules/result/dto"
	resultRepo "teamnexus.com/collegeportal/internal/modules/result/repository"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
)

func newService(t *testing.T) (*gorm.DB, ResultService) {
	t.Helper()
	db := testdb.New(t)
	return db, NewResultService(resultRepo.NewResultRepository(db), userRepo.NewUserRepository(db))
}

func gpa(v float64) *float64 { return &v }

func publish(student *entity.User, semester int, sgpa float64, details string) resultDto.PublishResultRequest {
	req := resultDto.PublishResultRequest{StudentID: student.ID.String(), Semester: semester, SGPA: gpa(sgpa)}
	if details != "" {
		req.Details = json.RawMessage(details)
	}
	return req
}

func TestPublishRequiresStaffAndStudent(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	cr := testdb.CreateUser(t, db, "kavya", entity.RoleCR)
	faculty := testdb.CreateUser(t, db, "suresh", entity.RoleFaculty)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	if _, err := svc.Publish(ctx, cr, publish(student, 1, 8.1, "")); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cr publish err = %v, want forbidden", err)
	}
	if _, err := svc.Publish(ctx, faculty, publish(cr, 1, 8.1, "")); err != nil {
		t.Errorf("cr is a student too: %v", err)
	}
	if _, err := svc.Publish(ctx, faculty, publish(faculty, 1, 8.1, "")); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("faculty as student err = %v, want validation", err)
	}
	if _, err := svc.Publish(ctx, faculty, publish(student, 1, 8.1, `[1,2]`)); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("array details err = %v, want validation", err)
	}
}

func TestPublishReplacesSemester(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	first, err := svc.Publish(ctx, teacher, publish(student, 3, 7.5, `{"Maths": "B"}`))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	second, err := svc.Publish(ctx, teacher, publish(student, 3, 8.2, `{"Maths": "A"}`))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("republish created a new result: %s != %s", second.ID, first.ID)
	}
	if second.SGPA == nil || *second.SGPA != 8.2 {
		t.Errorf("sgpa = %v", second.SGPA)
	}

	var details map[string]string
	if err := json.Unmarshal(second.Details, &details); err != nil || details["Maths"] != "A" {
		t.Errorf("details = %s (%v)", second.Details, err)
	}

	var count int64
	db.Model(&entity.Result{}).Count(&count)
	if count != 1 {
		t.Errorf("result rows = %d, want 1", count)
	}
}

func TestForStudentAccessAndOrder(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	ravi := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)
	anu := testdb.CreateUser(t, db, "anu", entity.RoleStudent)

	for _, sem := range []int{2, 1, 3} {
		if _, err := svc.Publish(ctx, teacher, publish(ravi, sem, 8, "")); err != nil {
			t.Fatalf("Publish %d: %v", sem, err)
		}
	}

	if _, err := svc.ForStudent(ctx, anu, ravi.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("other student err = %v, want forbidden", err)
	}

	own, err := svc.ForStudent(ctx, ravi, ravi.ID)
	if err != nil {
		t.Fatalf("ForStudent: %v", err)
	}
	if len(own.Results) != 3 || own.Results[0].Semester != 1 || own.Results[2].Semester != 3 {
		t.Errorf("results = %+v", own.Results)
	}
	if own.Results[0].PostedBy.Username != "meera" {
		t.Errorf("posted_by = %+v", own.Results[0].PostedBy)
	}

	if _, err := svc.ForStudent(ctx, teacher, ravi.ID); err != nil {
		t.Errorf("staff view: %v", err)
	}
}

func TestDeleteResult(t *testing.T) {
	db, svc := newService(t)
	ctx := context.Background()
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	res, err := svc.Publish(ctx, teacher, publish(student, 1, 9, ""))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if err := svc.Delete(ctx, student, res.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("student delete err = %v", err)
	}
	if err := svc.Delete(ctx, teacher, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, teacher, res.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}
