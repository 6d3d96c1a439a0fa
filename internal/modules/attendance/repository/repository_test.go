package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/testdb"
)

func day(t *testing.T, value string) datatypes.Date {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %s: %v", value, err)
	}
	return datatypes.Date(d)
}

func TestOneRowPerStudentAndDay(t *testing.T) {
	db := testdb.New(t)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)

	first := &entity.Attendance{StudentID: student.ID, Date: day(t, "2025-03-05"), Status: "absent", MarkedBy: teacher.ID}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &entity.Attendance{StudentID: student.ID, Date: day(t, "2025-03-05"), Status: "present", MarkedBy: teacher.ID}
	if err := db.Create(dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert err = %v, want duplicated key", err)
	}
}

func TestMarkUpsertsExistingRow(t *testing.T) {
	db := testdb.New(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)
	meera := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	arjun := testdb.CreateUser(t, db, "arjun", entity.RoleFaculty)

	first := &entity.Attendance{StudentID: student.ID, Date: day(t, "2025-03-05"), Status: "absent", MarkedBy: meera.ID}
	if err := repo.Mark(ctx, first); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	originalID := first.ID

	second := &entity.Attendance{StudentID: student.ID, Date: day(t, "2025-03-05"), Status: "late", MarkedBy: arjun.ID}
	if err := repo.Mark(ctx, second); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	if second.ID != originalID {
		t.Errorf("id = %s, want the original %s", second.ID, originalID)
	}
	if second.Status != "late" || second.MarkedBy != arjun.ID || second.Marker.Username != "arjun" {
		t.Errorf("record = %+v", second)
	}

	var count int64
	db.Model(&entity.Attendance{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	other := &entity.Attendance{StudentID: student.ID, Date: day(t, "2025-03-06"), Status: "present", MarkedBy: meera.ID}
	if err := repo.Mark(ctx, other); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if other.ID == originalID {
		t.Error("a different day reused the same row")
	}
}
