package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/admin/dto"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
)

func TestGetAllUsersFiltersByRole(t *testing.T) {
	db := testdb.New(t)
	svc := NewAdminService(userRepo.NewUserRepository(db))
	testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	testdb.CreateUser(t, db, "ravi", entity.RoleStudent)
	testdb.CreateUser(t, db, "anu", entity.RoleStudent)

	all, err := svc.GetAllUsers(context.Background(), dto.UserFilter{})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}

	students, err := svc.GetAllUsers(context.Background(), dto.UserFilter{Role: entity.RoleStudent})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("students = %d, want 2", len(students))
	}
	for _, u := range students {
		if u.Role != entity.RoleStudent {
			t.Errorf("unexpected role %s", u.Role)
		}
	}
}

func TestUpdateRole(t *testing.T) {
	db := testdb.New(t)
	svc := NewAdminService(userRepo.NewUserRepository(db))
	ctx := context.Background()
	admin := testdb.CreateUser(t, db, "root", entity.RoleAdmin)
	teacher := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	student := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	res, err := svc.UpdateRole(ctx, admin, student.ID, dto.UpdateRoleInput{Role: entity.RoleCR})
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if res.Role != entity.RoleCR {
		t.Errorf("role = %s, want cr", res.Role)
	}

	cases := []struct {
		name  string
		actor *entity.User
		id    uuid.UUID
		role  string
		want  error
	}{
		{"non admin", teacher, student.ID, entity.RoleTeacher, apperror.ErrForbidden},
		{"unknown role", admin, student.ID, "principal", apperror.ErrInvalidInput},
		{"own role", admin, admin.ID, entity.RoleStudent, apperror.ErrInvalidInput},
		{"unknown user", admin, uuid.New(), entity.RoleStudent, apperror.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateRole(ctx, tc.actor, tc.id, dto.UpdateRoleInput{Role: tc.role})
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPromotedAdminCanManageRoles(t *testing.T) {
	db := testdb.New(t)
	svc := NewAdminService(userRepo.NewUserRepository(db))
	ctx := context.Background()
	root := testdb.CreateUser(t, db, "root", entity.RoleAdmin)
	meera := testdb.CreateUser(t, db, "meera", entity.RoleTeacher)
	ravi := testdb.CreateUser(t, db, "ravi", entity.RoleStudent)

	if _, err := svc.UpdateRole(ctx, root, meera.ID, dto.UpdateRoleInput{Role: entity.RoleAdmin}); err != nil {
		t.Fatalf("promote: %v", err)
	}

	promoted, err := userRepo.NewUserRepository(db).FindByID(ctx, meera.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if promoted.Role != entity.RoleAdmin {
		t.Fatalf("role = %s, want admin", promoted.Role)
	}

	if _, err := svc.UpdateRole(ctx, promoted, ravi.ID, dto.UpdateRoleInput{Role: entity.RoleCR}); err != nil {
		t.Errorf("promoted admin UpdateRole: %v", err)
	}
}
