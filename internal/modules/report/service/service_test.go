package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"teamnexus.com/collegeportal/internal/entity"
	reportDto "teamnexus.com/collegeportal/internal/modules/report/dto"
	reportRepo "teamnexus.com/collegeportal/internal/modules/report/repository"
	"teamnexus.com/collegeportal/internal/realtime"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
)

type recorder struct {
	payloads []realtime.ReportPayload
}

func (r *recorder) Publish(event string, data any) {
	if event == realtime.EventReportContent {
		r.payloads = append(r.payloads, data.(realtime.ReportPayload))
	}
}

func TestReportLifecycle(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	pub := &recorder{}
	svc := NewReportService(reportRepo.NewReportRepository(db), pub)

	student := testdb.CreateUser(t, db, "hari", entity.RoleStudent)
	admin := testdb.CreateUser(t, db, "root", entity.RoleAdmin)

	post := entity.Post{AuthorID: student.ID, Title: "Rumour", Content: "exam cancelled"}
	db.Create(&post)
	comment := entity.Comment{PostID: post.ID, AuthorID: admin.ID, Content: "not true"}
	db.Create(&comment)

	first, err := svc.CreateReport(ctx, student, reportDto.CreateReportRequest{PostID: post.ID.String(), Reason: "misinformation"})
	if err != nil {
		t.Fatalf("CreateReport(post): %v", err)
	}
	second, err := svc.CreateReport(ctx, student, reportDto.CreateReportRequest{CommentID: comment.ID.String(), Reason: "rude"})
	if err != nil {
		t.Fatalf("CreateReport(comment): %v", err)
	}

	var reloaded entity.Post
	db.First(&reloaded, "id = ?", post.ID)
	if !reloaded.IsReported || reloaded.IsDeleted {
		t.Errorf("post flags reported=%v deleted=%v", reloaded.IsReported, reloaded.IsDeleted)
	}
	var reloadedComment entity.Comment
	db.First(&reloadedComment, "id = ?", comment.ID)
	if !reloadedComment.IsReported {
		t.Error("comment not flagged")
	}

	if len(pub.payloads) != 2 || pub.payloads[0].Reporter != "Hari" || *pub.payloads[0].PostID != post.ID || pub.payloads[0].CommentID != nil {
		t.Errorf("payloads = %+v", pub.payloads)
	}

	if _, err := svc.ListReports(ctx, student); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("ListReports(student) = %v, want forbidden", err)
	}

	reports, err := svc.ListReports(ctx, admin)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 2 || reports[0].ID != second.ID || reports[1].ID != first.ID {
		t.Errorf("reports not newest first: %+v", reports)
	}

	if _, err := svc.ResolveReport(ctx, student, first.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("ResolveReport(student) = %v, want forbidden", err)
	}
	for i := 0; i < 2; i++ {
		res, err := svc.ResolveReport(ctx, admin, first.ID)
		if err != nil {
			t.Fatalf("ResolveReport #%d: %v", i, err)
		}
		if !res.IsResolved {
			t.Errorf("ResolveReport #%d not resolved", i)
		}
	}
	if _, err := svc.ResolveReport(ctx, admin, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ResolveReport(missing) = %v, want not found", err)
	}
}

func TestCreateReportRejects(t *testing.T) {
	db := testdb.New(t)
	svc := NewReportService(reportRepo.NewReportRepository(db), nil)
	user := testdb.CreateUser(t, db, "ira", entity.RoleStudent)

	deleted := entity.Post{AuthorID: user.ID, Title: "old", Content: "x", IsDeleted: true}
	db.Create(&deleted)

	cases := []struct {
		name string
		req  reportDto.CreateReportRequest
		want error
	}{
		{"no target", reportDto.CreateReportRequest{Reason: "?"}, apperror.ErrInvalidInput},
		{"missing post", reportDto.CreateReportRequest{PostID: uuid.NewString()}, apperror.ErrNotFound},
		{"deleted post", reportDto.CreateReportRequest{PostID: deleted.ID.String()}, apperror.ErrNotFound},
		{"bad id", reportDto.CreateReportRequest{CommentID: "12"}, apperror.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateReport(context.Background(), user, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	var n int64
	db.Model(&entity.Report{}).Count(&n)
	if n != 0 {
		t.Errorf("reports = %d, want 0", n)
	}
}
