// Package policy decides who may create, edit and delete portal records.
// Every function here is a pure predicate; callers check before mutating.
package policy

import (
	"github.com/google/uuid"
	"teamnexus.com/collegeportal/internal/entity"
)

type Action string

const (
	ActionCreateAnnouncement Action = "create_announcement"
	ActionEditAnnouncement   Action = "edit_announcement"
	ActionDeleteAnnouncement Action = "delete_announcement"
	ActionCreateEvent        Action = "create_event"
	ActionEditEvent          Action = "edit_event"
	ActionDeleteEvent        Action = "delete_event"
	ActionUploadNote         Action = "upload_note"
	ActionDeleteNote         Action = "delete_note"
	ActionDeletePost         Action = "delete_post"
	ActionDeleteComment      Action = "delete_comment"
	ActionPurgePost          Action = "purge_post"
	ActionViewReports        Action = "view_reports"
	ActionResolveReport      Action = "resolve_report"
	ActionManageTags         Action = "manage_tags"
	ActionMarkAttendance     Action = "mark_attendance"
	ActionManageTimetable    Action = "manage_timetable"
	ActionPublishResult      Action = "publish_result"
	ActionViewFeedback       Action = "view_feedback"
	ActionRevealFeedback     Action = "reveal_feedback_author"
	ActionDeleteFeedback     Action = "delete_feedback"
)

// Resource is anything owned by exactly one user.
type Resource interface {
	OwnerID() uuid.UUID
}

var (
	posterRoles   = []string{entity.RoleTeacher, entity.RoleAdmin, entity.RoleCR}
	uploaderRoles = []string{entity.RoleTeacher, entity.RoleAdmin}
	staffRoles    = []string{entity.RoleTeacher, entity.RoleFaculty, entity.RoleAdmin}
)

// CanModerate reports whether user may perform action on res. res may be nil
// for create actions and queue views.
//
// Announcement and event edits require ownership even for admins; post and
// comment deletes allow an admin override.
func CanModerate(user *entity.User, action Action, res Resource) bool {
	if user == nil {
		return false
	}

	switch action {
	case ActionCreateAnnouncement, ActionCreateEvent:
		return user.HasRole(posterRoles...)

	case ActionEditAnnouncement, ActionDeleteAnnouncement, ActionEditEvent, ActionDeleteEvent:
		return user.HasRole(posterRoles...) && owns(user, res)

	case ActionUploadNote:
		return user.HasRole(uploaderRoles...)

	case ActionDeleteNote:
		return user.Role == entity.RoleAdmin || (user.HasRole(uploaderRoles...) && owns(user, res))

	case ActionDeletePost, ActionDeleteComment:
		return user.Role == entity.RoleAdmin || owns(user, res)

	case ActionViewReports, ActionResolveReport, ActionManageTags, ActionPurgePost,
		ActionRevealFeedback, ActionDeleteFeedback:
		return user.Role == entity.RoleAdmin

	case ActionMarkAttendance, ActionManageTimetable, ActionPublishResult, ActionViewFeedback:
		return user.HasRole(staffRoles...)
	}

	return false
}

func owns(user *entity.User, res Resource) bool {
	if res == nil {
		return false
	}
	return res.OwnerID() == user.ID
}
