package handlers

import (
	"fmt"
	"net/url"

	"go_climb_keep/internal/model"
	"go_climb_keep/internal/service"
	"go_climb_keep/internal/webutil"
)

const (
	MsgNoSessionID       = "No session ID provided"
	MsgNoProjectID       = "No project ID provided"
	MsgInvalidAttemptsFm = "Invalid attempts provided: %s"
	MsgUnsupportedFm     = "Unsupported method %s"
)

// SessionAction は POST /sessions/new で受け付ける操作です。
// CreateProjectAction, UpdateAttemptsAction, DeleteProjectAction のいずれかです。
type SessionAction interface {
	sessionAction()
}

type CreateProjectAction struct {
	SessionID uint
	Grade     model.Grade
}

type UpdateAttemptsAction struct {
	ProjectID uint
	Attempts  int
}

type DeleteProjectAction struct {
	ProjectID uint
}

func (CreateProjectAction) sessionAction()  {}
func (UpdateAttemptsAction) sessionAction() {}
func (DeleteProjectAction) sessionAction()  {}

// createProjectForm は grade の列挙チェックをバリデータに任せるためのDTOです
type createProjectForm struct {
	Grade string `form:"grade" validate:"required,grade"`
}

// ParseSessionAction はデコード済みフォームの method キーと必須フィールドから操作を組み立てます。
// 必須フィールドの欠落や不正は 400、未対応のメソッドは 501 の AppError です。
func ParseSessionAction(form url.Values) (SessionAction, error) {
	method := form.Get(webutil.MethodKey)

	switch method {
	case webutil.MethodPost:
		sessionID, ok := webutil.ParseFormID(form, "sessionId")
		if !ok {
			return nil, model.NewAppError("INVALID_SESSION_ID", MsgNoSessionID, "sessionId", model.ErrInvalidInput)
		}
		var req createProjectForm
		if err := webutil.DecodeForm(form, &req); err != nil {
			return nil, err
		}
		if err := webutil.Validator.Struct(req); err != nil {
			return nil, model.NewAppError("INVALID_GRADE", service.MsgInvalidGrade, "grade", model.ErrInvalidGrade)
		}
		return CreateProjectAction{SessionID: sessionID, Grade: model.Grade(req.Grade)}, nil

	case webutil.MethodPatch:
		projectID, ok := webutil.ParseFormID(form, "id")
		if !ok {
			return nil, model.NewAppError("INVALID_PROJECT_ID", MsgNoProjectID, "id", model.ErrInvalidInput)
		}
		attempts, ok := webutil.ParseFormInt(form, "attempts")
		if !ok {
			return nil, model.NewAppError("INVALID_ATTEMPTS", fmt.Sprintf(MsgInvalidAttemptsFm, form.Get("attempts")), "attempts", model.ErrInvalidInput)
		}
		return UpdateAttemptsAction{ProjectID: projectID, Attempts: attempts}, nil

	case webutil.MethodDelete:
		projectID, ok := webutil.ParseFormID(form, "id")
		if !ok {
			return nil, model.NewAppError("INVALID_PROJECT_ID", MsgNoProjectID, "id", model.ErrInvalidInput)
		}
		return DeleteProjectAction{ProjectID: projectID}, nil

	default:
		return nil, unsupportedMethodError(method)
	}
}

func unsupportedMethodError(method string) error {
	return model.NewAppError("UNSUPPORTED_METHOD", fmt.Sprintf(MsgUnsupportedFm, method), "", model.ErrNotImplemented)
}
