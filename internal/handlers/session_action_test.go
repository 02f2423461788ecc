package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"go_climb_keep/internal/handlers"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/webutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionAction(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		want       handlers.SessionAction
		wantStatus int
		wantMsg    string
	}{
		{
			name: "post はプロジェクト作成",
			form: url.Values{"method": {"post"}, "sessionId": {"4"}, "grade": {"v3_v4"}},
			want: handlers.CreateProjectAction{SessionID: 4, Grade: model.GradeV3V4},
		},
		{
			name:       "post で sessionId なし",
			form:       url.Values{"method": {"post"}, "grade": {"v3_v4"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    handlers.MsgNoSessionID,
		},
		{
			name:       "post で sessionId が数値でない",
			form:       url.Values{"method": {"post"}, "sessionId": {"abc"}, "grade": {"v3_v4"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    handlers.MsgNoSessionID,
		},
		{
			name:       "post で未知のグレード",
			form:       url.Values{"method": {"post"}, "sessionId": {"4"}, "grade": {"v99"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid grade",
		},
		{
			name:       "post で grade なし",
			form:       url.Values{"method": {"post"}, "sessionId": {"4"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid grade",
		},
		{
			name: "patch はトライ回数更新 (負の値もそのまま渡す)",
			form: url.Values{"method": {"patch"}, "id": {"9"}, "attempts": {"-2"}},
			want: handlers.UpdateAttemptsAction{ProjectID: 9, Attempts: -2},
		},
		{
			name:       "patch で attempts が数値でない",
			form:       url.Values{"method": {"patch"}, "id": {"9"}, "attempts": {"abc"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid attempts provided: abc",
		},
		{
			name:       "patch で attempts が小数",
			form:       url.Values{"method": {"patch"}, "id": {"9"}, "attempts": {"1.5"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid attempts provided: 1.5",
		},
		{
			name:       "patch で id なし",
			form:       url.Values{"method": {"patch"}, "attempts": {"1"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    handlers.MsgNoProjectID,
		},
		{
			name: "delete はプロジェクト削除",
			form: url.Values{"method": {"delete"}, "id": {"9"}},
			want: handlers.DeleteProjectAction{ProjectID: 9},
		},
		{
			name:       "delete で id が0",
			form:       url.Values{"method": {"delete"}, "id": {"0"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    handlers.MsgNoProjectID,
		},
		{
			name:       "put は未対応",
			form:       url.Values{"method": {"put"}, "id": {"9"}},
			wantStatus: http.StatusNotImplemented,
			wantMsg:    "Unsupported method put",
		},
		{
			name:       "get は未対応",
			form:       url.Values{"method": {"get"}},
			wantStatus: http.StatusNotImplemented,
			wantMsg:    "Unsupported method get",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handlers.ParseSessionAction(tt.form)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.wantStatus, webutil.MapErrorToStatusCode(err))
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantMsg, appErr.Detail.Message)
		})
	}
}
