package handlers

import (
	"errors"
	"net/http"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/service"
	"go_climb_keep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service service.AuthService
	cookies *middleware.SessionCookies
}

func NewAuthHandler(s service.AuthService, cookies *middleware.SessionCookies) *AuthHandler {
	return &AuthHandler{service: s, cookies: cookies}
}

// Home はログイン中ユーザーの表示名を返します
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"name": middleware.GetUserNameFromContext(r.Context()),
	}, logger)
}

// Private はログイン中ユーザーのメールアドレスを返します
func (h *AuthHandler) Private(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"email": middleware.GetUserEmailFromContext(r.Context()),
	}, logger)
}

// Logout はセッションCookieを削除してログイン画面に戻します
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	h.cookies.Clear(w)
	logger.Info("User logged out")
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// LoginPage は直前のログイン失敗メッセージ (あれば) を返します
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if _, _, err := h.cookies.Parse(r); err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var loginErr *model.LoginError
	if message := h.cookies.PopFlash(w, r); message != "" {
		loginErr = &model.LoginError{Message: message}
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]*model.LoginError{"error": loginErr}, logger)
}

// Login は資格情報を検証し、成功したらセッションCookieを発行します。
// 失敗時はフラッシュCookieにメッセージを入れて /login に戻します。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	form, err := webutil.ParseForm(w, r)
	if err != nil {
		h.failLogin(w, r, err)
		return
	}

	var req model.LoginRequest
	if err := webutil.DecodeForm(form, &req); err != nil {
		h.failLogin(w, r, err)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for login", "errors", validationErrors.Error())
			h.failLogin(w, r, webutil.NewValidationErrorResponse(validationErrors))
			return
		}
		h.failLogin(w, r, err)
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.failLogin(w, r, err)
		return
	}

	if err := h.cookies.Issue(w, user); err != nil {
		logger.Error("Failed to issue session cookie", "error", err)
		h.failLogin(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, err error) {
	message := "Something went wrong"
	var appErr *model.AppError
	if errors.As(err, &appErr) && webutil.MapErrorToStatusCode(err) < http.StatusInternalServerError {
		message = appErr.Detail.Message
	} else {
		middleware.GetLogger(r.Context()).Error("Login failed unexpectedly", "error", err)
	}
	h.cookies.SetFlash(w, message)
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// CreateAccountPage はアカウント作成画面です。ログイン済みなら /private に移動します。
func (h *AuthHandler) CreateAccountPage(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if _, _, err := h.cookies.Parse(r); err == nil {
		http.Redirect(w, r, "/private", http.StatusFound)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct{}{}, logger)
}

// CreateAccount は新規ユーザーを登録し、確認メールを送信します
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	form, err := webutil.ParseForm(w, r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SignUpRequest
	if err := webutil.DecodeForm(form, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for sign up", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for sign up", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	user, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		var appErr *model.AppError
		if !errors.As(err, &appErr) {
			err = model.NewAppError("INTERNAL_SERVER_ERROR", service.MsgFailedCreateUser, "", err)
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Account created, verification email sent", "user_id", user.ID)
	webutil.RespondWithJSON(w, http.StatusCreated, user, logger)
}

// VerifyEmail はメール内リンクのトークンでメールアドレスを確認済みにします
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn("Verification attempt with no token")
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "No token provided", "token", model.ErrInvalidInput))
		return
	}
	logger = logger.With("token_prefix", token[:min(8, len(token))])

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Email successfully verified")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Email confirmed. You can now log in.",
	}, logger)
}
