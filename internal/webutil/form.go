package webutil

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HTMLフォームは GET/POST しか送れないため、それ以外のメソッドは
// POST ボディの隠しフィールドで運びます。
const (
	// HiddenMethodField はフォームに埋め込む隠しフィールド名です
	HiddenMethodField = "_method"
	// MethodKey はデコード後のメソッドを書き戻すキーです
	MethodKey = "method"
)

const (
	MethodGet    = "get"
	MethodPost   = "post"
	MethodPut    = "put"
	MethodPatch  = "patch"
	MethodDelete = "delete"
)

var (
	// ErrUnsupportedMethod はエンコードできない論理メソッドです
	ErrUnsupportedMethod = errors.New("unsupported form method")
	// ErrInvalidMethod はデコード結果が既知のメソッドでない場合のエラーです
	ErrInvalidMethod = errors.New("invalid form method")
)

var knownMethods = map[string]struct{}{
	MethodGet:    {},
	MethodPost:   {},
	MethodPut:    {},
	MethodPatch:  {},
	MethodDelete: {},
}

// FormEncoding は論理メソッドをフォームで送るときの表現です。
// Hidden が空でなければ隠しフィールドとして送ります。
type FormEncoding struct {
	Method string
	Hidden string
}

// EncodeFormMethod は論理メソッドをフォームの送信メソッドと隠しフィールドに変換します。
// 大文字小文字は区別します。
func EncodeFormMethod(logical string) (FormEncoding, error) {
	switch logical {
	case "", MethodGet:
		return FormEncoding{Method: MethodGet}, nil
	case MethodPost:
		return FormEncoding{Method: MethodPost}, nil
	case MethodPut, MethodPatch, MethodDelete:
		return FormEncoding{Method: MethodPost, Hidden: logical}, nil
	default:
		return FormEncoding{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, logical)
	}
}

// Apply は隠しフィールドが必要な場合に values へ追加します
func (e FormEncoding) Apply(values url.Values) url.Values {
	if values == nil {
		values = url.Values{}
	}
	if e.Hidden != "" {
		values.Set(HiddenMethodField, e.Hidden)
	}
	return values
}

// DecodeFormMethod はリクエストのフォームを読み、実効メソッドを決定します。
// 優先順位は _method、クライアントが送った method、トランスポートのメソッドの順です。
// 決定したメソッドは method キーに書き戻されます。
func DecodeFormMethod(w http.ResponseWriter, r *http.Request) (url.Values, string, error) {
	form, err := ParseForm(w, r)
	if err != nil {
		return nil, "", err
	}
	method, err := ResolveFormMethod(form, r.Method)
	if err != nil {
		return form, "", err
	}
	return form, method, nil
}

// ResolveFormMethod は解析済みのフォームから実効メソッドを決定し、method キーに書き戻します
func ResolveFormMethod(form url.Values, transport string) (string, error) {
	raw := transport
	if v, ok := form[HiddenMethodField]; ok && len(v) > 0 {
		raw = v[0]
	} else if v, ok := form[MethodKey]; ok && len(v) > 0 {
		raw = v[0]
	}

	method := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := knownMethods[method]; !ok {
		return "", &InvalidMethodError{Raw: raw}
	}
	form.Set(MethodKey, method)
	return method, nil
}

// InvalidMethodError はデコードできなかったメソッドの生の値を保持します
type InvalidMethodError struct {
	Raw string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidMethod, e.Raw)
}

func (e *InvalidMethodError) Unwrap() error {
	return ErrInvalidMethod
}
