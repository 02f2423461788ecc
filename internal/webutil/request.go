package webutil

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"go_climb_keep/internal/model"
)

// maxFormBytes はフォームボディの上限です
const maxFormBytes = 1 << 20

// ParseForm はリクエストのフォームボディを読み取り、PostForm を返します
func ParseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	if r.Body != nil && w != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	}
	if err := r.ParseForm(); err != nil {
		return nil, model.NewAppError("INVALID_REQUEST_BODY", "Invalid form body", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return r.PostForm, nil
}

// DecodeForm は form タグを持つ構造体の string フィールドにフォーム値を詰めます。
// 値の検証は Validator に任せます。
func DecodeForm(values url.Values, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("DecodeForm: dst must be a pointer to struct, got %T", dst)
	}
	elem := rv.Elem()
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		key := field.Tag.Get("form")
		if key == "" || key == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		elem.Field(i).SetString(values.Get(key))
	}
	return nil
}

// ParseFormNumber はフォーム値を数値として読みます。
// 値がない、空、数値でない、有限でない場合は ok=false を返します。
func ParseFormNumber(values url.Values, key string) (float64, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseFormID は正の整数のIDを読みます
func ParseFormID(values url.Values, key string) (uint, bool) {
	n, ok := ParseFormNumber(values, key)
	if !ok || n < 1 || n != math.Trunc(n) || n > math.MaxUint32 {
		return 0, false
	}
	return uint(n), true
}

// ParseFormInt は整数値を読みます。小数は受け付けません。
func ParseFormInt(values url.Values, key string) (int, bool) {
	n, ok := ParseFormNumber(values, key)
	if !ok || n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}
