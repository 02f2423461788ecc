package webutil

import (
	"log"
	"reflect"
	"strings"

	"go_climb_keep/internal/model"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"name":      "Name",
	"email":     "Email",
	"password":  "Password",
	"grade":     "Grade",
	"sessionId": "Session ID",
	"id":        "Project ID",
	"attempts":  "Attempts",
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// form タグ (なければ json タグ) からフィールド名を取得する
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("form")
		if tag == "" {
			tag = fld.Tag.Get("json")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// グレードの列挙チェック
	if err := Validator.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return model.IsGrade(fl.Field().String())
	}); err != nil {
		log.Fatal(err)
	}

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translateFieldName(fe.Field()), fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0} is required")
	registerTranslation("email", "{0} must be a valid email address")
	registerTranslation("grade", "Invalid grade")
	registerTranslation("min", "{0} must be at least {1} characters")
	registerTranslation("max", "{0} must be at most {1} characters")
}

func translateFieldName(field string) string {
	if translated, ok := fieldNameTranslations[field]; ok {
		return translated
	}
	return field
}
