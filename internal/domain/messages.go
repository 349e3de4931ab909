package domain

import (
	"errors"
	"strings"
)

// Supported message languages
const (
	LanguageArabic  = "ar"
	LanguageEnglish = "en"
)

type localizedMessage struct {
	err error
	ar  string
}

// arabicMessages is ordered so that more specific errors are matched first
var arabicMessages = []localizedMessage{
	{ErrNoProducts, "لا توجد منتجات في العمود المحدد"},
	{ErrColumnNotFound, "لم يتم العثور على العمود المطلوب في الملف"},
	{ErrNoMatches, "لم يتم العثور على أي منتجات تحتوي على العلامات المحددة"},
	{ErrFileUnreadable, "خطأ في قراءة الملف"},
	{ErrFileNotFound, "الملف غير موجود"},
	{ErrEmptyInput, "الملف لا يحتوي على بيانات"},
	{ErrInvalidRequest, "طلب غير صالح"},
	{ErrOutputNotFound, "الملف الناتج غير موجود أو انتهت صلاحيته"},
	{ErrUploadTooLarge, "حجم الملف يتجاوز الحد المسموح"},
	{ErrRateLimited, "تم تجاوز الحد المسموح من الطلبات"},
	{ErrUnexpectedFailure, "حدث خطأ غير متوقع"},
}

// Message renders err as a human-readable string in the requested language.
// Arabic messages keep the detail that follows the sentinel text (e.g. the column name).
func Message(err error, language string) string {
	if err == nil {
		return ""
	}
	if language != LanguageArabic {
		return err.Error()
	}

	for _, m := range arabicMessages {
		if !errors.Is(err, m.err) {
			continue
		}
		if detail := detailOf(err, m.err); detail != "" {
			return m.ar + ": " + detail
		}
		return m.ar
	}
	return err.Error()
}

// detailOf returns whatever err adds after the sentinel's own text
func detailOf(err, sentinel error) string {
	full := err.Error()
	prefix := sentinel.Error()
	if !strings.HasPrefix(full, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(full, prefix), ":"))
}
