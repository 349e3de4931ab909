package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		language string
		want     string
	}{
		{"nil error", nil, LanguageArabic, ""},
		{"english keeps the error text", fmt.Errorf("%w: %q", ErrColumnNotFound, "المنتج"), LanguageEnglish, `column not found: "المنتج"`},
		{"arabic sentinel", ErrNoMatches, LanguageArabic, "لم يتم العثور على أي منتجات تحتوي على العلامات المحددة"},
		{"arabic keeps the detail", fmt.Errorf("%w: %q", ErrColumnNotFound, "Brand"), LanguageArabic, `لم يتم العثور على العمود المطلوب في الملف: "Brand"`},
		{"specific error wins over its parent", ErrNoProducts, LanguageArabic, "لا توجد منتجات في العمود المحدد"},
		{"parent error", ErrEmptyInput, LanguageArabic, "الملف لا يحتوي على بيانات"},
		{"wrapped twice", fmt.Errorf("clean: %w", fmt.Errorf("%w: zip", ErrFileUnreadable)), LanguageArabic, "خطأ في قراءة الملف"},
		{"upload too large", fmt.Errorf("%w: limit is 1024 bytes", ErrUploadTooLarge), LanguageArabic, "حجم الملف يتجاوز الحد المسموح: limit is 1024 bytes"},
		{"unknown error", errors.New("boom"), LanguageArabic, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err, tt.language); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureResults(t *testing.T) {
	detection := DetectionFailure(ErrNoProducts, LanguageEnglish)
	if detection.Success || detection.Error != ErrNoProducts.Error() || len(detection.Brands) != 0 {
		t.Errorf("DetectionFailure() = %+v, want failed result with error text", detection)
	}

	extraction := ExtractionFailure(ErrNoMatches, LanguageArabic)
	if extraction.Success || extraction.Error == "" || extraction.OutputPath != "" {
		t.Errorf("ExtractionFailure() = %+v, want failed result with error text", extraction)
	}
}
