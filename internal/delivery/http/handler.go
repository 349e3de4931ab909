package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sallamerger/backend/internal/domain"
	"github.com/sallamerger/backend/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandlerConfig holds presentation settings for the HTTP handlers
type HandlerConfig struct {
	Language       string
	PreviewRows    int
	MaxUploadBytes int64
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	listing        *usecase.ListingService
	language       string
	previewRows    int
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler.
// A nil listing service makes the listing endpoints answer 501.
func NewHandler(listing *usecase.ListingService, config HandlerConfig) *Handler {
	language := config.Language
	if language == "" {
		language = domain.LanguageArabic
	}

	previewRows := config.PreviewRows
	if previewRows <= 0 {
		previewRows = 20
	}

	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 20 << 20
	}

	return &Handler{
		listing:        listing,
		language:       language,
		previewRows:    previewRows,
		maxUploadBytes: maxUpload,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sallamerger-backend",
		"version": "1.0.0",
	})
}

// CleanListing normalizes an uploaded workbook and keeps the result for download
func (h *Handler) CleanListing(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	data, name, err := h.readUpload(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.listing.Clean(c.Request.Context(), data)
	if err != nil {
		h.fail(c, err)
		return
	}

	outputID, err := h.listing.SaveOutput(c.Request.Context(), outputName(name, "_cleaned"), result.Workbook)
	if err != nil {
		h.fail(c, err)
		return
	}

	preview := result.Table.Preview(h.previewRows)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"output_id":    outputID,
		"header":       result.Table.Header,
		"header_row":   result.HeaderRow,
		"row_count":    len(result.Table.Rows),
		"column_count": len(result.Table.Header),
		"preview":      preview.Records(),
	})
}

// DetectBrands suggests brand names found in the product column of an uploaded workbook
func (h *Handler) DetectBrands(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	data, _, err := h.readUpload(c)
	if err != nil {
		h.failDetection(c, err)
		return
	}

	request := usecase.DetectRequest{ProductColumn: c.PostForm("product_column")}
	if raw := c.PostForm("min_frequency"); raw != "" {
		minFrequency, err := strconv.Atoi(raw)
		if err != nil || minFrequency < 1 {
			h.failDetection(c, fmt.Errorf("%w: min_frequency must be a positive integer", domain.ErrInvalidRequest))
			return
		}
		request.MinFrequency = minFrequency
	}

	result, err := h.listing.DetectBrands(c.Request.Context(), data, request)
	if err != nil {
		h.failDetection(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExtractBrands keeps the uploaded rows that mention one of the selected brands
func (h *Handler) ExtractBrands(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	data, name, err := h.readUpload(c)
	if err != nil {
		h.failExtraction(c, err)
		return
	}

	var brands []string
	if err := json.Unmarshal([]byte(c.PostForm("brands")), &brands); err != nil {
		h.failExtraction(c, fmt.Errorf("%w: brands must be a JSON array of strings", domain.ErrInvalidRequest))
		return
	}

	result, workbook, err := h.listing.ExtractBrands(c.Request.Context(), data, usecase.ExtractRequest{
		ProductColumn: c.PostForm("product_column"),
		Brands:        brands,
	})
	if err != nil {
		h.failExtraction(c, err)
		return
	}

	outputID, err := h.listing.SaveOutput(c.Request.Context(), outputName(name, "_filtered_brands"), workbook)
	if err != nil {
		h.failExtraction(c, err)
		return
	}
	result.OutputID = outputID

	c.JSON(http.StatusOK, result)
}

// DownloadOutput streams a workbook produced by an earlier request
func (h *Handler) DownloadOutput(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	file, err := h.listing.GetOutput(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, xlsxContentType, file.Data)
}

// configured answers 501 when the handler was built without a listing service
func (h *Handler) configured(c *gin.Context) bool {
	if h.listing != nil {
		return true
	}
	c.JSON(http.StatusNotImplemented, gin.H{
		"success": false,
		"error":   "listing service not configured",
	})
	return false
}

// readUpload reads the multipart "file" field, bounded by the upload limit
func (h *Handler) readUpload(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", fmt.Errorf("%w: limit is %d bytes", domain.ErrUploadTooLarge, tooLarge.Limit)
		}
		return nil, "", fmt.Errorf("%w: missing file upload: %v", domain.ErrInvalidRequest, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}

	return data, header.Filename, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"error":   domain.Message(err, h.language),
	})
}

func (h *Handler) failDetection(c *gin.Context, err error) {
	c.JSON(statusFor(err), domain.DetectionFailure(err, h.language))
}

func (h *Handler) failExtraction(c *gin.Context, err error) {
	c.JSON(statusFor(err), domain.ExtractionFailure(err, h.language))
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnNotFound),
		errors.Is(err, domain.ErrNoMatches),
		errors.Is(err, domain.ErrOutputNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFileUnreadable),
		errors.Is(err, domain.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// outputName derives the download name from the uploaded file name
func outputName(uploaded, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "listing"
	}
	return base + suffix + ".xlsx"
}
