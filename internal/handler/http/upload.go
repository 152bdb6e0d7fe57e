package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/service"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/httputil"
)

// multipart field carrying the image file.
const uploadFieldName = "productImg"

// UploadImage handles POST /products/{productId}/uploadImage (multipart/form-data).
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	// Parse multipart form with max file size limit.
	maxSize := int64(domain.MaxImageSize) + (1 << 20) // Add 1MB overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(domain.MaxImageSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: uploadFieldName + " file is required: " + err.Error()},
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &service.AttachImageInput{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	}

	product, err := h.service.AttachImage(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message":  "image uploaded successfully",
		"imageUrl": product.ImageURL,
	})
}
