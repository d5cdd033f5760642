package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/imaging"
	"github.com/kiranshivaraju/cardapio/internal/metrics"
	"github.com/kiranshivaraju/cardapio/internal/objectstore"
)

// Upload outcomes recorded in the uploads_total counter.
const (
	uploadStored   = "ok"
	uploadRejected = "rejected"
	uploadFailed   = "error"
)

type uploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// NewUploadHandler returns an http.HandlerFunc for POST /api/v1/admin/uploads.
// The multipart field "file" is compressed and stored under the caller's
// identity; the response carries its public URL.
func NewUploadHandler(store objectstore.Store, maxBytes int64, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		data, err := readUpload(w, r, maxBytes)
		if err != nil {
			m.Upload(uploadRejected)
			response.FromError(w, r, err)
			return
		}

		img, err := imaging.Compress(data)
		if err != nil {
			m.Upload(uploadRejected)
			response.FromError(w, r, err)
			return
		}

		key := objectstore.ObjectKey(identity, time.Now(), img.Ext)
		url, err := store.Put(r.Context(), key, img.ContentType, img.Data)
		if err != nil {
			m.Upload(uploadFailed)
			response.FromError(w, r, apperr.Store("uploading image", err))
			return
		}

		m.Upload(uploadStored)
		slog.Info("image uploaded",
			"identity", identity,
			"key", key,
			"original_bytes", len(data),
			"stored_bytes", len(img.Data),
		)
		response.Created(w, uploadResponse{
			URL:         url,
			Key:         key,
			ContentType: img.ContentType,
			Size:        len(img.Data),
		})
	}
}

// readUpload returns the bytes of the "file" form field, rejecting bodies
// larger than maxBytes.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, error) {
	// Leave headroom for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.Invalid("file", "exceeds the maximum upload size")
		}
		return nil, apperr.Invalid("file", "is required")
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, apperr.Invalid("file", "exceeds the maximum upload size")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, apperr.Invalid("file", "could not be read")
	}
	if int64(len(data)) > maxBytes {
		return nil, apperr.Invalid("file", "exceeds the maximum upload size")
	}
	if len(data) == 0 {
		return nil, apperr.Invalid("file", "is empty")
	}
	return data, nil
}
