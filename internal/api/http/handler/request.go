package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to disk.
const multipartMemory = 1 << 20

// maxJSONBytes bounds JSON request bodies.
const maxJSONBytes = 64 << 10

// sniffLen is the number of bytes http.DetectContentType looks at.
const sniffLen = 512

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierror.NewErrValidation(apierror.FieldError{Field: "body", Message: "is too large"})
		}
		return apierror.NewErrValidation(apierror.FieldError{Field: "body", Message: "must be valid JSON"})
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart parses the form of r, reporting oversized bodies as validation errors.
func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierror.NewErrValidation(apierror.FieldError{Field: "body", Message: "is too large"})
		}
		return apierror.NewErrValidation(apierror.FieldError{Field: "body", Message: "must be a valid multipart form"})
	}
	return nil
}

// removeForm deletes the temporary files of a parsed multipart form.
func removeForm(r *http.Request, logger *logger.Logger) {
	if err := r.MultipartForm.RemoveAll(); err != nil {
		logger.Warn("HTTP: failed to remove multipart files",
			"path", r.URL.Path,
			"error", err.Error())
	}
}

// formValue returns the named form value and whether the client sent it at all.
func formValue(r *http.Request, name string) (*string, bool) {
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil, false
	}
	v := values[0]
	return &v, true
}

// formImage opens the named file of a parsed multipart form. It returns nil when
// the field is absent. The returned close func must be called once the upload is consumed.
func formImage(r *http.Request, name string) (*model.Upload, func(), error) {
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		return nil, func() {}, nil
	}
	header := headers[0]

	file, err := header.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open %s: %w", name, err)
	}
	closeFile := func() { _ = file.Close() }

	contentType, err := sniffImage(file)
	if err != nil {
		closeFile()
		return nil, func() {}, err
	}
	if contentType == "" {
		closeFile()
		return nil, func() {}, apierror.NewErrValidation(apierror.FieldError{Field: name, Message: "must be an image"})
	}

	return &model.Upload{
		Reader:      file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: contentType,
	}, closeFile, nil
}

// sniffImage detects the content type of file and rewinds it. It returns an
// empty string for anything that is not an image.
func sniffImage(file multipart.File) (string, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil
	}
	return contentType, nil
}

// checkUploadSize rejects uploads larger than limit.
func checkUploadSize(field string, upload *model.Upload, limit int64) error {
	if upload == nil || upload.Size <= limit {
		return nil
	}
	return apierror.NewErrValidation(apierror.FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be at most %d bytes", limit),
	})
}
