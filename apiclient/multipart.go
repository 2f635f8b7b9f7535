package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/ray-remotestate/padipos/models"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type formField struct {
	name  string
	value string
}

// multipartRequest encodes fields and an optional file part. Field order is
// preserved so request bodies stay deterministic.
func multipartRequest(method, path, token string, fields []formField, fileField string, file *models.ImageUpload) (request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return request{}, fmt.Errorf("encode field %s: %w", f.name, err)
		}
	}

	if file != nil {
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(fileField), quoteEscaper.Replace(file.Filename)))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return request{}, fmt.Errorf("encode %s: %w", fileField, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return request{}, fmt.Errorf("encode %s: %w", fileField, err)
		}
	}

	if err := w.Close(); err != nil {
		return request{}, err
	}

	return request{
		method:      method,
		path:        path,
		token:       token,
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil
}
