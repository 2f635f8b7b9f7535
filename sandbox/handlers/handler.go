// Package handlers implements the sandbox's REST endpoints on top of the
// in-memory database.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/database"
	"github.com/ray-remotestate/padipos/sandbox/middlewares"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

const maxUploadBytes = 5 << 20

type Handler struct {
	DB         *database.DB
	Secret     []byte
	TaxPercent int
	Now        func() time.Time
}

func New(db *database.DB, secret []byte, taxPercent int) *Handler {
	return &Handler{DB: db, Secret: secret, TaxPercent: taxPercent, Now: time.Now}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	return dec.Decode(v)
}

func pathID(r *http.Request) models.ID {
	return models.ID(mux.Vars(r)["id"])
}

func currentUser(r *http.Request) (models.ID, error) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		return "", err
	}
	return models.ID(claims.UserID), nil
}

// notFoundOr maps a database miss to 404 and anything else to 500.
func notFoundOr(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, database.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, what+" not found")
		return
	}
	logrus.WithError(err).Errorf("failed to load %s", strings.ToLower(what))
	utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
}

func parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

// formValue reports the field's value and whether it was sent at all.
func formValue(r *http.Request, name string) (string, bool) {
	vs, ok := r.MultipartForm.Value[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

// saveImage stores the uploaded file under field and returns its public
// path. ok is false when no file was sent.
func (h *Handler) saveImage(r *http.Request, field string) (path string, ok bool, err error) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return "", false, nil
	}
	fh := files[0]
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", true, fmt.Errorf("%s must be an image", field)
	}
	data, err := readFile(fh)
	if err != nil {
		return "", true, err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	h.DB.SaveUpload(name, database.Upload{ContentType: contentType, Data: data})
	return "/uploads/" + name, true, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ServeUpload returns a stored image blob.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	u, err := h.DB.GetUpload(mux.Vars(r)["name"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", u.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(u.Data); err != nil {
		logrus.WithError(err).Error("failed to write upload")
	}
}
