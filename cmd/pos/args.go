package main

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ray-remotestate/padipos/models"
)

var errUsage = errors.New("usage")

// splitArgs splits a command line on spaces, keeping double-quoted runs
// together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case r == ' ' && !quoted:
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if pending {
		args = append(args, cur.String())
	}
	return args, nil
}

// keyValues parses key=value arguments. Unknown keys are rejected.
func keyValues(args []string, allowed ...string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || !slices.Contains(allowed, k) {
			return nil, errUsage
		}
		out[k] = v
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := models.ParseDay(s)
	if err != nil {
		return time.Time{}, models.Invalid("date", "must be YYYY-MM-DD")
	}
	return d.Time, nil
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

// loadImage reads an image file for upload.
func loadImage(path string) (*models.ImageUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &models.ImageUpload{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
