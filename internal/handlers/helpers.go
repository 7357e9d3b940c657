package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/bakeryhq/orderdesk/internal/export"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

// decodeJSON reads a single JSON document into v, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", errBadBody)
	}
	return nil
}

// writeArtifact sends an export as a download
func writeArtifact(w http.ResponseWriter, a export.Artifact, logger *slog.Logger) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(a.Body); err != nil {
		logger.Error("failed to write download", "filename", a.Filename, "error", err)
	}
}

// render turns a sheet into the requested download format
func render(sheet export.Sheet, format string) (export.Artifact, error) {
	if format == "xlsx" {
		return export.XLSX(sheet)
	}
	return export.CSV(sheet), nil
}
