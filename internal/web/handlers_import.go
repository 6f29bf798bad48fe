package web

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/logging"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

const (
	// multipartMemory is held in memory before parts spill to disk.
	multipartMemory = 8 << 20

	// multipartOverhead allows for boundaries and form fields around the file.
	multipartOverhead = 64 << 10
)

// upload is a parsed import form.
type upload struct {
	filename string
	charset  string
	text     string
	opts     qacsv.DecodeOptions
}

// readUpload parses an import form.
//
// Form fields: file (required), mode (legacy|strict), delimiter (strict
// mode only) and charset.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	limit := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return upload{}, fmt.Errorf("%w: limit %d bytes", qacsv.ErrFileTooLarge, limit)
		}
		return upload{}, fmt.Errorf("%w: %v", errNoFile, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return upload{}, errNoFile
	}
	defer file.Close()

	if !isCSVUpload(header) {
		return upload{}, fmt.Errorf("%w: %s", core.ErrInvalidFileType, header.Filename)
	}

	mode, err := qacsv.ParseMode(formValueOr(r, "mode", s.cfg.Import.DefaultMode))
	if err != nil {
		return upload{}, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	delim, err := parseDelimiter(r.FormValue("delimiter"))
	if err != nil {
		return upload{}, err
	}
	charset := formValueOr(r, "charset", s.cfg.Import.DefaultCharset)

	text, err := qacsv.ReadText(file, charset, limit)
	if err != nil {
		return upload{}, err
	}

	return upload{
		filename: header.Filename,
		charset:  charset,
		text:     text,
		opts:     qacsv.DecodeOptions{Mode: mode, Delimiter: delim},
	}, nil
}

// handleImport replaces the dataset with the rows of an uploaded CSV file.
// A header without the required columns yields 422 and leaves the dataset
// untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	res, err := s.service.Import(r.Context(), up.text, up.opts)
	if err != nil {
		fail(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("import finished",
		"file", up.filename,
		"mode", up.opts.Mode.String(),
		"charset", up.charset,
		"imported", res.Imported,
		"skipped", res.Skipped,
	)
	writeJSON(w, http.StatusOK, res)
}

// handleImportPreview reports what importing the uploaded file would do,
// without changing the dataset.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	preview, err := s.service.PreviewImport(r.Context(), up.text, up.opts)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// isCSVUpload accepts a .csv name or a text/csv part.
func isCSVUpload(h *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(h.Filename), ".csv") {
		return true
	}
	mt, _, err := mime.ParseMediaType(h.Header.Get("Content-Type"))
	return err == nil && mt == "text/csv"
}

func formValueOr(r *http.Request, name, def string) string {
	if v := strings.TrimSpace(r.FormValue(name)); v != "" {
		return v
	}
	return def
}

// handleExport downloads the dataset as CSV.
//
// Query: delimiter (comma|semicolon|tab, default comma) and filename
// (without extension). An empty dataset yields 409.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	delim, err := parseDelimiter(r.URL.Query().Get("delimiter"))
	if err != nil {
		fail(w, r, err)
		return
	}

	file, err := s.service.Export(r.Context(), core.ExportOptions{
		Delimiter: delim,
		Filename:  r.URL.Query().Get("filename"),
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	writeAttachment(w, file.Filename, file.ContentType, file.Body)
}

// handleDownloadTemplate serves a header-only CSV for users preparing an import.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	delim, err := parseDelimiter(r.URL.Query().Get("delimiter"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeAttachment(w, "qa-template.csv", core.ExportContentType, []byte(qacsv.Template(delim)))
}

// writeAttachment sends body as a download. name has already been sanitized.
func writeAttachment(w http.ResponseWriter, name, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
