// Package export renders database records as downloadable CSV and XLSX
// files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"grantflow/internal/domain"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility on
// Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var documentColumns = []string{
	"Filename",
	"Status",
	"Document Type",
	"MIME Type",
	"Size (bytes)",
	"SHA-256",
	"Parse Error",
	"Applied At",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting documents as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the document header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(documentColumns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *CSVWriter) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		if err := w.csv.Write(documentToRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func documentToRow(doc *domain.Document) []string {
	row := make([]string, len(documentColumns))
	row[0] = doc.OriginalFilename
	row[1] = string(doc.Status)
	row[2] = doc.DocType
	row[3] = doc.MimeType
	row[4] = strconv.FormatInt(doc.SizeBytes, 10)
	row[5] = doc.SHA256
	row[6] = doc.ParseError
	row[7] = formatTime(doc.AppliedAt)
	row[8] = doc.CreatedAt.Format(time.RFC3339)
	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a display name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized dated filename for Content-Disposition.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
