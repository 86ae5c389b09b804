package validation

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/username/cafeanalyst/backend/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for POS export uploads. Exports are CSV or TSV
// text; spreadsheet binaries are rejected outright.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                      true,
	"application/csv":               true,
	"text/tab-separated-values":     true,
	"application/vnd.ms-excel":      true, // Often used for CSV by older Excel
	"text/plain":                    true, // CSVs are often plain text
	"application/octet-stream":      true, // Fallback, but be more cautious
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": false, // .xlsx, explicitly disallowed
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[mediaType]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for export upload", contentType)
	}
	return nil
}

// ValidateFileContentByMagicBytes checks the actual file content signature.
// It returns the detected content type and an error if the content does not
// look like delimited text. The read pointer is reset afterwards so the
// parser can read the full file.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512) // http.DetectContentType looks at the first 512 bytes
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	detectedContentType := strings.ToLower(strings.Split(http.DetectContentType(buffer[:n]), ";")[0])

	// Text-based detections are fine; octet-stream is allowed here because
	// strict CSV parsing happens right after and rejects anything binary.
	allowedDetectedTypes := map[string]bool{
		"text/plain":                true,
		"text/csv":                  true,
		"application/csv":           true,
		"text/tab-separated-values": true,
		"application/octet-stream":  true,
	}

	if !allowedDetectedTypes[detectedContentType] {
		logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not consistent with a delimited text export", detectedContentType)
	}

	logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detectedContentType)
	return detectedContentType, nil
}
