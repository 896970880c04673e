package source

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// MIMEOctetStream is returned when no better type is known.
const MIMEOctetStream = "application/octet-stream"

const mimeDetectionBytes = 512 // http.DetectContentType requires up to 512 bytes

// DetectMIME guesses the MIME type of an attachment.
// The file extension wins when it is registered; otherwise the content is sniffed.
func DetectMIME(filename string, data []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			return normalizeMIME(t)
		}
	}
	if len(data) == 0 {
		return MIMEOctetStream
	}
	if len(data) > mimeDetectionBytes {
		data = data[:mimeDetectionBytes]
	}
	return normalizeMIME(http.DetectContentType(data))
}

// normalizeMIME strips parameters like charset.
func normalizeMIME(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}
