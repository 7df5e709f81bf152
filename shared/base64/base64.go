package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURI = errors.New("value is not a base64 data uri")

// GetContentType returns the media type of a data URI, or "" when file is not one.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if !strings.HasPrefix(file, dataPrefix) || end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URI such as "data:image/png;base64,iVBOR..." into its
// content type and decoded payload.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrNotDataURI
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return contentType, data, nil
}

// Extension returns the file extension for an image/* content type.
func Extension(contentType string) string {
	_, sub, found := strings.Cut(contentType, "/")
	if !found || sub == "" {
		return ""
	}

	if sub == "jpeg" {
		return "jpg"
	}

	return sub
}
