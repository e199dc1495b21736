package scanner

import (
	"bytes"
	"io"

	"golang.org/x/net/html/charset"
)

// DecodeBody converts body to UTF-8 text. The charset comes from a BOM,
// the Content-Type header or an HTML meta tag, in that order. Bodies that
// cannot be decoded are returned as-is.
func DecodeBody(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}
	return string(text)
}
