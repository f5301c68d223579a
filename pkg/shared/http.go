package shared

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// AcceptEncoding is advertised by the SDK's HTTP clients. Setting it by hand
// disables net/http's transparent gzip handling, so ReadResponseBody decodes
// both encodings itself.
const AcceptEncoding = "br, gzip"

// UserAgent identifies SDK requests.
const UserAgent = "cvn1-sdk-go"

// ReadResponseBody reads a response body, undoing brotli or gzip content
// encoding when the server applied one.
func ReadResponseBody(response *http.Response) ([]byte, error) {
	var reader io.Reader = response.Body

	switch strings.ToLower(strings.TrimSpace(response.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "br":
		reader = brotli.NewReader(response.Body)
	case "gzip":
		gzipReader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip response: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", response.Header.Get("Content-Encoding"))
	}

	return io.ReadAll(reader)
}
