package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliMinLength is the body size below which pages are sent uncompressed.
const brotliMinLength = 1024

// brotliWriter buffers the first minLength bytes to decide whether the
// response is worth compressing, then streams through the encoder.
type brotliWriter struct {
	gin.ResponseWriter
	quality    int
	minLength  int
	buf        []byte
	encoder    *brotli.Writer
	compressed bool
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	if bw.compressed {
		return bw.encoder.Write(data)
	}

	bw.buf = append(bw.buf, data...)
	if len(bw.buf) < bw.minLength {
		return len(data), nil
	}

	h := bw.ResponseWriter.Header()
	if h.Get("Content-Encoding") != "" {
		// already encoded upstream; pass through
		_, err := bw.ResponseWriter.Write(bw.buf)
		bw.buf = nil
		bw.minLength = 0
		return len(data), err
	}

	bw.compressed = true
	h.Set("Content-Encoding", "br")
	h.Del("Content-Length")
	bw.encoder = brotli.NewWriterLevel(bw.ResponseWriter, bw.quality)
	if _, err := bw.encoder.Write(bw.buf); err != nil {
		return 0, err
	}
	bw.buf = nil
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// finish writes whatever is still buffered and closes the encoder.
func (bw *brotliWriter) finish() error {
	if bw.compressed {
		return bw.encoder.Close()
	}
	if len(bw.buf) == 0 {
		return nil
	}
	_, err := bw.ResponseWriter.Write(bw.buf)
	bw.buf = nil
	return err
}

// Brotli compresses responses for clients that accept br.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsBrotli(c.Request.Header.Get("Accept-Encoding")) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			quality:        brotli.DefaultCompression,
			minLength:      brotliMinLength,
		}
		c.Writer = bw
		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

// acceptsBrotli reports whether an Accept-Encoding value allows br.
// "br;q=0" is a refusal; a malformed q counts as acceptance.
func acceptsBrotli(acceptEncoding string) bool {
	for _, enc := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "br") {
			continue
		}
		for _, p := range strings.Split(params, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && q <= 0 {
				return false
			}
		}
		return true
	}
	return false
}
