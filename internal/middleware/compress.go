package middleware

import (
	"compress/gzip"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
	wrote  bool
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	g.Header().Del("Content-Length")
	g.wrote = true
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) WriteHeader(code int) {
	g.Header().Del("Content-Length")
	g.ResponseWriter.WriteHeader(code)
}

type CompressConfig struct {
	Level int
	// SkipPrefixes are served uncompressed, e.g. the Prometheus endpoint which negotiates its own encoding.
	SkipPrefixes []string
}

func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		Level:        gzip.DefaultCompression,
		SkipPrefixes: []string{"/api/v1/health"},
	}
}

// Compress gzips responses for clients that accept it.
func Compress(config CompressConfig) gin.HandlerFunc {
	pool := sync.Pool{
		New: func() interface{} {
			gz, err := gzip.NewWriterLevel(nil, config.Level)
			if err != nil {
				gz = gzip.NewWriter(nil)
			}
			return gz
		},
	}

	return func(c *gin.Context) {
		for _, prefix := range config.SkipPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		if c.Request.Method == "HEAD" || !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		gz.Reset(c.Writer)

		original := c.Writer
		c.Header("Content-Encoding", "gzip")
		c.Writer.Header().Add("Vary", "Accept-Encoding")
		gw := &gzipWriter{ResponseWriter: original, writer: gz}
		c.Writer = gw
		defer func() {
			if gw.wrote {
				gz.Close()
			} else {
				// Nothing was written; a later writer (e.g. panic recovery) must send plain bytes.
				original.Header().Del("Content-Encoding")
				gz.Reset(nil)
			}
			c.Writer = original
			pool.Put(gz)
		}()

		c.Next()
	}
}
