package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CacheConfig struct {
	MaxAge         int
	Private        bool
	NoStore        bool
	MustRevalidate bool
	Vary           []string
}

// NoStoreCacheConfig is used for every route returning account or medical data.
func NoStoreCacheConfig() CacheConfig {
	return CacheConfig{
		Private: true,
		NoStore: true,
		Vary:    []string{"Authorization"},
	}
}

func (c CacheConfig) directives() string {
	directives := make([]string, 0, 4)
	if c.Private {
		directives = append(directives, "private")
	} else {
		directives = append(directives, "public")
	}
	if c.NoStore {
		directives = append(directives, "no-store")
	} else if c.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(c.MaxAge))
	}
	if c.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	return strings.Join(directives, ", ")
}

// Cache sets Cache-Control on GET responses; every other method is marked no-store.
func Cache(config CacheConfig) gin.HandlerFunc {
	value := config.directives()
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Header("Cache-Control", value)
		if vary != "" {
			c.Writer.Header().Add("Vary", vary)
		}
		c.Next()
	}
}
