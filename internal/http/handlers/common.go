package handlers

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"envy/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var jsonNamesOnce sync.Once

// UseJSONFieldNames makes validation errors report json names ("checkIn") rather than Go names.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// BindJSONOrError ensures body is present, parsable and valid. On failure the response is already written.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, bindingError(err))
		return false
	}
	return true
}

func respondOK(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}

// matched is the response of admin mutators, which succeed whether or not the id exists.
func matched(c *gin.Context, found bool, extra gin.H) {
	body := gin.H{"ok": true, "matched": found}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
