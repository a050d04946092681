package httpapi

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators installs the custom tags on gin's shared validator and
// makes it report JSON field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
			return services.ValidFullName(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("nepalphone", func(fl validator.FieldLevel) bool {
			return services.ValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return services.StrongPassword(fl.Field().String())
		})
	})
}

var tagMessages = map[string]string{
	"fullname":       "Full name must be at least 3 characters and contain only letters and spaces",
	"email":          "Please provide a valid email",
	"strongpassword": "Password must be at least 8 characters and include at least one uppercase letter and one number",
	"nepalphone":     "Phone number must be a valid Nepal number starting with 98 or 97",
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bind decodes the JSON body into dst. On failure it writes a 400 and
// returns false.
func bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return false
	}

	out := make([]fieldError, 0, len(ve))
	for _, fe := range ve {
		msg, ok := tagMessages[fe.Tag()]
		switch {
		case ok:
		case fe.Tag() == "required":
			msg = fe.Field() + " is required"
		case fe.Tag() == "oneof":
			msg = fe.Field() + " must be one of: " + fe.Param()
		default:
			msg = fe.Field() + " is invalid"
		}
		out = append(out, fieldError{Field: fe.Field(), Message: msg})
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": out[0].Message, "errors": out})
	return false
}
