package model

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

var (
	validatorInstance = validator.New()
	schemaLoader      = gojsonschema.NewBytesLoader(resumeSchema)
)

func init() {
	_ = validatorInstance.RegisterValidation("datauri_image", validateImageDataURI)
	_ = validatorInstance.RegisterValidation("weblink", validateWebLink)
}

// validateWebLink accepts absolute URLs and bare hosts such as
// "janedoe.dev/blog", which the preview links with an https scheme.
func validateWebLink(fl validator.FieldLevel) bool {
	v := strings.TrimSpace(fl.Field().String())
	if v == "" || strings.ContainsAny(v, " \t\n") {
		return false
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return strings.Contains(host, ".") || host == "localhost"
}

// validateImageDataURI accepts only inline images, which is what the photo
// upload produces.
func validateImageDataURI(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return strings.HasPrefix(v, "data:image/") && strings.Contains(v, ",")
}

// ValidationError lists every failed rule so clients can fix them in one go.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validate checks struct-level invariants of a resume, such as skill levels
// in 1..5 and known language proficiencies.
func Validate(d ResumeData) error {
	err := validatorInstance.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Problems = append(out.Problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return out
}

// ValidateJSON validates a raw resume payload against the embedded JSON
// schema before it is decoded.
func ValidateJSON(raw []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	out := &ValidationError{}
	for _, e := range res.Errors() {
		out.Problems = append(out.Problems, e.String())
	}
	return out
}
