package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const dobLayout = "02/01/2006"

var (
	adminUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mailAddressPattern   = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")
	phonePattern         = regexp.MustCompile(`^[0-9]{5,10}$`)
	indexPattern         = regexp.MustCompile(`\[\d+\]`)
)

// FieldError is a single failed rule on a request field
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors is the ordered list of failed rules. The first entry is the headline message.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Message
}

// Messages maps "field.tag" or "field" to a user facing message.
// Nested fields use dotted json paths without indices, e.g. "permissions.permission_id".
type Messages map[string]string

func (m Messages) lookup(path, tag string) string {
	if msg, ok := m[path+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[path]; ok {
		return msg
	}
	return path + " is invalid"
}

// Validator validates tagged request structs
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

var (
	defaultValidator *Validator
	defaultOnce      sync.Once
)

// Default returns the shared validator
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New(time.Now)
	})
	return defaultValidator
}

// New builds a validator with the domain rules registered. now drives the dob rule.
func New(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v.validate, "adminusername", matchString(adminUsernamePattern))
	mustRegister(v.validate, "mailaddr", matchString(mailAddressPattern))
	mustRegister(v.validate, "phone", matchString(phonePattern))
	mustRegister(v.validate, "country", func(fl validator.FieldLevel) bool {
		_, ok := countryCodes[fl.Field().String()]
		return ok
	})
	mustRegister(v.validate, "dialcode", func(fl validator.FieldLevel) bool {
		_, ok := dialCodes[strings.TrimSpace(fl.Field().String())]
		return ok
	})
	mustRegister(v.validate, "dob", func(fl validator.FieldLevel) bool {
		dob, err := time.Parse(dobLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return !dob.After(v.now())
	})

	return v
}

// Struct validates s and returns Errors with messages resolved from messages
func (v *Validator) Struct(s interface{}, messages Messages) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		out = append(out, FieldError{
			Field:   path,
			Tag:     fe.Tag(),
			Message: messages.lookup(path, fe.Tag()),
		})
	}
	return out
}

// IsMailAddress reports whether s is an acceptable e-mail address
func IsMailAddress(s string) bool {
	return mailAddressPattern.MatchString(s)
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, "")
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
