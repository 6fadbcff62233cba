package types

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Category classifies an achievement.
type Category string

// Achievement categories.
const (
	CategoryPersonal  Category = "Personal"
	CategoryCareer    Category = "Career"
	CategoryEducation Category = "Education"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryPersonal, CategoryCareer, CategoryEducation}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category named s, or ErrInvalidCat.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCat
	}
	return c, nil
}

// Achievement is a single logged milestone. ID is assigned by the store and
// never changes afterwards.
type Achievement struct {
	ID          int      `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required,category"`
	Date        Date     `json:"date" validate:"required"`
}

// AchievementInput is the data needed to create an achievement.
type AchievementInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required,category"`
	Date        Date     `json:"date" validate:"required"`
}

// WithID builds the record the store persists for this input.
func (in AchievementInput) WithID(id int) Achievement {
	return Achievement{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
	}
}

// Input returns the mutable fields of a.
func (a Achievement) Input() AchievementInput {
	return AchievementInput{
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Date:        a.Date,
	}
}

// Validate checks the input fields. It returns a *ValidationError keyed by
// JSON field name.
func (in AchievementInput) Validate() error {
	return validateStruct(in)
}

// Validate checks the record's ID and fields.
func (a Achievement) Validate() error {
	if a.ID <= 0 {
		return ErrInvalidID
	}
	return validateStruct(a)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func entityValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// Date is opaque to the validator; expose its string form so that
		// "required" rejects the zero day.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(Date); ok && !d.IsZero() {
				return d.String()
			}
			return ""
		}, Date{})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return Category(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// fieldMessages maps field names to the message shown when "required" fails.
var fieldMessages = map[string]string{
	"title":       "Title is required",
	"description": "Description is required",
	"category":    "Category is required",
	"date":        "Date is required",
}

func validateStruct(s any) error {
	err := entityValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "category":
			verr.Add(fe.Field(), "Category must be one of Personal, Career, Education")
		default:
			verr.Add(fe.Field(), fieldMessages[fe.Field()])
		}
	}
	return verr
}
