package server

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"train-search-server/models"
)

var fieldMessages = map[string]string{
	"name":                 "Train name is required",
	"station":              "Station name is required",
	"distanceFromPrevious": "Distance from previous station must be a number",
	"departureTime":        "Departure time must be in HH:mm format",
	"source":               "Source station is required",
	"destination":          "Destination station is required",
}

var registerOnce sync.Once

// registerValidators installs the hhmm and numeric_value rules and makes validation errors report
// wire names (json or form tags) instead of Go field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin validator engine is not go-playground/validator")
		}
		if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("numeric_value", validateNumeric); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(wireName)
	})
}

func validateHHMM(fl validator.FieldLevel) bool {
	return models.ValidDepartureTime(fl.Field().String())
}

func validateNumeric(fl validator.FieldLevel) bool {
	return models.ValidNumeric(fl.Field().String())
}

func wireName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// fieldErrors turns a binding error into the field-level list returned with 422.
// ok is false when err is not a validation problem.
func fieldErrors(err error) (errs []models.FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs = append(errs, models.FieldError{
				Field: fieldPath(fe.Namespace()),
				Msg:   messageFor(fe.Field()),
			})
		}
		return errs, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		parts := strings.Split(path, ".")
		return []models.FieldError{{Field: path, Msg: messageFor(parts[len(parts)-1])}}, true
	}

	return nil, false
}

// fieldPath drops the leading struct name: "CreateTrainRequest.stops[0].station" -> "stops[0].station".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(field string) string {
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return "Invalid value"
}
