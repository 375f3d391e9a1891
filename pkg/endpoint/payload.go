package endpoint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/app-sre/ramp/pkg/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("request"); name != "" {
			return name
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", strings.Join(e.Messages, "; "))
}

// Payload builds the upstream body for the endpoint from the request and
// validates it.
func (e Endpoint) Payload(q *models.QueryRequest) (any, error) {
	values := SplitList(q.Input)

	var payload any
	switch e.Path {
	case PathwaysFromAnalytes:
		payload = &models.PathwaysFromAnalytes{
			Analytes: values,
		}
	case OntologiesFromMetabolites:
		payload = &models.OntologiesFromMetabolites{
			Metabolite: values,
			NamesOrIDs: e.value(OptionNamesOrIDs, q.NamesOrIDs),
		}
	case AnalytesFromPathways:
		payload = &models.AnalytesFromPathways{
			Pathway:     values,
			AnalyteType: e.value(OptionAnalyteType, q.AnalyteType),
			Match:       e.value(OptionMatch, q.Match),
		}
	case MetabolitesFromOntologies:
		payload = &models.MetabolitesFromOntologies{
			Ontology: values,
			Format:   e.value(OptionFormat, q.Format),
		}
	default:
		return nil, &NotFoundError{Path: e.Path}
	}

	if err := validate.Struct(payload); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("unable to validate request: %w", err)
		}
		return nil, validationError(ve)
	}

	return payload, nil
}

func (e Endpoint) value(name, given string) string {
	if s := strings.TrimSpace(given); s != "" {
		return s
	}
	if o, found := e.Option(name); found {
		return o.Default()
	}
	return ""
}

func validationError(ve validator.ValidationErrors) *ValidationError {
	aux := &ValidationError{Messages: make([]string, 0, len(ve))}

	for _, fe := range ve {
		switch fe.Tag() {
		case "min":
			aux.Messages = append(aux.Messages, fmt.Sprintf("%s requires at least one value", fe.Field()))
		case "oneof":
			aux.Messages = append(aux.Messages, fmt.Sprintf("%s must be one of [%s], got %q",
				fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		default:
			aux.Messages = append(aux.Messages, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}

	return aux
}
