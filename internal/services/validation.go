package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	maxTitleRunes = 200
	maxTypeRunes  = 50
	maxNoteRunes  = 2000
	maxURLRunes   = 2048
)

// ParseID parses a caller-supplied identifier.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a valid id", ErrInvalidInput, field)
	}
	return id, nil
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}

var httpURL = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
})

func validateListFields(title, listType string) error {
	return invalid(validation.Errors{
		"title": validation.Validate(title, validation.Required, validation.RuneLength(1, maxTitleRunes)),
		"type":  validation.Validate(listType, validation.Required, validation.RuneLength(1, maxTypeRunes)),
	}.Filter())
}

// validateItemFields checks the fields that are present. requireTitle is
// set on creation.
func validateItemFields(title, note, link *string, requireTitle bool) error {
	titleRules := []validation.Rule{validation.NilOrNotEmpty, validation.RuneLength(1, maxTitleRunes)}
	if requireTitle {
		titleRules = append(titleRules, validation.Required)
	}
	return invalid(validation.Errors{
		"title": validation.Validate(title, titleRules...),
		"note":  validation.Validate(note, validation.RuneLength(0, maxNoteRunes)),
		"url":   validation.Validate(link, validation.RuneLength(0, maxURLRunes), is.URL, httpURL),
	}.Filter())
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
