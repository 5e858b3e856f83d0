package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound matches every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an identifier that does not resolve.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// notFound converts gorm.ErrRecordNotFound into a NotFoundError for the
// resource and passes any other error through.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

// legacyID matches 24-hex document ids found in imported backups.
var legacyID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// checkID accepts generated UUIDs and legacy document ids.
func checkID(id, resource string) error {
	if _, err := uuid.Parse(id); err == nil {
		return nil
	}
	if legacyID.MatchString(id) {
		return nil
	}
	return invalid("Invalid %s ID", resource)
}

// knownID is checkID for routes that only report missing records: an id
// that cannot exist is a record that does not exist.
func knownID(id, resource string) error {
	if checkID(id, resource) != nil {
		return &NotFoundError{Resource: resource}
	}
	return nil
}
