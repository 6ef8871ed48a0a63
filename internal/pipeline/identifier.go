package pipeline

import (
	"regexp"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
)

// componentIDPattern accepts identifiers safe both as a filesystem path
// segment and as an object storage key prefix. Leading dots are excluded so
// "." and ".." can never form.
var componentIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateComponentID rejects identifiers unusable as a path segment or
// storage key prefix. The identifier is caller-supplied, so this is the only
// gate between request input and filesystem layout.
func ValidateComponentID(id string) error {
	if id == "" {
		return errors.InputError("component_id must not be empty")
	}
	if !componentIDPattern.MatchString(id) {
		return errors.InputError("component_id must be a safe path segment").
			WithContext("component_id", id)
	}
	return nil
}
