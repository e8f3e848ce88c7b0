package repository

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// PreferenceRepository stores user preferences as key/value pairs.
type PreferenceRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
