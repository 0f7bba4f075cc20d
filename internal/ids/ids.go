package ids

import "github.com/segmentio/ksuid"

// New returns a k-sortable unique id string for new entities.
func New() string {
	return ksuid.New().String()
}
