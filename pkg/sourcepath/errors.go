package sourcepath

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSpec  = errors.New("malformed source path: missing repository name")
	ErrNoRepositories = errors.New("no repositories configured")
	ErrMalformedURL   = errors.New("malformed url")
)

// UnknownRepositoryError reports a repository name that is not present in
// the catalog a specification was resolved against.
type UnknownRepositoryError struct {
	Name string
}

func (e *UnknownRepositoryError) Error() string {
	return fmt.Sprintf("unknown repository: %s", e.Name)
}
