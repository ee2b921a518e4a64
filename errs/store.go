package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrStoreQuery = errors.New("document store query failed")
	ErrNoPosts    = errors.New("no posts available")
)

// NewStoreError wraps a document-store failure. The public message names
// only the failed operation; the driver error rides along as the cause for
// server-side logs.
func NewStoreError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreQuery,
		Details:    fmt.Sprintf("failed to %s", operation),
		Cause:      cause,
	}
}

// NewNoPostsError reports an empty collection during next-post traversal.
func NewNoPostsError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: ErrNoPosts}
}

func IsNoPosts(err error) bool {
	return errors.Is(err, ErrNoPosts)
}
