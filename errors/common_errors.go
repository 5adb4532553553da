// errors/common_errors.go
package errors

import "errors"

var (
	ErrInternalServer     = errors.New("internal server error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDirectoryOperation = errors.New("directory operation failed")
	ErrInvalidPagination  = errors.New("invalid pagination parameters")
)
