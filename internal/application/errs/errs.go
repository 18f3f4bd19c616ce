package errs

import "fmt"

type ConflictError struct {
	Err error
}

func (t ConflictError) Error() string {
	return fmt.Sprintf("conflict: %v", t.Err)
}

type UnauthorizedError struct {
	Err error
}

func (t UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %v", t.Err)
}

type PermissionsError struct {
	Err error
}

func (t PermissionsError) Error() string {
	return fmt.Sprintf("error in permissions: %v", t.Err)
}

type NotFoundError struct {
	Err error
}

func (t NotFoundError) Error() string {
	return fmt.Sprintf("not found: %v", t.Err)
}
