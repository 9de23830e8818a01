package locfile

import "fmt"

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Localization file not found: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Path == "" || e.Path == t.Path
}

//

type EmptyFileError struct {
	Path string
}

func (e *EmptyFileError) Error() string {
	return fmt.Sprintf("Localization file is empty: %s", e.Path)
}

func (e *EmptyFileError) Is(target error) bool {
	t, ok := target.(*EmptyFileError)
	if !ok {
		return false
	}
	return t.Path == "" || e.Path == t.Path
}

//

type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("Could not decode JSON from %s: %s", e.Path, e.Err)
}

func (e *MalformedError) Is(target error) bool {
	t, ok := target.(*MalformedError)
	if !ok {
		return false
	}
	return t.Path == "" || e.Path == t.Path
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
