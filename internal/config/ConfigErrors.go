package config

import "fmt"

type ConfigFileInvalidError struct {
	Err error
}

func (e *ConfigFileInvalidError) Error() string {
	return fmt.Sprintf("Configuration file is invalid: %s", e.Err)
}

func (e *ConfigFileInvalidError) Is(target error) bool {
	_, ok := target.(*ConfigFileInvalidError)
	return ok
}

func (e *ConfigFileInvalidError) Unwrap() error {
	return e.Err
}

//

type ConfigFileNotFoundError struct {
	Path string
}

func (e *ConfigFileNotFoundError) Error() string {
	return fmt.Sprintf("Configuration file not found: %s", e.Path)
}

func (e *ConfigFileNotFoundError) Is(target error) bool {
	t, ok := target.(*ConfigFileNotFoundError)
	if !ok {
		return false
	}
	return t.Path == "" || e.Path == t.Path
}

//

type ConfigFileExistsError struct {
	Path string
}

func (e *ConfigFileExistsError) Error() string {
	return fmt.Sprintf("Configuration file already exists: %s", e.Path)
}

func (e *ConfigFileExistsError) Is(target error) bool {
	t, ok := target.(*ConfigFileExistsError)
	if !ok {
		return false
	}
	return t.Path == "" || e.Path == t.Path
}
