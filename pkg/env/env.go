package env

import (
	"fmt"
	"os"
	"strconv"
)

type Error struct {
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to access environment variable: %s", e.Name)
}

type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}

// String returns the variable's value, or fallback when it is unset or empty.
func String(name, fallback string) string {
	if s := os.Getenv(name); s != "" {
		return s
	}
	return fallback
}

func Int(name string, fallback int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, &TypeError{Name: name}
	}
	return i, nil
}
