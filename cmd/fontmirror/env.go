package main

import (
	"io"
	"net/http"
	"os"
	"time"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	HTTPClient *http.Client // nil uses a fresh client per run
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
