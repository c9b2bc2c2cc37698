package model

// Package model defines domain data structures shared across the module:
// the read-only song snapshot consumed by the message templates and the CLI.
