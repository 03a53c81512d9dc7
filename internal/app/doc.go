// Package app contains the core application logic. It defines the App
// struct, its configuration, and the validate, convert and new commands,
// decoupled from any specific entrypoint like a CLI.
package app
