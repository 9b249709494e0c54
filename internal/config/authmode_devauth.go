//go:build devauth

package config

// placeholderModeBuild enables AUTH_MODE=placeholder for local development.
const placeholderModeBuild = true
