//go:build !devauth

package config

// placeholderModeBuild is false in regular builds: the fixed placeholder
// identity can never be selected in production binaries.
const placeholderModeBuild = false
