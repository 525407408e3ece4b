// Package config resolves the effective configuration of a package
// directory and loads the user's CLI settings.
//
// A package directory may carry a descriptor, .bub.toml, or an OS specific
// .bub.<GOOS>.toml which takes precedence when present. Resolution layers
// the embedded defaults, the descriptor and the caller's overrides with
// koanf: descriptor keys replace defaults, overrides append to pattern
// lists and replace scalars only when supplied.
package config
