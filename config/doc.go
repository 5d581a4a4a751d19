// Package config validates environment configuration before a provider is
// constructed. It detects deprecated variables and renders remediation
// guides for them, checks the variables required by the active provider
// mode, and normalizes everything into a Settings value that bridges to the
// factory configuration.
//
// Values are read through a Source, so tests and tooling can validate
// without touching the process environment.
package config
