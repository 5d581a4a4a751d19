package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/llmops/fault"
)

// Validator checks environment configuration against the current
// vocabulary: deprecated variables are fatal, then the variables required
// by the active provider mode must be present.
type Validator struct {
	src Source
}

// NewValidator creates a validator over src. A nil src reads the process
// environment.
func NewValidator(src Source) *Validator {
	if src == nil {
		src = EnvSource{}
	}
	return &Validator{src: src}
}

// value returns the trimmed value of key, or "" when unset.
func (v *Validator) value(key string) string {
	s, _ := v.src.Lookup(key)
	return strings.TrimSpace(s)
}

// DeprecatedVariables returns the deprecated variable names that are set
// to a non-empty value, sorted.
func (v *Validator) DeprecatedVariables() []string {
	var names []string
	for name := range deprecatedVars {
		if v.value(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// mode returns the active provider mode, defaulting to "openai".
func (v *Validator) mode() string {
	m := v.value(EnvProvider)
	if m == "" {
		return "openai"
	}
	return m
}

// requiredVars returns the variables the mode cannot run without.
func requiredVars(mode string) []string {
	switch mode {
	case "azure":
		return []string{EnvAzureAPIKey, EnvAzureEndpoint, EnvAzureDeployment}
	default:
		return []string{EnvOpenAIAPIKey}
	}
}

// missingRequired returns the unset required variables for the mode, sorted.
func (v *Validator) missingRequired(mode string) []string {
	var missing []string
	for _, name := range requiredVars(mode) {
		if v.value(name) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// ValidateEnvironment fails on deprecated variables first, then on missing
// required variables for the active mode. Error messages carry the full
// rendered remediation guide so they can be surfaced to an operator as-is.
func (v *Validator) ValidateEnvironment() error {
	if deprecated := v.DeprecatedVariables(); len(deprecated) > 0 {
		guide := guideFor(deprecated)
		return fault.Newf(fault.KindConfigDeprecated,
			"deprecated configuration variables are set: %s\n\n%s",
			strings.Join(deprecated, ", "), guide.Render())
	}

	mode := v.mode()
	if mode != "openai" && mode != "azure" {
		return fault.Newf(fault.KindConfigMissing, "Unsupported provider: %s", mode)
	}

	if missing := v.missingRequired(mode); len(missing) > 0 {
		guide := openaiSetupGuide
		if mode == "azure" {
			guide = azureSetupGuide
		}
		return fault.Newf(fault.KindConfigMissing,
			"missing required configuration for %s: %s\n\n%s",
			mode, strings.Join(missing, ", "), guide.Render())
	}

	return nil
}

// ValidationResult is the non-failing validation report.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// ValidateSafely runs the same checks as ValidateEnvironment without
// failing, and adds advisory warnings: a non-https endpoint and an
// unparsable timeout do not block startup but usually indicate a mistake.
func (v *Validator) ValidateSafely() *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if deprecated := v.DeprecatedVariables(); len(deprecated) > 0 {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("deprecated configuration variables are set: %s", strings.Join(deprecated, ", ")))
	}

	mode := v.mode()
	if mode != "openai" && mode != "azure" {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unsupported provider: %s", mode))
	} else if missing := v.missingRequired(mode); len(missing) > 0 {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("missing required configuration for %s: %s", mode, strings.Join(missing, ", ")))
	}

	for _, key := range []string{EnvOpenAIBaseURL, EnvAzureEndpoint} {
		if value := v.value(key); value != "" && !strings.HasPrefix(value, "https://") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s does not use https: %s", key, value))
		}
	}

	if raw := v.value(EnvTimeoutMS); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s is not a valid integer: %q", EnvTimeoutMS, raw))
		}
	}

	return result
}

// MigrationInfo reports deprecated variables with their remediation guide,
// for tooling that wants detection without a hard failure.
func (v *Validator) MigrationInfo() *MigrationInfo {
	deprecated := v.DeprecatedVariables()
	return &MigrationInfo{
		Deprecated: deprecated,
		Guide:      guideFor(deprecated),
	}
}

// ValidatedConfig validates the environment and returns normalized
// settings with defaults applied. Endpoint values may reference other
// variables as `${VAR}`; references to unset variables fail.
func (v *Validator) ValidatedConfig() (*Settings, error) {
	if err := v.ValidateEnvironment(); err != nil {
		return nil, err
	}

	settings := &Settings{
		Provider: v.mode(),
		Model:    v.value(EnvModel),
		Timeout:  DefaultTimeout,
	}

	if raw := v.value(EnvTimeoutMS); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			settings.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if raw := v.value(EnvDebug); raw != "" {
		if debug, err := strconv.ParseBool(raw); err == nil {
			settings.Debug = debug
		}
	}

	switch settings.Provider {
	case "azure":
		endpoint, err := Expand(v.value(EnvAzureEndpoint), v.src)
		if err != nil {
			return nil, fault.Wrap(fault.KindConfigMissing, err, "expanding "+EnvAzureEndpoint)
		}
		settings.AzureAPIKey = v.value(EnvAzureAPIKey)
		settings.AzureEndpoint = endpoint
		settings.AzureDeployment = v.value(EnvAzureDeployment)
		settings.AzureAPIVersion = v.value(EnvAzureAPIVersion)
		if settings.AzureAPIVersion == "" {
			settings.AzureAPIVersion = DefaultAzureAPIVersion
		}
		// The deployment decides the model unless LLMOPS_MODEL overrides.
	default:
		baseURL, err := Expand(v.value(EnvOpenAIBaseURL), v.src)
		if err != nil {
			return nil, fault.Wrap(fault.KindConfigMissing, err, "expanding "+EnvOpenAIBaseURL)
		}
		settings.OpenAIAPIKey = v.value(EnvOpenAIAPIKey)
		settings.OpenAIBaseURL = baseURL
		settings.OpenAIOrganization = v.value(EnvOpenAIOrganization)
		if settings.Model == "" {
			settings.Model = DefaultModel
		}
	}

	return settings, nil
}
