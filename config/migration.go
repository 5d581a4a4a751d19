package config

import (
	"fmt"
	"strings"
)

// Guide is a rendered remediation for a configuration problem.
type Guide struct {
	Title       string
	Description string
	Steps       []string
	Example     string
	References  []string
}

// Render formats the guide for terminal or log output.
func (g *Guide) Render() string {
	var b strings.Builder
	b.WriteString(g.Title)
	b.WriteString("\n\n")
	b.WriteString(g.Description)
	b.WriteString("\n")
	for i, step := range g.Steps {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, step)
	}
	if g.Example != "" {
		b.WriteString("\n\nExample:\n")
		for _, line := range strings.Split(g.Example, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if len(g.References) > 0 {
		b.WriteString("\nReferences:\n")
		for _, ref := range g.References {
			b.WriteString("  - ")
			b.WriteString(ref)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// MigrationInfo reports deprecated variables and the remediation for them.
type MigrationInfo struct {
	// Deprecated lists the offending variable names, sorted.
	Deprecated []string

	// Guide is the remediation selected for the detected family, or nil
	// when nothing deprecated is present.
	Guide *Guide
}

var credentialTokenGuide = Guide{
	Title:       "Migrate from shared token variables",
	Description: "LLMOPS_ACCESS_TOKEN and LLMOPS_API_TOKEN were replaced by per-provider key variables.",
	Steps: []string{
		"Remove LLMOPS_ACCESS_TOKEN and LLMOPS_API_TOKEN from your environment and dotenv files.",
		"Set OPENAI_API_KEY for the openai mode, or AZURE_OPENAI_API_KEY for the azure mode.",
		"Rotate the old token with your provider; shared tokens were frequently committed by accident.",
	},
	Example: "unset LLMOPS_ACCESS_TOKEN\nexport OPENAI_API_KEY=sk-...",
	References: []string{
		"https://platform.openai.com/api-keys",
	},
}

var reverseProxyGuide = Guide{
	Title:       "Migrate from the bundled reverse proxy",
	Description: "LLMOPS_PROXY_URL and LLMOPS_PROXY_ENABLED configured a bundled reverse proxy that no longer ships. Point the SDK at your gateway directly.",
	Steps: []string{
		"Remove LLMOPS_PROXY_URL and LLMOPS_PROXY_ENABLED from your environment.",
		"Set OPENAI_BASE_URL to your gateway URL for openai-compatible gateways.",
		"For Azure, set AZURE_OPENAI_ENDPOINT to the resource endpoint.",
	},
	Example: "unset LLMOPS_PROXY_URL LLMOPS_PROXY_ENABLED\nexport OPENAI_BASE_URL=https://gateway.internal/v1",
}

var genericDeprecationGuide = Guide{
	Title:       "Remove deprecated configuration",
	Description: "Deprecated variables from more than one feature area are set. Remove them and use the current per-provider variables.",
	Steps: []string{
		"Remove every variable listed in the error from your environment and dotenv files.",
		"Configure the provider with OPENAI_API_KEY or the AZURE_OPENAI_* variables.",
	},
}

var openaiSetupGuide = Guide{
	Title:       "Configure the openai provider",
	Description: "The openai mode needs an API key.",
	Steps: []string{
		"Create an API key in the OpenAI dashboard.",
		"Export it as OPENAI_API_KEY.",
		"Optionally set OPENAI_BASE_URL for compatible gateways and LLMOPS_MODEL to pick a model.",
	},
	Example: "export OPENAI_API_KEY=sk-...",
	References: []string{
		"https://platform.openai.com/api-keys",
	},
}

var azureSetupGuide = Guide{
	Title:       "Configure the azure provider",
	Description: "The azure mode needs the resource key, endpoint, and deployment.",
	Steps: []string{
		"Export AZURE_OPENAI_API_KEY with a key from the Azure portal.",
		"Export AZURE_OPENAI_ENDPOINT, e.g. https://my-resource.openai.azure.com.",
		"Export AZURE_OPENAI_DEPLOYMENT with the deployment name.",
	},
	Example: "export AZURE_OPENAI_API_KEY=...\nexport AZURE_OPENAI_ENDPOINT=https://my-resource.openai.azure.com\nexport AZURE_OPENAI_DEPLOYMENT=gpt-4o-prod",
}

// guideFor selects the remediation guide for the detected deprecated
// variables. A single family gets its specific guide; a mix falls back to
// the generic one.
func guideFor(names []string) *Guide {
	families := make(map[family]struct{})
	for _, name := range names {
		if f, ok := deprecatedVars[name]; ok {
			families[f] = struct{}{}
		}
	}

	if len(families) == 1 {
		for f := range families {
			switch f {
			case familyCredentialToken:
				return &credentialTokenGuide
			case familyReverseProxy:
				return &reverseProxyGuide
			}
		}
	}
	if len(families) > 1 {
		return &genericDeprecationGuide
	}
	return nil
}
