// Package azure adapts the Azure OpenAI chat completion API to the provider
// contract. Requests target a deployment under a resource endpoint and
// authenticate with an api-key header or an Azure AD bearer token.
package azure
