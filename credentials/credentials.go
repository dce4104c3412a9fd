// Package credentials resolves which vendor account a request runs under.
// Adapters resolve once at request entry; the settlement engine receives the
// resolved record as an opaque value and never branches on vendor identity.
package credentials

import (
	"fmt"
	"strings"
)

// Credentials is one vendor account record: the identifiers the wallet and
// the vendor API expect for a given (provider, currency, environment).
type Credentials struct {
	Provider    string
	Currency    string
	Environment string

	AgentCode   string
	AgentSecret string
	APIURL      string
}

type key struct {
	provider, currency, environment string
}

// Registry maps (provider, currency, environment) to a credential record.
// It is populated once at startup and read-only afterwards.
type Registry struct {
	records map[key]Credentials
}

func NewRegistry() *Registry {
	return &Registry{records: make(map[key]Credentials)}
}

func (r *Registry) Register(c Credentials) {
	r.records[key{
		provider:    strings.ToLower(c.Provider),
		currency:    strings.ToUpper(c.Currency),
		environment: strings.ToLower(c.Environment),
	}] = c
}

func (r *Registry) Resolve(provider, currency, environment string) (Credentials, error) {
	c, ok := r.records[key{
		provider:    strings.ToLower(provider),
		currency:    strings.ToUpper(currency),
		environment: strings.ToLower(environment),
	}]
	if !ok {
		return Credentials{}, fmt.Errorf("no credentials for provider=%s currency=%s environment=%s",
			provider, currency, environment)
	}
	return c, nil
}
