package types

import (
	"registry-config/internal/core"
	"registry-config/internal/shared"
)

// CurrentVersion is the only schema version the codec accepts.
const CurrentVersion = 1

// Registry identifies a package source endpoint.
type Registry struct {
	URL                  string
	SupportsAvailability bool
}

// Host returns the normalized hostname of the registry URL, the key
// used for authentication and registry-override lookups.
func (r Registry) Host() string {
	return shared.HostOf(r.URL)
}

// Authentication describes the credential kind configured for a
// registry host. Secrets themselves live elsewhere.
type Authentication struct {
	Type         AuthenticationType
	LoginAPIPath *string
}

// Configuration is the root of a registries document: the default and
// scoped registry mappings, per-host authentication, and the optional
// signing security hierarchy.
type Configuration struct {
	Version                int
	DefaultRegistry        *Registry
	ScopedRegistries       map[core.Scope]Registry
	RegistryAuthentication map[string]Authentication
	Security               *Security
}

// NewConfiguration returns an empty configuration at the current
// schema version with initialized maps.
func NewConfiguration() Configuration {
	return Configuration{
		Version:                CurrentVersion,
		ScopedRegistries:       map[core.Scope]Registry{},
		RegistryAuthentication: map[string]Authentication{},
	}
}

// RegistryForScope resolves the registry serving a scope, falling
// back to the default registry.
func (c Configuration) RegistryForScope(scope core.Scope) (Registry, bool) {
	if registry, ok := c.ScopedRegistries[scope]; ok {
		return registry, true
	}
	if c.DefaultRegistry != nil {
		return *c.DefaultRegistry, true
	}
	return Registry{}, false
}

// RegistryForPackage resolves the registry serving a package identity
// via its scope. Identities outside the registry family carry no
// scope and resolve through the default registry only.
func (c Configuration) RegistryForPackage(pkg core.PackageIdentity) (Registry, bool) {
	if scope, ok := pkg.Scope(); ok {
		return c.RegistryForScope(scope)
	}
	if c.DefaultRegistry != nil {
		return *c.DefaultRegistry, true
	}
	return Registry{}, false
}

// AuthenticationFor looks up the authentication entry keyed by the
// host of the given URL.
func (c Configuration) AuthenticationFor(rawURL string) (Authentication, bool) {
	host := shared.HostOf(rawURL)
	if host == "" {
		return Authentication{}, false
	}
	auth, ok := c.RegistryAuthentication[host]
	return auth, ok
}

// ExplicitlyConfigured reports whether the document names any
// registry at all, default or scoped.
func (c Configuration) ExplicitlyConfigured() bool {
	return c.DefaultRegistry != nil || len(c.ScopedRegistries) > 0
}

// Merge overlays another configuration document onto this one in
// place. A present defaultRegistry or security section in other
// replaces ours wholesale; scoped registries and authentication
// entries are upserted per key, later document wins.
func (c *Configuration) Merge(other Configuration) {
	if other.DefaultRegistry != nil {
		registry := *other.DefaultRegistry
		c.DefaultRegistry = &registry
	}
	for scope, registry := range other.ScopedRegistries {
		if c.ScopedRegistries == nil {
			c.ScopedRegistries = map[core.Scope]Registry{}
		}
		c.ScopedRegistries[scope] = registry
	}
	for host, auth := range other.RegistryAuthentication {
		if c.RegistryAuthentication == nil {
			c.RegistryAuthentication = map[string]Authentication{}
		}
		c.RegistryAuthentication[host] = auth
	}
	if other.Security != nil {
		security := other.Security.Clone()
		c.Security = &security
	}
}
