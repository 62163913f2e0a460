package app

import (
	"registry-config/internal/policies"
	"registry-config/internal/types"
)

type ShowRequest struct {
	GlobalPath string
	LocalPath  string
}

type ShowResult struct {
	Configuration types.Configuration
}

type SetRegistryRequest struct {
	Path  string
	URL   string
	Scope string
}

type SetRegistryResult struct {
	Scope string
	URL   string
}

type UnsetRegistryRequest struct {
	Path  string
	Scope string
}

type ResolveSigningRequest struct {
	GlobalPath string
	LocalPath  string
	Package    string
}

type ResolveSigningResult struct {
	Package  string
	Registry types.Registry
	Signing  policies.ResolvedSigning
}

type ValidateRequest struct {
	Path string
}

type ValidateResult struct {
	Version          int
	HasDefault       bool
	ScopedRegistries int
	Authentication   int
	HasSecurity      bool
}
