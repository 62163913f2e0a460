package types

// SigningAction controls how an unsigned package is handled.
type SigningAction string

const (
	SigningActionError       SigningAction = "error"
	SigningActionPrompt      SigningAction = "prompt"
	SigningActionWarn        SigningAction = "warn"
	SigningActionSilentAllow SigningAction = "silentAllow"
)

func (a SigningAction) IsValid() bool {
	switch a {
	case SigningActionError, SigningActionPrompt, SigningActionWarn, SigningActionSilentAllow:
		return true
	}
	return false
}

// CertificateAction controls how a package signed with an untrusted
// certificate is handled.
type CertificateAction string

const (
	CertificateActionError       CertificateAction = "error"
	CertificateActionPrompt      CertificateAction = "prompt"
	CertificateActionWarn        CertificateAction = "warn"
	CertificateActionSilentTrust CertificateAction = "silentTrust"
)

func (a CertificateAction) IsValid() bool {
	switch a {
	case CertificateActionError, CertificateActionPrompt, CertificateActionWarn, CertificateActionSilentTrust:
		return true
	}
	return false
}

// ExpirationCheck toggles certificate expiration validation.
type ExpirationCheck string

const (
	ExpirationCheckEnabled  ExpirationCheck = "enabled"
	ExpirationCheckDisabled ExpirationCheck = "disabled"
)

func (c ExpirationCheck) IsValid() bool {
	return c == ExpirationCheckEnabled || c == ExpirationCheckDisabled
}

// RevocationCheck selects the certificate revocation strategy.
type RevocationCheck string

const (
	RevocationCheckStrict        RevocationCheck = "strict"
	RevocationCheckAllowSoftFail RevocationCheck = "allowSoftFail"
	RevocationCheckDisabled      RevocationCheck = "disabled"
)

func (c RevocationCheck) IsValid() bool {
	switch c {
	case RevocationCheckStrict, RevocationCheckAllowSoftFail, RevocationCheckDisabled:
		return true
	}
	return false
}

// AuthenticationType identifies the credential kind used against a
// registry host.
type AuthenticationType string

const (
	AuthenticationTypeBasic AuthenticationType = "basic"
	AuthenticationTypeToken AuthenticationType = "token"
)

func (t AuthenticationType) IsValid() bool {
	return t == AuthenticationTypeBasic || t == AuthenticationTypeToken
}
