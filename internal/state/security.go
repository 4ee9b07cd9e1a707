package state

// SecurityLevel is a coarse security posture preset.
type SecurityLevel string

// Security posture presets.
const (
	SecurityLow     SecurityLevel = "low"
	SecurityMedium  SecurityLevel = "medium"
	SecurityHigh    SecurityLevel = "high"
	SecurityMaximum SecurityLevel = "maximum"
)

func (l SecurityLevel) valid() bool {
	switch l {
	case SecurityLow, SecurityMedium, SecurityHigh, SecurityMaximum:
		return true
	}
	return false
}

// AuthMethod identifies the user authentication mechanism.
type AuthMethod string

// Authentication methods.
const (
	AuthNone        AuthMethod = "none"
	AuthPassword    AuthMethod = "password"
	AuthBiometric   AuthMethod = "biometric"
	AuthToken       AuthMethod = "token"
	AuthCertificate AuthMethod = "certificate"
)

func (m AuthMethod) valid() bool {
	switch m {
	case AuthNone, AuthPassword, AuthBiometric, AuthToken, AuthCertificate:
		return true
	}
	return false
}

// SecuritySettings hold encryption, audit, authentication, and access
// control policy.
type SecuritySettings struct {
	EncryptionEnabled bool          `json:"encryption_enabled"`
	AuditLogging      bool          `json:"audit_logging"`
	SecurityLevel     SecurityLevel `json:"security_level"`

	Authentication AuthenticationSettings `json:"authentication"`
	AccessControl  AccessControlSettings  `json:"access_control"`
}

// AuthenticationSettings configure user authentication.
type AuthenticationSettings struct {
	Required           bool       `json:"required"`
	Method             AuthMethod `json:"method"`
	SessionTimeoutMins int        `json:"session_timeout_mins"`
	MFA                bool       `json:"mfa"`
}

// AccessControlSettings restrict sensitive operations.
type AccessControlSettings struct {
	RestrictPluginInstall bool `json:"restrict_plugin_install"`
	RestrictFileAccess    bool `json:"restrict_file_access"`
	RestrictNetworkAccess bool `json:"restrict_network_access"`
	RestrictDeviceAccess  bool `json:"restrict_device_access"`
	RestrictSystemChanges bool `json:"restrict_system_changes"`
}

// DefaultSecuritySettings returns security settings with documented defaults.
func DefaultSecuritySettings() SecuritySettings {
	return SecuritySettings{
		EncryptionEnabled: true,
		AuditLogging:      true,
		SecurityLevel:     SecurityHigh,
		Authentication: AuthenticationSettings{
			Required:           false,
			Method:             AuthNone,
			SessionTimeoutMins: 60,
			MFA:                false,
		},
		AccessControl: AccessControlSettings{
			RestrictPluginInstall: true,
			RestrictFileAccess:    true,
			RestrictNetworkAccess: true,
			RestrictDeviceAccess:  true,
			RestrictSystemChanges: true,
		},
	}
}

func (s *SecuritySettings) validate(ve *ValidationErrors, path string) {
	if !s.SecurityLevel.valid() {
		ve.AddWithValue(path+".security_level", "unknown security level",
			s.SecurityLevel, "low, medium, high, maximum")
	}
	if !s.Authentication.Method.valid() {
		ve.AddWithValue(path+".authentication.method", "unknown authentication method",
			s.Authentication.Method, "none, password, biometric, token, certificate")
	}
	inRangeInt(ve, path+".authentication.session_timeout_mins", s.Authentication.SessionTimeoutMins, 5, 1440)
}

// Validate checks every security setting bound.
func (s *SecuritySettings) Validate() error {
	ve := NewValidationErrors()
	s.validate(ve, "security_settings")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (s *SecuritySettings) Merge(other *SecuritySettings) {
	*s = *other
}
