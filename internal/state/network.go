package state

// ProxyType identifies the proxy protocol.
type ProxyType string

// Proxy protocols.
const (
	ProxyHTTP   ProxyType = "http"
	ProxyHTTPS  ProxyType = "https"
	ProxySOCKS4 ProxyType = "socks4"
	ProxySOCKS5 ProxyType = "socks5"
)

func (p ProxyType) valid() bool {
	switch p {
	case ProxyHTTP, ProxyHTTPS, ProxySOCKS4, ProxySOCKS5:
		return true
	}
	return false
}

// TLSVersion is a minimum TLS protocol version.
type TLSVersion string

// Supported minimum TLS versions.
const (
	TLS10 TLSVersion = "tls1.0"
	TLS11 TLSVersion = "tls1.1"
	TLS12 TLSVersion = "tls1.2"
	TLS13 TLSVersion = "tls1.3"
)

func (v TLSVersion) valid() bool {
	switch v {
	case TLS10, TLS11, TLS12, TLS13:
		return true
	}
	return false
}

// NetworkConfig holds connection limits, proxy, and TLS policy.
type NetworkConfig struct {
	Enabled               bool `json:"enabled"`
	ConnectionTimeoutSecs int  `json:"connection_timeout_secs"`
	RequestTimeoutSecs    int  `json:"request_timeout_secs"`
	MaxConnections        int  `json:"max_connections"`

	Proxy ProxySettings `json:"proxy"`
	SSL   SSLSettings   `json:"ssl"`
}

// ProxySettings configure an outbound proxy.
type ProxySettings struct {
	Enabled      bool      `json:"enabled"`
	Type         ProxyType `json:"type"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	AuthRequired bool      `json:"auth_required"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
}

// SSLSettings configure TLS verification policy.
type SSLSettings struct {
	VerifySSL          bool       `json:"verify_ssl"`
	AcceptInvalidCerts bool       `json:"accept_invalid_certs"`
	MinTLSVersion      TLSVersion `json:"min_tls_version"`
	CertificatePinning bool       `json:"certificate_pinning"`
}

// DefaultNetworkConfig returns network configuration with documented defaults.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Enabled:               true,
		ConnectionTimeoutSecs: 30,
		RequestTimeoutSecs:    60,
		MaxConnections:        10,
		Proxy: ProxySettings{
			Enabled: false,
			Type:    ProxyHTTP,
			Port:    8080,
		},
		SSL: SSLSettings{
			VerifySSL:          true,
			AcceptInvalidCerts: false,
			MinTLSVersion:      TLS12,
			CertificatePinning: false,
		},
	}
}

func (n *NetworkConfig) validate(ve *ValidationErrors, path string) {
	inRangeInt(ve, path+".connection_timeout_secs", n.ConnectionTimeoutSecs, 1, 300)
	inRangeInt(ve, path+".request_timeout_secs", n.RequestTimeoutSecs, 1, 600)
	inRangeInt(ve, path+".max_connections", n.MaxConnections, 1, 100)

	if !n.Proxy.Type.valid() {
		ve.AddWithValue(path+".proxy.type", "unknown proxy type",
			n.Proxy.Type, "http, https, socks4, socks5")
	}
	if n.Proxy.Enabled {
		if n.Proxy.Host == "" {
			ve.Add(path+".proxy.host", "host must not be empty when proxy is enabled")
		}
		if n.Proxy.Port == 0 {
			ve.Add(path+".proxy.port", "port must not be zero when proxy is enabled")
		}
		if n.Proxy.AuthRequired && n.Proxy.Username == "" {
			ve.Add(path+".proxy.username", "username must not be empty when authentication is required")
		}
	}

	if !n.SSL.MinTLSVersion.valid() {
		ve.AddWithValue(path+".ssl.min_tls_version", "unknown TLS version",
			n.SSL.MinTLSVersion, "tls1.0, tls1.1, tls1.2, tls1.3")
	}
}

// Validate checks every network configuration bound.
func (n *NetworkConfig) Validate() error {
	ve := NewValidationErrors()
	n.validate(ve, "network_config")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (n *NetworkConfig) Merge(other *NetworkConfig) {
	*n = *other
}
