package state

// PluginSystemState tracks which plugins are enabled, their per-plugin
// configuration, and the sandbox resource policy.
type PluginSystemState struct {
	// EnabledPlugins lists plugin identifiers that should be active.
	// Merging unions the lists, preserving the receiver's order and
	// appending unseen entries in the incoming order.
	EnabledPlugins []string `json:"enabled_plugins"`

	// PluginConfigs maps plugin identifier to its configuration.
	// Merging unions by key; the incoming entry wins on conflict.
	PluginConfigs map[string]PluginConfig `json:"plugin_configs"`

	// LoadOrder is the explicit startup ordering. Unlike EnabledPlugins
	// it is fully replaced on merge, never unioned.
	LoadOrder []string `json:"load_order"`

	AutoLoad       bool    `json:"auto_load"`
	SandboxEnabled bool    `json:"sandbox_enabled"`
	MaxMemoryMB    int     `json:"max_memory_mb"`
	MaxCPUPercent  float64 `json:"max_cpu_percent"`
}

// PluginConfig configures a single plugin.
type PluginConfig struct {
	Enabled        bool              `json:"enabled"`
	Priority       int               `json:"priority"`
	Settings       map[string]string `json:"settings"`
	ResourceLimits ResourceLimits    `json:"resource_limits"`
	Permissions    PluginPermissions `json:"permissions"`
}

// ResourceLimits caps a plugin's resource consumption inside the sandbox.
type ResourceLimits struct {
	MaxMemoryMB           int     `json:"max_memory_mb"`
	MaxCPUPercent         float64 `json:"max_cpu_percent"`
	MaxFileHandles        int     `json:"max_file_handles"`
	MaxNetworkConnections int     `json:"max_network_connections"`
	ExecutionTimeoutSecs  int     `json:"execution_timeout_secs"`
}

// PluginPermissions grants a plugin access to host capabilities.
type PluginPermissions struct {
	FileSystemRead      bool `json:"file_system_read"`
	FileSystemWrite     bool `json:"file_system_write"`
	NetworkAccess       bool `json:"network_access"`
	SystemInfo          bool `json:"system_info"`
	DeviceAccess        bool `json:"device_access"`
	PluginCommunication bool `json:"plugin_communication"`
	UIModification      bool `json:"ui_modification"`
}

// DefaultPluginConfig returns a plugin config with sandbox defaults.
func DefaultPluginConfig() PluginConfig {
	return PluginConfig{
		Enabled:  true,
		Priority: 128,
		Settings: make(map[string]string),
		ResourceLimits: ResourceLimits{
			MaxMemoryMB:           256,
			MaxCPUPercent:         10.0,
			MaxFileHandles:        100,
			MaxNetworkConnections: 10,
			ExecutionTimeoutSecs:  30,
		},
		Permissions: PluginPermissions{
			PluginCommunication: true,
			UIModification:      true,
		},
	}
}

// DefaultPluginSystemState returns plugin system state with documented defaults.
func DefaultPluginSystemState() PluginSystemState {
	return PluginSystemState{
		EnabledPlugins: []string{},
		PluginConfigs:  make(map[string]PluginConfig),
		LoadOrder:      []string{},
		AutoLoad:       true,
		SandboxEnabled: true,
		MaxMemoryMB:    512,
		MaxCPUPercent:  25.0,
	}
}

func (r ResourceLimits) validate(ve *ValidationErrors, path string) {
	inRangeInt(ve, path+".max_memory_mb", r.MaxMemoryMB, 1, 4096)
	inRange(ve, path+".max_cpu_percent", r.MaxCPUPercent, 0.1, 100.0)
	if r.MaxFileHandles < 0 || r.MaxFileHandles > 10000 {
		ve.AddWithValue(path+".max_file_handles", "file handle limit out of range",
			r.MaxFileHandles, "0 to 10000")
	}
	if r.MaxNetworkConnections < 0 || r.MaxNetworkConnections > 1000 {
		ve.AddWithValue(path+".max_network_connections", "connection limit out of range",
			r.MaxNetworkConnections, "0 to 1000")
	}
	inRangeInt(ve, path+".execution_timeout_secs", r.ExecutionTimeoutSecs, 1, 3600)
}

func (p *PluginSystemState) validate(ve *ValidationErrors, path string) {
	for _, name := range p.EnabledPlugins {
		if name == "" {
			ve.Add(path+".enabled_plugins", "plugin name must not be empty")
			break
		}
	}
	for name, cfg := range p.PluginConfigs {
		if name == "" {
			ve.Add(path+".plugin_configs", "plugin name must not be empty")
			continue
		}
		cfg.ResourceLimits.validate(ve, path+".plugin_configs."+name+".resource_limits")
	}
	inRangeInt(ve, path+".max_memory_mb", p.MaxMemoryMB, 64, 8192)
	inRange(ve, path+".max_cpu_percent", p.MaxCPUPercent, 1.0, 100.0)
}

// Validate checks every plugin system bound.
func (p *PluginSystemState) Validate() error {
	ve := NewValidationErrors()
	p.validate(ve, "plugin_state")
	return ve.AsError()
}

// Merge combines another plugin system state into this one.
//
// EnabledPlugins is unioned preserving order, PluginConfigs is unioned by
// key with incoming entries winning, LoadOrder and the scalar fields are
// fully replaced by the incoming values.
func (p *PluginSystemState) Merge(other *PluginSystemState) {
	seen := make(map[string]bool, len(p.EnabledPlugins))
	for _, name := range p.EnabledPlugins {
		seen[name] = true
	}
	for _, name := range other.EnabledPlugins {
		if !seen[name] {
			p.EnabledPlugins = append(p.EnabledPlugins, name)
			seen[name] = true
		}
	}

	if p.PluginConfigs == nil && len(other.PluginConfigs) > 0 {
		p.PluginConfigs = make(map[string]PluginConfig, len(other.PluginConfigs))
	}
	for name, cfg := range other.PluginConfigs {
		existing, ok := p.PluginConfigs[name]
		if ok {
			existing.mergeFrom(cfg)
			p.PluginConfigs[name] = existing
		} else {
			p.PluginConfigs[name] = cfg.clone()
		}
	}

	p.LoadOrder = make([]string, len(other.LoadOrder))
	copy(p.LoadOrder, other.LoadOrder)
	p.AutoLoad = other.AutoLoad
	p.SandboxEnabled = other.SandboxEnabled
	p.MaxMemoryMB = other.MaxMemoryMB
	p.MaxCPUPercent = other.MaxCPUPercent
}

// mergeFrom overlays an incoming plugin config onto the receiver; the
// settings map is unioned with incoming keys winning.
func (c *PluginConfig) mergeFrom(other PluginConfig) {
	c.Enabled = other.Enabled
	c.Priority = other.Priority
	c.ResourceLimits = other.ResourceLimits
	c.Permissions = other.Permissions
	if c.Settings == nil && len(other.Settings) > 0 {
		c.Settings = make(map[string]string, len(other.Settings))
	}
	for k, v := range other.Settings {
		c.Settings[k] = v
	}
}

// clone deep-copies the config so merged trees never alias maps.
func (c PluginConfig) clone() PluginConfig {
	out := c
	if c.Settings != nil {
		out.Settings = make(map[string]string, len(c.Settings))
		for k, v := range c.Settings {
			out.Settings[k] = v
		}
	}
	return out
}
