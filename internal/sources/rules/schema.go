package rules

// Config represents the top-level structure of the rules yaml file.
// It lets a deployment extend the built-in host lists without
// rebuilding; built-in rules always stay in place.
type Config struct {
	Categories map[string]HostList `yaml:"categories,omitempty"`
	Groups     map[string]HostList `yaml:"groups,omitempty"`
}

// HostList holds the extra hosts bound to one category or group.
type HostList struct {
	Hosts []string `yaml:"hosts"`
}
