package rules

// Config defines which rule pack is active and where packs are discovered
type Config struct {
	Pack  string   `yaml:"pack" default:"builtin"`
	Paths []string `yaml:"paths"`
}

// Validate validates and sets defaults for the configuration
func (c *Config) Validate() error {
	c.SetDefaults()

	return nil
}

// SetDefaults sets the default discovery path for rule packs
func (c *Config) SetDefaults() {
	if c.Pack == "" {
		c.Pack = BuiltinPackName
	}

	if len(c.Paths) == 0 {
		c.Paths = []string{"rules/packs"}
	}
}
