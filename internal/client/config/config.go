package config

// Config holds runtime settings for the bookwarm CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - DatabaseFile: path of the local SQLite database holding the session.
type Config struct {
	ServerBaseURL string
	DatabaseFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://react-native-bookwarm-av2j.onrender.com"
	c.DatabaseFile = "bookwarm.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
