package config

// Config holds runtime settings for the userdir shell.
//
// Fields:
//   - StorePath: JSON file holding the user records.
//   - DatabasePath: SQLite file for the activity journal and the order book.
//   - OrdersDir: directory receiving one JSON document per submitted order.
//   - OrderFields: order form fields, prompted in this order.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StorePath    string
	DatabasePath string
	OrdersDir    string
	OrderFields  []string
	LogLevel     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "users.json"
	c.DatabasePath = "userdir.db"
	c.OrdersDir = "orders"
	c.OrderFields = []string{"customer", "product", "quantity", "address"}
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the config file (if given), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
