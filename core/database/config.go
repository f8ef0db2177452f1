package database

const (
	// DriverPostgres selects the PostgreSQL backend.
	DriverPostgres = "postgres"
	// DriverSQLite selects the embedded SQLite backend.
	DriverSQLite = "sqlite3"
)

// Config holds database connection settings shared across bots.
// Driver selects the backend; Path is used by sqlite3, the host/port
// fields by postgres.
type Config struct {
	Driver         string `yaml:"driver" envconfig:"DB_DRIVER"`
	Path           string `yaml:"path" envconfig:"DB_PATH"`
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// NormalizedDriver returns the configured driver, defaulting to sqlite3.
func (c Config) NormalizedDriver() string {
	if c.Driver == DriverPostgres {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN builds the sql driver connection string for the configured backend.
// The sqlite DSN enables foreign keys so ON DELETE CASCADE is honoured.
func (c Config) DSN() string {
	if c.NormalizedDriver() == DriverSQLite {
		path := c.Path
		if path == "" {
			path = "shopbot.db"
		}
		return "file:" + path + "?_foreign_keys=on"
	}
	return "user=" + c.User + " password=" + c.Password +
		" host=" + c.Host + " port=" + c.Port +
		" dbname=" + c.Name + " sslmode=" + c.SSLMode
}
