package shared

type ServerConfig struct {
	Sqlite      SqliteConfig      `mapstructure:"sqlite"`
	ContactBook ContactBookConfig `mapstructure:"contactbook" validate:"required"`
	Google      GoogleConfig      `mapstructure:"google"`
}

type SqliteConfig struct {
	// PassPhrase turns on sqlcipher encryption, leave empty for a plain sqlite file
	PassPhrase string `mapstructure:"passPhrase"`
}

type ContactBookConfig struct {
	PrivateKeyPem   string         `mapstructure:"privateKeyPem" validate:"required"`
	TokenTTLInHours int            `mapstructure:"tokenTTLInHours" validate:"min=1"`
	BcryptCost      int            `mapstructure:"bcryptCost" validate:"omitempty,min=4,max=31"`
	Cron            CronConfig     `mapstructure:"cron" validate:"required"`
	Listener        ListenerConfig `mapstructure:"listener" validate:"required"`
	Cors            CorsConfig     `mapstructure:"cors"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket" validate:"required_with=EnableSqliteBackupAndSync"`
	Prefix                    string `mapstructure:"prefix"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackupAndSync"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}
