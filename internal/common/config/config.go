// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// AWSConfig holds settings for every AWS service the pipeline talks to.
type AWSConfig struct {
	Region string `mapstructure:"region"`

	Bedrock struct {
		ModelID string `mapstructure:"model_id"`
	} `mapstructure:"bedrock"`

	DynamoDB struct {
		Table string `mapstructure:"table"`
	} `mapstructure:"dynamodb"`

	Translate struct {
		TargetLanguage string `mapstructure:"target_language"`
	} `mapstructure:"translate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
