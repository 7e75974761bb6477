package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Scheme SchemeConfig `mapstructure:"scheme" validate:"required"`
	Log    LogConfig    `mapstructure:"log"    validate:"required"`
}

// SchemeConfig selects the compatibility scheme entries are processed with.
type SchemeConfig struct {
	Family          string `mapstructure:"family"           validate:"required,oneof=MaterialsProject MIT"`
	CompatType      string `mapstructure:"compat_type"      validate:"required,oneof=GGA Advanced"`
	CorrectPeroxide bool   `mapstructure:"correct_peroxide"`
	Aqueous         bool   `mapstructure:"aqueous"`

	// TablesDir overrides the embedded correction tables when set.
	TablesDir string `mapstructure:"tables_dir" validate:"omitempty,dir"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
