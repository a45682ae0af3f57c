package config

type ServiceConfig struct {
	Environment string `yaml:"environment"`
	ClientURL   string `yaml:"clientUrl"`

	// AdminEmail is the single identity allowed to manage the allow-list.
	// It is implicitly part of the allow-list and cannot be removed.
	AdminEmail string `yaml:"adminEmail"`

	// JWTSecret verifies the identity assertion attached to each request.
	JWTSecret string `yaml:"jwtSecret"`
}
