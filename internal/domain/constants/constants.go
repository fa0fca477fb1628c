// Package constants contains configuration values shared between layers.
package constants

// Environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Event publisher providers.
const (
	PubSubProviderLocal    = "local"
	PubSubProviderGoogle   = "google"
	PubSubProviderRabbitMQ = "rabbitmq"
)

// Context keys set by the authentication middleware.
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
	ContextKeyLSPID  = "lspID"
)

// Upload limits.
const (
	MaxUploadSizeBytes = 10 << 20
	UploadContentType  = "application/pdf"
	UploadFolder       = "cargomatch"
)
