package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Cache
const (
	AvailabilityCacheTTLSeconds = 300
)

// Queue task types
const (
	TaskTypeAvailabilityReconcile = "availability:reconcile"
	QueueDefault                  = "default"
)

// Date and time formats used across the availability ledger
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04:05"
)
