package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	SearchSuggestionLimit = 10
	DefaultShadowLimit    = 3
	MaxShadowLimit        = 25
	MaxPuuidLength        = 128
)

const (
	// profile service: 90 requests per minute, burst 10
	ProfileAPIRequestsPerMinute = 90
	ProfileAPIBurst             = 10
	ProfileAPIMaxConnsPerHost   = 100

	BreakerFailureThreshold = 5
	BreakerOpenTimeout      = 30 * time.Second
	BreakerInterval         = 1 * time.Minute
	BreakerHalfOpenRequests = 1
)
