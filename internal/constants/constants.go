package constants

import "time"

const (
	StorageKey         = "shortenedUrls"
	RedirectPathPrefix = "/r/"
	MaxBatchSize       = 5
	// MaxValidityDays keeps expiry dates inside four-digit years.
	MaxValidityDays        = 36500
	DefaultShortCodeLength = 6
	MaxRetries             = 5
	RequestTimeout         = 30 * time.Second
	ExpiryTimeFormat       = "2006-01-02T15:04:05.000Z07:00"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)
