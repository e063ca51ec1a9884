package config

import "errors"

var (
	ErrInvalidTierKind  = errors.New("config: invalid tier kind")
	ErrInvalidCapacity  = errors.New("config: tier capacity must be positive")
	ErrInvalidTTL       = errors.New("config: ttl exceeds maxTTL")
	ErrMissingRedisAddr = errors.New("config: redis tier requires addr or url")
	ErrMissingFileDir   = errors.New("config: file tier requires dir")
	ErrInvalidFetch     = errors.New("config: invalid fetch limits")
	ErrInvalidRetry     = errors.New("config: invalid retry settings")
)
