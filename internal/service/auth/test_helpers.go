package auth

import "time"

// NewTestTokenService creates a token service with injectable secrets,
// lifetimes and time source for deterministic tests. No clock skew is
// applied so expiry boundaries are exact.
func NewTestTokenService(
	accessSecret, refreshSecret string,
	accessLifetime, refreshLifetime time.Duration,
	timeFunc func() time.Time,
) TokenService {
	return &hmacTokenService{
		accessKey:       []byte(accessSecret),
		refreshKey:      []byte(refreshSecret),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
		timeFunc:        timeFunc,
		clockSkew:       0,
	}
}
