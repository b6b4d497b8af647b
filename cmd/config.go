package cmd

import "time"

// Config holds everything the service reads from the environment. The PII
// key is hex encoded in the environment and decoded before it gets here.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GeocoderBaseURL string
	GeocoderAPIKey  string

	// PIIKey is the 32-byte ChaCha20-Poly1305 key protecting recipient
	// contact data at rest.
	PIIKey []byte

	// Operating boundary of the community program. Deliveries and
	// recipients outside this circle are refused.
	ServiceAreaLat         float64
	ServiceAreaLng         float64
	ServiceAreaRadiusMiles float64

	// ClaimCeiling caps how many active deliveries a volunteer may hold.
	ClaimCeiling int

	// Priority boosts applied when a claimed delivery returns to the open
	// pool.
	CancelBoost  int
	ReleaseBoost int

	// Retention window for contact data on deleted or inactive accounts,
	// and the cron schedule of the purge that enforces it.
	Retention     time.Duration
	PurgeSchedule string
}
