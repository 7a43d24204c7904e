package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkshelf/linkshelf/internal/index"
	"github.com/linkshelf/linkshelf/internal/links"
	"github.com/linkshelf/linkshelf/internal/logger"
	"github.com/linkshelf/linkshelf/internal/metadata"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time   // for testing, defaults to time.Now
	AllowedCIDRS []string           // IPs allowed to hit admin endpoints (empty = no filter)
	TrustProxy   bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient  *redis.Client      // Redis client connection
	MemoryIndex  *index.MemoryIndex // In-memory link index
	Links        *links.Service     // Link orchestration service
	Metadata     *metadata.Service  // Metadata fetcher for previews
	DrainTrigger chan struct{}      // Channel to trigger manual share-inbox drain
}
