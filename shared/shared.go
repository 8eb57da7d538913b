package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
)

// BuildCacheKey joins the given parts into a colon-separated cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery builds a cache key from a prefix and the JSON form
// of the given query payloads, so that distinct queries cache independently.
func BuildCacheKeyWithQuery(prefix string, queries ...any) string {
	parts := []string{prefix}

	for _, query := range queries {
		encoded, err := json.Marshal(query)
		if err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

			continue
		}

		parts = append(parts, string(encoded))
	}

	return strings.Join(parts, ":")
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, fmt.Sprintf("%s%s", prefix, constant.Asterix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
