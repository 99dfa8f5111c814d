package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/esports-sim/internal/providers"
)

// normalizeProviderName returns a lower-cased source name, deriving it from the
// provider type when none is configured. Metrics and logs share this label.
func normalizeProviderName(raw string, provider providers.Provider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
