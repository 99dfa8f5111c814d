package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	FieldSeason     = "season"
	FieldDay        = "day"
	FieldPhase      = "phase"
	FieldMatchID    = "match_id"
	FieldTeamID     = "team_id"
	FieldPlayerID   = "player_id"
	FieldContractID = "contract_id"
	FieldListingID  = "listing_id"
	FieldMap        = "map"
	FieldEvent      = "event"
	FieldAmount     = "amount"
	FieldFile       = "file"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
