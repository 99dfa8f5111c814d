package remote

// packResponse is the wire envelope served by a data pack host.
type packResponse struct {
	Data packPayload  `json:"data"`
	Meta metaResponse `json:"meta"`
}

type packPayload struct {
	Name             string            `json:"name"`
	FirstNames       []string          `json:"first_names"`
	LastNames        []string          `json:"last_names"`
	NicknamePrefixes []string          `json:"nickname_prefixes"`
	NicknameSuffixes []string          `json:"nickname_suffixes"`
	NicknameWords    []string          `json:"nickname_words"`
	Countries        []countryResponse `json:"countries"`
	Maps             []mapResponse     `json:"maps"`
	TeamNames        []string          `json:"team_names"`
	Regions          []string          `json:"regions"`
}

type countryResponse struct {
	Name       string `json:"country_name"`
	Code       string `json:"country_code"`
	Popularity int    `json:"player_popularity"`
}

type mapResponse struct {
	Name string `json:"map_name"`
	// TSideWinRate is the attacking side's historical round win percentage.
	TSideWinRate float64 `json:"t_side_win_rate"`
}

type metaResponse struct {
	Version string `json:"version"`
}
