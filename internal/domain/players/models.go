package players

import "github.com/shopspring/decimal"

// Skill bounds applied to every attribute and map proficiency.
const (
	MinSkill = 1
	MaxSkill = 20
)

// Morale bounds.
const (
	MinMorale = 0.0
	MaxMorale = 100.0
)

// Role is a player's preferred in-game responsibility.
type Role string

const (
	RoleAWPer        Role = "awper"
	RoleIGL          Role = "igl"
	RoleEntryFragger Role = "entry"
	RoleSupport      Role = "support"
	RoleLurker       Role = "lurker"
	RoleRifler       Role = "rifler"
)

// Roles lists every role in assignment priority order.
var Roles = []Role{RoleIGL, RoleAWPer, RoleEntryFragger, RoleSupport, RoleLurker, RoleRifler}

// Form is the short-term performance tier.
type Form string

const (
	FormTerrible    Form = "terrible"
	FormPoor        Form = "poor"
	FormAverage     Form = "average"
	FormGood        Form = "good"
	FormExcellent   Form = "excellent"
	FormExceptional Form = "exceptional"
)

// Phase is the long-term career stage.
type Phase string

const (
	PhaseRising    Phase = "rising"
	PhasePeak      Phase = "peak"
	PhaseDeclining Phase = "declining"
	PhaseVeteran   Phase = "veteran"
	PhaseRetired   Phase = "retired"
)

// EventType classifies a career history entry.
type EventType string

const (
	EventInjury       EventType = "injury"
	EventRecovery     EventType = "recovery"
	EventAward        EventType = "award"
	EventChampionship EventType = "championship"
	EventTransfer     EventType = "transfer"
	EventSigning      EventType = "signing"
	EventRelease      EventType = "release"
	EventDemotion     EventType = "demotion"
	EventPromotion    EventType = "promotion"
	EventRetirement   EventType = "retirement"
	EventFormChange   EventType = "form_change"
	EventMorale       EventType = "morale"
)

// CareerEvent is one append-only history entry.
type CareerEvent struct {
	Day         int       `json:"day"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
}

// Skills are integer attributes on the 1-20 scale.
type Skills struct {
	Aim          int `json:"aim"`
	ReactionTime int `json:"reactionTime"`
	Positioning  int `json:"positioning"`
	Utility      int `json:"utility"`
	Clutch       int `json:"clutch"`
	Consistency  int `json:"consistency"`
	Mental       int `json:"mental"`
	GameSense    int `json:"gameSense"`
	Movement     int `json:"movement"`

	AWP        int `json:"awp"`
	Rifle      int `json:"rifle"`
	Pistol     int `json:"pistol"`
	Leadership int `json:"leadership"`
	Anchor     int `json:"anchor"`
	Entry      int `json:"entry"`
	Lurking    int `json:"lurking"`

	Teamwork    int `json:"teamwork"`
	WorkEthic   int `json:"workEthic"`
	Temperament int `json:"temperament"`
}

// MapStats tracks a player's rating on one map.
type MapStats struct {
	Matches       int     `json:"matches"`
	AverageRating float64 `json:"averageRating"`
}

// Career holds form, morale, phase, and cumulative statistics.
type Career struct {
	Form          Form                `json:"form"`
	Morale        float64             `json:"morale"`
	InjuryDays    int                 `json:"injuryDays"`
	Phase         Phase               `json:"phase"`
	Experience    float64             `json:"experience"`
	Matches       int                 `json:"matches"`
	Wins          int                 `json:"wins"`
	Kills         int                 `json:"kills"`
	Deaths        int                 `json:"deaths"`
	Assists       int                 `json:"assists"`
	Headshots     int                 `json:"headshots"`
	MVPs          int                 `json:"mvps"`
	AverageRating float64             `json:"averageRating"`
	Maps          map[string]MapStats `json:"maps,omitempty"`
	History       []CareerEvent       `json:"history,omitempty"`
}

// Player is a professional with skills, career state, and contract summary.
type Player struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Nickname       string          `json:"nickname"`
	Nationality    string          `json:"nationality"`
	Age            int             `json:"age"`
	Role           Role            `json:"role"`
	Skills         Skills          `json:"skills"`
	MapProficiency map[string]int  `json:"mapProficiency,omitempty"`
	Career         Career          `json:"career"`
	Salary         decimal.Decimal `json:"salary"`
	ContractMonths int             `json:"contractMonths"`
	MarketValue    decimal.Decimal `json:"marketValue"`
	TeamID         string          `json:"teamId,omitempty"`
}
