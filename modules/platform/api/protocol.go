package api

// Wire types for the orchestrator HTTP API. Every response carries the
// common envelope; operation payloads ride alongside it in the same object.

// envelope is the common part of every orchestrator response
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Profile is a managed browser profile as reported by the orchestrator.
// Profiles are owned by the server; the client only ever re-fetches the
// full set and never mutates one locally.
type Profile struct {
	Profile string `json:"profile"`
	Email   string `json:"email,omitempty"`
}

// QuarantineEntry describes a profile the orchestrator has pulled out of
// automated refresh rotation
type QuarantineEntry struct {
	Profile     string  `json:"profile"`
	Failures    int     `json:"failures"`
	NextAllowed float64 `json:"next_allowed"`
}

// Summary is the server-computed dashboard aggregate. Fields mirror the
// orchestrator's rotation bookkeeping; absent fields decode to zero values
// and the presentation layer applies display fallbacks.
type Summary struct {
	TotalProfiles     int     `json:"total_profiles"`
	RotationGroups    int     `json:"rotation_groups"`
	CurrentGroupIndex int     `json:"current_group_index"`
	CurrentGroupSize  int     `json:"current_group_size"`
	QuarantinedCount  int     `json:"quarantined_profiles"`
	ProfilesInBackoff int     `json:"profiles_in_backoff"`
	LastCycleTime     float64 `json:"last_cycle_time"`
}

// Request bodies

type loginRequest struct {
	Password string `json:"password"`
}

type launchRequest struct {
	Profile string `json:"profile"`
	Email   string `json:"email,omitempty"`
}

type addProxiesRequest struct {
	Proxies map[string]string `json:"proxies"`
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type resetQuarantineRequest struct {
	Profile string `json:"profile"`
}

// Response payloads

type loginResponse struct {
	envelope
	Token string `json:"token"`
}

type profilesResponse struct {
	envelope
	Profiles []Profile `json:"profiles"`
}

type logsResponse struct {
	envelope
	Logs []string `json:"logs"`
}

type summaryResponse struct {
	envelope
	Summary *Summary `json:"summary"`
}

type quarantineResponse struct {
	envelope
	Quarantined []QuarantineEntry `json:"quarantined"`
}
