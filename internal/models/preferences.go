package models

// TeamPreference is a single followed team
type TeamPreference struct {
	TeamName string `json:"team_name" binding:"required"`
	TeamID   string `json:"team_id" binding:"required"`
	Sport    string `json:"sport" binding:"required"`
	IsLocal  bool   `json:"is_local"`
}

// UserPreferences holds the location and followed teams for a user.
// Preferences are request-scoped; they are supplied per call or defaulted,
// never persisted server-side.
type UserPreferences struct {
	Location string           `json:"location"`
	Teams    []TeamPreference `json:"teams"`
}
