package model

// Profile holds the single user's display profile.
type Profile struct {
	Name             string   `json:"name"`
	Handle           string   `json:"handle"`
	AvatarURL        string   `json:"avatarUrl"`
	StylePreferences []string `json:"stylePreferences"`
}
