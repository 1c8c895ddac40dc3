package domain

// DefaultFeedingIntervalMinutes is the reminder interval used until the user
// picks one.
const DefaultFeedingIntervalMinutes = 120

// Settings is the persisted user preference document. Only the feeding
// reminder reads it.
type Settings struct {
	FeedingIntervalEnabled bool `json:"feedingIntervalEnabled"`
	FeedingIntervalMinutes int  `json:"feedingIntervalMinutes"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{FeedingIntervalMinutes: DefaultFeedingIntervalMinutes}
}
