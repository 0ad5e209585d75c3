package models

type AchievementType string

const (
	AchievementCount  AchievementType = "count"
	AchievementStreak AchievementType = "streak"
)

type Achievement struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Category    string          `json:"category"`
	Threshold   int             `json:"threshold"`
	Type        AchievementType `json:"type"`
}

// AchievementStatus is the API view of a catalog entry plus its unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// achievementCatalog is the static catalog. Unlock evaluation walks it in
// order, so simultaneous unlocks land in catalog order.
var achievementCatalog = []Achievement{
	{ID: "begin", Title: "First Chant", Description: "Chant the name once", Icon: "🌱", Category: "milestone", Threshold: 1, Type: AchievementCount},
	{ID: "mala_1", Title: "One Mala", Description: "Complete 108 chants", Icon: "📿", Category: "milestone", Threshold: 108, Type: AchievementCount},
	{ID: "mala_10", Title: "Ten Malas", Description: "Complete 1,080 chants", Icon: "🪔", Category: "milestone", Threshold: 1080, Type: AchievementCount},
	{ID: "sahasra", Title: "Sahasranama", Description: "Complete 10,008 chants", Icon: "🕉️", Category: "milestone", Threshold: 10008, Type: AchievementCount},
	{ID: "lakh", Title: "Lakh Japa", Description: "Complete 100,008 chants", Icon: "✨", Category: "milestone", Threshold: 100008, Type: AchievementCount},
	{ID: "streak_3", Title: "Three Days", Description: "Chant three days in a row", Icon: "🔥", Category: "dedication", Threshold: 3, Type: AchievementStreak},
	{ID: "streak_7", Title: "One Week", Description: "Chant seven days in a row", Icon: "🗓️", Category: "dedication", Threshold: 7, Type: AchievementStreak},
	{ID: "streak_21", Title: "Three Weeks", Description: "Chant 21 days in a row", Icon: "🏵️", Category: "dedication", Threshold: 21, Type: AchievementStreak},
	{ID: "streak_108", Title: "Sacred Streak", Description: "Chant 108 days in a row", Icon: "🏆", Category: "dedication", Threshold: 108, Type: AchievementStreak},
}

// AchievementCatalog returns a copy of the static catalog.
func AchievementCatalog() []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}
