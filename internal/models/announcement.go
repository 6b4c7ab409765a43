package models

// Announcement is the banner shown at the top of every page.
// Only one exists at a time.
type Announcement struct {
	Title     string `bson:"title" json:"title"`
	Message   string `bson:"message" json:"message"`
	Days      string `bson:"days" json:"days"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
}
