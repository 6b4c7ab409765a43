package models

// Review represents a customer review
type Review struct {
	ID           string  `bson:"_id" json:"id"`
	ReviewerName string  `bson:"reviewer_name" json:"reviewerName"`
	Title        string  `bson:"title" json:"title"`
	Description  string  `bson:"description" json:"description"`
	Rating       int     `bson:"rating" json:"rating"`
	Image        *string `bson:"image" json:"image"` // uploads are not supported, always null
	Date         string  `bson:"date" json:"date"`
}
