package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAuthorImg is used when a post is created without an author picture.
const DefaultAuthorImg = "/profile_icon.png"

const (
	CategoryStartup    = "Startup"
	CategoryTechnology = "Technology"
	CategoryLifestyle  = "Lifestyle"
)

// Categories is the fixed set offered by the authoring form. The server does
// not reject other values.
var Categories = []string{CategoryStartup, CategoryTechnology, CategoryLifestyle}

// Post is a blog article. Description holds admin-authored HTML and is
// rendered verbatim.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Author      string             `bson:"author" json:"author"`
	AuthorImg   string             `bson:"authorImg" json:"authorImg"`
	Image       string             `bson:"image" json:"image"`
	Date        time.Time          `bson:"date" json:"date"`
}

// PostUpdate carries the fields of an edit. Empty fields leave the stored
// value untouched.
type PostUpdate struct {
	Title       string
	Description string
	Category    string
	Author      string
	AuthorImg   string
	Image       string
}
