package entity

import "time"

// Notice is a site-wide announcement post.
type Notice struct {
	ID        int64     `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	ViewCount int64     `bson:"view_count" json:"view_count"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	IsDeleted bool      `bson:"is_deleted" json:"-"`
}

// CommunityPost is a user-authored board post.
type CommunityPost struct {
	ID        int64     `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Author    string    `bson:"author" json:"author"`
	ViewCount int64     `bson:"view_count" json:"view_count"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	IsDeleted bool      `bson:"is_deleted" json:"-"`
}
