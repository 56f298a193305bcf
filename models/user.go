// models/user.go
package models

import "time"

// Club labels recognised by the platform.
const (
	ClubPro   = "Pro"
	ClubMulti = "Multi"
	ClubGCC   = "GCC"
)

// User represents a club member.
// IsMentor is resolved once at load time; scoring code never re-derives
// mentor eligibility from roles.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	Club      string    `bson:"club" json:"club"`
	IsMentor  bool      `bson:"is_mentor" json:"is_mentor"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
