package models

import "time"

// ISOTimeFormat is the wire format for record timestamps: UTC,
// millisecond precision.
const ISOTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ISONow returns the current UTC time in the record timestamp format.
func ISONow() string {
	return time.Now().UTC().Format(ISOTimeFormat)
}

type UserName struct {
	First string `json:"first" bson:"first"`
	Last  string `json:"last" bson:"last"`
}

type User struct {
	ID         string   `json:"id" bson:"id"`
	GUID       string   `json:"guid" bson:"guid"`
	IsActive   bool     `json:"isActive" bson:"isActive"`
	Balance    string   `json:"balance" bson:"balance"`
	Picture    string   `json:"picture" bson:"picture"`
	PictureKey string   `json:"pictureKey,omitempty" bson:"pictureKey,omitempty"`
	Age        int      `json:"age" bson:"age"`
	EyeColor   string   `json:"eyeColor" bson:"eyeColor"`
	Name       UserName `json:"name" bson:"name"`
	Company    string   `json:"company" bson:"company"`
	Phone      string   `json:"phone" bson:"phone"`
	Address    string   `json:"address" bson:"address"`
	Email      string   `json:"email" bson:"email"`
	Password   string   `json:"password,omitempty" bson:"password,omitempty"`
	CreatedAt  string   `json:"createdAt" bson:"createdAt"`
	UpdatedAt  string   `json:"updatedAt" bson:"updatedAt"`
}

// Redacted returns a copy with the password hash cleared; omitempty keeps
// the field out of any payload leaving the service.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

// Admin records are pre-seeded data; this API never creates or mutates
// them.
type Admin struct {
	Email    string `json:"email" bson:"email"`
	Password string `json:"password,omitempty" bson:"password,omitempty"`
	Role     string `json:"role" bson:"role"`
}

func (a Admin) Redacted() Admin {
	a.Password = ""
	return a
}
