package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered identity. The cart is part of the same aggregate and is
// only ever written together with a Version bump.
type User struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name      string     `gorm:"not null" bson:"name" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Password  string     `gorm:"not null" bson:"password" json:"-"` // bcrypt hash
	Role      Role       `gorm:"type:varchar(10);not null" bson:"role" json:"role"`
	Cart      []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" bson:"cart" json:"cart"`
	Version   int64      `gorm:"not null" bson:"version" json:"-"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is what the API returns for an identity.
type PublicUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
