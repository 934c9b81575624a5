package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User - учётная запись пользователя сервиса отзывов.
type User struct {
	ID                       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName                string        `bson:"first_name" json:"firstName"`
	LastName                 string        `bson:"last_name" json:"lastName"`
	Email                    string        `bson:"email" json:"email"`
	PasswordHash             string        `bson:"password_hash" json:"-"`
	Role                     string        `bson:"role" json:"role"`
	IsEmailVerified          bool          `bson:"is_email_verified" json:"isEmailVerified"`
	EmailVerificationCode    string        `bson:"email_verification_code,omitempty" json:"-"`
	EmailVerificationExpires time.Time     `bson:"email_verification_expires,omitempty" json:"-"`
	EmailNotifications       bool          `bson:"email_notifications" json:"emailNotifications"`
	IsActive                 bool          `bson:"is_active" json:"isActive"`
	LastLogin                time.Time     `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt                time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt                time.Time     `bson:"updated_at" json:"updatedAt"`
}

// FullName возвращает имя для писем и подписей комментариев.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsStaff сообщает, имеет ли пользователь права модерации.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}
