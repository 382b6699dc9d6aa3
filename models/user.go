package models

import (
	"time"
)

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	DisplayName string     `gorm:"column:display_name" json:"display_name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	RoleID      int        `gorm:"column:role_id" json:"role_id"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	TikTokHandle    *string `gorm:"column:tiktok_handle" json:"tiktok_handle,omitempty"`
	InstagramHandle *string `gorm:"column:instagram_handle" json:"instagram_handle,omitempty"`
	YouTubeHandle   *string `gorm:"column:youtube_handle" json:"youtube_handle,omitempty"`
	FollowerCount   *int    `gorm:"column:follower_count" json:"follower_count,omitempty"`
	ShippingAddress *string `gorm:"column:shipping_address" json:"shipping_address,omitempty"`
	Phone           *string `gorm:"column:phone" json:"phone,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}
