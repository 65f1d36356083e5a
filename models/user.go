package models

import (
	"time"
)

type User struct {
	UserID   uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserName string     `gorm:"column:user_name;unique" json:"user_name"`
	Email    string     `gorm:"column:email" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	IsLdap   bool       `gorm:"column:is_ldap" json:"is_ldap"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Roles []Role `gorm:"many2many:user_roles;foreignKey:UserID;joinForeignKey:UserID;References:RoleID;joinReferences:RoleID" json:"roles,omitempty"`
}

// IsActive reports whether the account may still receive notifications.
func (u *User) IsActive() bool {
	return u.DeleteAt == nil
}

type Role struct {
	RoleID   uint       `gorm:"primaryKey;column:role_id" json:"role_id"`
	Name     string     `gorm:"column:name;unique" json:"name"`
	IsLdap   bool       `gorm:"column:is_ldap" json:"is_ldap"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Users []User `gorm:"many2many:user_roles;foreignKey:RoleID;joinForeignKey:RoleID;References:UserID;joinReferences:UserID" json:"users,omitempty"`
}

func (r *Role) IsDeleted() bool {
	return r.DeleteAt != nil
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}
