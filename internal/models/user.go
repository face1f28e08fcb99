package models

import (
	"time"
)

type User struct {
	ID                        string     `json:"id" gorm:"primaryKey"`
	FullName                  string     `json:"full_name" gorm:"not null"`
	Email                     string     `json:"email" gorm:"unique;not null"`
	Password                  string     `json:"-" gorm:"not null"`
	AvatarURL                 string     `json:"avatar_url"`
	CreditsBalance            int        `json:"credits_balance" gorm:"not null;default:5"`
	IsProMember               bool       `json:"is_pro_member" gorm:"not null;default:false"`
	ProMembershipExpiresAt    *time.Time `json:"pro_membership_expires_at"`
	SubscriptionInGracePeriod bool       `json:"subscription_in_grace_period" gorm:"not null;default:false"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

// ProStatus is the subscription snapshot returned to the mobile client.
type ProStatus struct {
	CreditsBalance            int        `json:"credits_balance"`
	IsProMember               bool       `json:"is_pro_member"`
	ProMembershipExpiresAt    *time.Time `json:"pro_membership_expires_at"`
	SubscriptionInGracePeriod bool       `json:"subscription_in_grace_period"`
}
