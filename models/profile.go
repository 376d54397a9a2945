package models

import "time"

// Profile is the site owner's contact card. Exactly one row is expected.
type Profile struct {
	ID           string     `json:"id" gorm:"type:text;primaryKey;not null"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	Title        string     `json:"title" gorm:"type:text;not null"`
	Bio          string     `json:"bio" gorm:"type:text;not null"`
	Email        string     `json:"email" gorm:"type:text;not null"`
	Phone        *string    `json:"phone" gorm:"type:text"`
	Location     *string    `json:"location" gorm:"type:text"`
	LinkedinURL  *string    `json:"linkedinUrl" gorm:"column:linkedin_url;type:text"`
	TwitterURL   *string    `json:"twitterUrl" gorm:"column:twitter_url;type:text"`
	InstagramURL *string    `json:"instagramUrl" gorm:"column:instagram_url;type:text"`
	AvatarURL    *string    `json:"avatarUrl" gorm:"column:avatar_url;type:text"`
	AvatarData   *string    `json:"avatarData" gorm:"column:avatar_data;type:text"`
	ResumeURL    *string    `json:"resumeUrl" gorm:"column:resume_url;type:text"`
	ResumeData   *string    `json:"resumeData" gorm:"column:resume_data;type:text"`
	CreatedAt    *time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt    *time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// TableName keeps the singular table name used by the hosted schema
func (Profile) TableName() string {
	return "profile"
}

// AvatarSrc resolves the avatar the same way gallery images are resolved
func (p Profile) AvatarSrc() string {
	return ImageSrc(p.AvatarURL, p.AvatarData)
}
