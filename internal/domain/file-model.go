package domain

import "gorm.io/gorm"

// File is an uploaded object. Key is the storage public ID used to delete
// the asset again, URL is the public delivery URL.
type File struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Key string `gorm:"uniqueIndex;not null" json:"key"`
	URL string `gorm:"not null" json:"url"`
	gorm.Model
}
