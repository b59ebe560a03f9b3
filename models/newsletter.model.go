package models

import "gorm.io/gorm"

// NewsletterSubscriber is a mailing-list entry, synced best-effort to the
// external newsletter provider
type NewsletterSubscriber struct {
	gorm.Model
	Email            string `json:"email" gorm:"uniqueIndex;not null"`
	UnsubscribeToken string `json:"-" gorm:"uniqueIndex;not null"`
	Unsubscribed     bool   `json:"unsubscribed" gorm:"default:false"`
	ProviderSynced   bool   `json:"-" gorm:"default:false"`
	IsDeleted        bool   `gorm:"default:false"`
}
