package ds

import "time"

// DocumentTemplate carries either an HTML body or a structured .docx blob. When a blob is
// present it is authoritative; Content is only the fallback body.
type DocumentTemplate struct {
	ID        uint    `gorm:"primaryKey"`
	Title     string  `gorm:"type:varchar(200);not null"`
	Version   string  `gorm:"type:varchar(10);not null"`
	Content   string  `gorm:"type:text"`
	BlobKey   *string `gorm:"type:varchar(255)"` // object key in template storage
	Active    bool    `gorm:"type:boolean;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t DocumentTemplate) HasBlob() bool { return t.BlobKey != nil && *t.BlobKey != "" }
