package ds

import "time"

type TermStatus string

// Stored codes match the legacy records.
const (
	TermDraft     TermStatus = "PENDENTE"
	TermSent      TermStatus = "ENVIADO"
	TermSigned    TermStatus = "ASSINADO"
	TermDeclined  TermStatus = "RECUSADO"
	TermCancelled TermStatus = "CANCELADO"
)

func (s TermStatus) Terminal() bool {
	return s == TermSigned || s == TermDeclined || s == TermCancelled
}

func (s TermStatus) Valid() bool {
	switch s {
	case TermDraft, TermSent, TermSigned, TermDeclined, TermCancelled:
		return true
	}
	return false
}

// Term is a custody agreement (termo de responsabilidade).
// SignedAt, SignatureIP, SignatureUserAgent and SignatureHash are audit evidence: written
// once by the signature commit and never through any other update path.
type Term struct {
	ID         uint       `gorm:"primaryKey"`
	Token      string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	SignerID   uint       `gorm:"not null;index"`
	TemplateID uint       `gorm:"not null;index"`
	Status     TermStatus `gorm:"type:varchar(20);not null;default:'PENDENTE';index"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time
	SentAt     *time.Time `gorm:"default:null"` // first transition into ENVIADO
	SignedAt   *time.Time `gorm:"default:null"`

	SignatureIP        *string `gorm:"type:varchar(64)"`
	SignatureUserAgent *string `gorm:"type:text"`
	SignatureHash      string  `gorm:"type:varchar(64);not null;default:''"`
	HashVersion        string  `gorm:"type:varchar(10);not null;default:''"`

	ArtifactRef       *string    `gorm:"type:varchar(255)"`
	RenderAttemptedAt *time.Time `gorm:"default:null;index"` // last sweep attempt
	Notes             string     `gorm:"type:text;not null;default:''"`

	Signer   User             `gorm:"foreignKey:SignerID;constraint:OnDelete:RESTRICT"`
	Template DocumentTemplate `gorm:"foreignKey:TemplateID;constraint:OnDelete:RESTRICT"`
	Items    []CustodyItem    `gorm:"foreignKey:TermID"`
}

func (t *Term) IsSigned() bool { return t.Status == TermSigned }

func (t *Term) HasArtifact() bool { return t.ArtifactRef != nil && *t.ArtifactRef != "" }
