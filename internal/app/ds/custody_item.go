package ds

import "time"

const DefaultDeliveryCondition = "Novo"

// CustodyItem binds one Term to one Equipment unit. Reads always preload Equipment so the
// item carries its resolved unit.
type CustodyItem struct {
	ID                uint       `gorm:"primaryKey"`
	TermID            uint       `gorm:"not null;index;uniqueIndex:idx_term_equipment"`
	EquipmentID       uint       `gorm:"not null;index;uniqueIndex:idx_term_equipment"`
	DeliveredOn       time.Time  `gorm:"not null"`
	DeliveryCondition string     `gorm:"type:text;not null;default:''"`
	ReturnedOn        *time.Time `gorm:"default:null"`
	ReturnCondition   string     `gorm:"type:text;not null;default:''"`

	Equipment Equipment `gorm:"foreignKey:EquipmentID;constraint:OnDelete:RESTRICT"`
}

func (i *CustodyItem) Returned() bool { return i.ReturnedOn != nil }
