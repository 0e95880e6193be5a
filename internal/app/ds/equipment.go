package ds

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentCategory string

const (
	CategoryNotebook EquipmentCategory = "NOTEBOOK"
	CategoryDesktop  EquipmentCategory = "DESKTOP"
	CategoryMonitor  EquipmentCategory = "MONITOR"
	CategoryPhone    EquipmentCategory = "CELULAR"
	CategoryTablet   EquipmentCategory = "TABLET"
	CategoryOther    EquipmentCategory = "OUTRO"
)

func (c EquipmentCategory) Valid() bool {
	switch c {
	case CategoryNotebook, CategoryDesktop, CategoryMonitor, CategoryPhone, CategoryTablet, CategoryOther:
		return true
	}
	return false
}

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "DISPONIVEL"
	EquipmentInUse       EquipmentStatus = "EM_USO"
	EquipmentMaintenance EquipmentStatus = "MANUTENCAO"
	EquipmentInactive    EquipmentStatus = "INATIVO"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentInUse, EquipmentMaintenance, EquipmentInactive:
		return true
	}
	return false
}

// Equipment is one physical unit. Status and holder only change through custody events.
type Equipment struct {
	ID           uint              `gorm:"primaryKey"`
	Category     EquipmentCategory `gorm:"type:varchar(20);not null"`
	Make         string            `gorm:"type:varchar(100);not null"`
	Model        string            `gorm:"type:varchar(100);not null"`
	SerialNumber string            `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description  string            `gorm:"type:text"`
	Value        decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	AcquiredOn   time.Time         `gorm:"not null"`
	Status       EquipmentStatus   `gorm:"type:varchar(20);not null;default:'DISPONIVEL';index"`
	Notes        string            `gorm:"type:text"`
	HolderID     *uint             `gorm:"default:null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Holder *User `gorm:"foreignKey:HolderID"`
}

func (Equipment) TableName() string { return "equipment" }

// Label is the one-line description used in rendered documents.
func (e Equipment) Label() string {
	return fmt.Sprintf("%s - %s %s (%s)", e.Category, e.Make, e.Model, e.SerialNumber)
}

func (e Equipment) MakeModel() string {
	return e.Make + " " + e.Model
}
