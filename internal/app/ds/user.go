package ds

import (
	"strings"

	"custody/internal/app/role"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Login     string    `gorm:"type:varchar(50);unique;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Role      role.Role `gorm:"type:int;default:0;not null"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(100)"`
	Profile   Profile   `gorm:"embedded"`
}

func (u User) IsAdmin() bool { return u.Role == role.Admin }

// FullName falls back to the login when no name was recorded.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Login
	}
	return name
}

// Profile holds the signer's identity fields. Empty string means absent.
type Profile struct {
	CPF          string `gorm:"column:cpf;type:varchar(14)"`
	RG           string `gorm:"column:rg;type:varchar(20)"`
	Street       string `gorm:"type:varchar(200)"`
	Number       string `gorm:"type:varchar(20)"`
	Complement   string `gorm:"type:varchar(100)"`
	Neighborhood string `gorm:"type:varchar(100)"`
	City         string `gorm:"type:varchar(100)"`
	State        string `gorm:"type:varchar(2)"`
	PostalCode   string `gorm:"type:varchar(9)"`
}

// Address composes "street, number[, complement], neighborhood, city/state, CEP: code".
func (p Profile) Address() string {
	var b strings.Builder
	b.WriteString(p.Street)
	if p.Number != "" {
		b.WriteString(", " + p.Number)
	}
	if p.Complement != "" {
		b.WriteString(", " + p.Complement)
	}
	b.WriteString(", " + p.Neighborhood)
	b.WriteString(", " + p.City + "/" + p.State)
	b.WriteString(", CEP: " + p.PostalCode)
	return b.String()
}
