package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ Common ============

// ErrorResponse. Signed is set when the signature was committed but the document could
// not be produced; Term then carries the committed state.
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Field   string        `json:"field,omitempty"`
	Signed  bool          `json:"signed,omitempty"`
	Term    *TermResponse `json:"term,omitempty"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Auth ============

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID    uint   `json:"user_id"`
	Login     string `json:"login"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

type ProfileDTO struct {
	CPF          string `json:"cpf"`
	RG           string `json:"rg"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

type UserResponse struct {
	ID       uint        `json:"id"`
	Login    string      `json:"login"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email,omitempty"`
	Role     string      `json:"role"`
	Profile  *ProfileDTO `json:"profile,omitempty"`
}

// UserRequest is the account as an administrator edits it. Password is required on create
// and optional on update; Role is "admin" or "employee" (default).
type UserRequest struct {
	Login     string      `json:"login" binding:"required"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email" binding:"omitempty,email"`
	Role      string      `json:"role" binding:"omitempty,oneof=admin employee"`
	Profile   *ProfileDTO `json:"profile"`
}

// ContactRequest is what a user may change on their own account.
type ContactRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"omitempty,email"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// ============ Equipment ============

type CreateEquipmentRequest struct {
	Category     string          `json:"category" binding:"required"`
	Make         string          `json:"make" binding:"required"`
	Model        string          `json:"model" binding:"required"`
	SerialNumber string          `json:"serial_number" binding:"required"`
	Description  string          `json:"description"`
	Value        decimal.Decimal `json:"value" swaggertype:"string" example:"1500.00"`
	AcquiredOn   *time.Time      `json:"acquired_on"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
}

// UpdateEquipmentRequest replaces every descriptive field. An empty status keeps the current one.
type UpdateEquipmentRequest struct {
	Category     string          `json:"category" binding:"required"`
	Make         string          `json:"make" binding:"required"`
	Model        string          `json:"model" binding:"required"`
	SerialNumber string          `json:"serial_number" binding:"required"`
	Description  string          `json:"description"`
	Value        decimal.Decimal `json:"value" swaggertype:"string" example:"1500.00"`
	AcquiredOn   *time.Time      `json:"acquired_on"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
}

type EquipmentResponse struct {
	ID           uint      `json:"id"`
	Category     string    `json:"category"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serial_number"`
	Description  string    `json:"description,omitempty"`
	Value        string    `json:"value"`
	AcquiredOn   time.Time `json:"acquired_on"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	HolderID     *uint     `json:"holder_id,omitempty"`
}

// ============ Templates ============

type CreateTemplateRequest struct {
	Title   string `json:"title" binding:"required"`
	Version string `json:"version" binding:"required"`
	Content string `json:"content"`
	Active  *bool  `json:"active"`
}

type UpdateTemplateRequest struct {
	Title   string `json:"title" binding:"required"`
	Version string `json:"version" binding:"required"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
}

type TemplateResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Version   string    `json:"version"`
	Content   string    `json:"content,omitempty"`
	Active    bool      `json:"active"`
	HasFile   bool      `json:"has_file"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ Terms ============

type CreateTermRequest struct {
	SignerID     uint   `json:"signer_id" binding:"required"`
	TemplateID   uint   `json:"template_id" binding:"required"`
	EquipmentIDs []uint `json:"equipment_ids" binding:"required,min=1"`
	Notes        string `json:"notes"`
}

// UpdateTermRequest edits a draft. Omitted fields keep their value; equipment_ids, when
// present, replaces the whole set.
type UpdateTermRequest struct {
	SignerID     *uint   `json:"signer_id"`
	TemplateID   *uint   `json:"template_id"`
	EquipmentIDs []uint  `json:"equipment_ids" binding:"omitempty,min=1"`
	Notes        *string `json:"notes"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type NoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type ReturnRequest struct {
	Condition string `json:"condition" binding:"required"`
}

type CustodyItemResponse struct {
	EquipmentID       uint       `json:"equipment_id"`
	Description       string     `json:"description"`
	SerialNumber      string     `json:"serial_number"`
	Value             string     `json:"value"`
	DeliveredOn       time.Time  `json:"delivered_on"`
	DeliveryCondition string     `json:"delivery_condition"`
	ReturnedOn        *time.Time `json:"returned_on,omitempty"`
	ReturnCondition   string     `json:"return_condition,omitempty"`
}

type TermResponse struct {
	Token         string                `json:"token"`
	Status        string                `json:"status"`
	SignerID      uint                  `json:"signer_id"`
	SignerName    string                `json:"signer_name"`
	TemplateID    uint                  `json:"template_id"`
	TemplateTitle string                `json:"template_title"`
	CreatedAt     time.Time             `json:"created_at"`
	SentAt        *time.Time            `json:"sent_at,omitempty"`
	SignedAt      *time.Time            `json:"signed_at,omitempty"`
	SignatureIP   string                `json:"signature_ip,omitempty"`
	SignatureHash string                `json:"signature_hash,omitempty"`
	HashVersion   string                `json:"hash_version,omitempty"`
	HasDocument   bool                  `json:"has_document"`
	Notes         string                `json:"notes,omitempty"`
	Items         []CustodyItemResponse `json:"items,omitempty"`
	Total         string                `json:"total,omitempty"`
}

type TermListResponse struct {
	Terms []TermResponse `json:"terms"`
	Total int            `json:"total"`
}

// ============ Signing ============

// SignRequest carries the signer's identity fields. Conditions maps equipment id to the
// condition observed at delivery.
type SignRequest struct {
	ProfileDTO
	Conditions map[string]string `json:"conditions"`
}

type SigningFormResponse struct {
	Term    TermResponse          `json:"term"`
	Profile ProfileDTO            `json:"profile"`
	Items   []CustodyItemResponse `json:"items"`
}

type VerifyResponse struct {
	Token       string `json:"token"`
	HashVersion string `json:"hash_version"`
	Stored      string `json:"stored"`
	Computed    string `json:"computed,omitempty"`
	Valid       bool   `json:"valid"`
}

type RenderResponse struct {
	Token       string `json:"token"`
	ArtifactRef string `json:"artifact_ref"`
}
