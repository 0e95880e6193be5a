package render

import (
	"time"

	"custody/internal/app/ds"

	"github.com/shopspring/decimal"
)

// PendingValue stands in for signature evidence on documents rendered before signing.
const PendingValue = "(não assinado)"

// Snapshot is a detached, read-only projection of everything a document shows. Building
// one copies values out of the persisted records, so nothing done to a snapshot can reach
// the database.
type Snapshot struct {
	Token           string
	SignerName      string
	Profile         ds.Profile
	Items           []ds.CustodyItem
	TemplateContent string
	TemplateBlobKey string

	Signed        bool
	SignedAt      time.Time
	ClientAddress string
	ClientAgent   string
	Hash          string
}

func NewSnapshot(term *ds.Term, signer *ds.User, tpl *ds.DocumentTemplate, items []ds.CustodyItem) Snapshot {
	s := Snapshot{
		Token:           term.Token,
		SignerName:      signer.FullName(),
		Profile:         signer.Profile,
		Items:           append([]ds.CustodyItem(nil), items...),
		TemplateContent: tpl.Content,
	}
	if tpl.HasBlob() {
		s.TemplateBlobKey = *tpl.BlobKey
	}

	if term.IsSigned() && term.SignedAt != nil {
		s.Signed = true
		s.SignedAt = *term.SignedAt
		s.Hash = term.SignatureHash
		if term.SignatureIP != nil {
			s.ClientAddress = *term.SignatureIP
		}
		if term.SignatureUserAgent != nil {
			s.ClientAgent = *term.SignatureUserAgent
		}
	}
	return s
}

func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Equipment.Value)
	}
	return total
}

func (s Snapshot) evidence(value string) string {
	if !s.Signed {
		return PendingValue
	}
	return value
}

// Placeholders builds the token map for structured templates.
func (s Snapshot) Placeholders(f Formatter) map[string]string {
	date := PendingValue
	if s.Signed {
		date = f.Date(s.SignedAt)
	}

	m := map[string]string{
		Token(KeyName):          s.SignerName,
		Token(KeyCPF):           s.Profile.CPF,
		Token(KeyRG):            s.Profile.RG,
		Token(KeyAddress):       s.Profile.Address(),
		Token(KeyCity):          s.Profile.City,
		Token(KeyState):         s.Profile.State,
		Token(KeyPostalCode):    s.Profile.PostalCode,
		Token(KeySignatureDate): date,
		Token(KeySignatureHash): s.evidence(s.Hash),
		Token(KeyClientAddress): s.evidence(s.ClientAddress),
		Token(KeyClientAgent):   s.evidence(s.ClientAgent),
		Token(KeyTotal):         f.Money(s.Total()),
	}
	for i, item := range s.Items {
		m[ItemToken(i+1)] = item.Equipment.Label()
		m[ValueToken(i+1)] = f.Money(item.Equipment.Value)
	}
	return m
}

// ItemRow is one line of the equipment table.
type ItemRow struct {
	Serial    string
	MakeModel string
	Condition string
	Value     string
}

// DocumentView is the fixed layout of the markup strategy.
type DocumentView struct {
	Title         string
	SignerName    string
	CPF           string
	RG            string
	Address       string
	Items         []ItemRow
	Total         string
	Body          string
	SignedAt      string
	ClientAddress string
	ClientAgent   string
	Hash          string
}

func (s Snapshot) View(f Formatter, title string) DocumentView {
	rows := make([]ItemRow, 0, len(s.Items))
	for _, item := range s.Items {
		rows = append(rows, ItemRow{
			Serial:    item.Equipment.SerialNumber,
			MakeModel: item.Equipment.MakeModel(),
			Condition: item.DeliveryCondition,
			Value:     f.Money(item.Equipment.Value),
		})
	}

	signedAt := PendingValue
	if s.Signed {
		signedAt = f.DateTime(s.SignedAt)
	}

	return DocumentView{
		Title:         title,
		SignerName:    s.SignerName,
		CPF:           s.Profile.CPF,
		RG:            s.Profile.RG,
		Address:       s.Profile.Address(),
		Items:         rows,
		Total:         f.Money(s.Total()),
		Body:          StripMarkup(s.TemplateContent),
		SignedAt:      signedAt,
		ClientAddress: s.evidence(s.ClientAddress),
		ClientAgent:   s.evidence(s.ClientAgent),
		Hash:          s.evidence(s.Hash),
	}
}
