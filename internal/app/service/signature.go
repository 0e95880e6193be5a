package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/repository"

	"github.com/sirupsen/logrus"
)

// SigningForm is what the signer sees before committing: the term, its units and the
// profile already on file for pre-fill.
type SigningForm struct {
	Term    *ds.Term
	Items   []ds.CustodyItem
	Profile ds.Profile
}

// Submission carries the identity fields typed by the signer and optional per-unit
// delivery conditions keyed by equipment id.
type Submission struct {
	Profile    ds.Profile
	Conditions map[uint]string
}

// validate reports the first missing required field in a fixed order.
func (s Submission) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"cpf", s.Profile.CPF},
		{"rg", s.Profile.RG},
		{"street", s.Profile.Street},
		{"neighborhood", s.Profile.Neighborhood},
		{"city", s.Profile.City},
		{"state", s.Profile.State},
		{"postal_code", s.Profile.PostalCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.Required(r.field)
		}
	}
	return nil
}

func checkSignable(term *ds.Term, actor Actor) error {
	if term.Status == ds.TermSigned {
		return fmt.Errorf("term %s: %w", term.Token, apperr.ErrAlreadySigned)
	}
	if !canAccess(term, actor) {
		return fmt.Errorf("user %d on term %s: %w", actor.UserID, term.Token, apperr.ErrPermission)
	}
	if term.Status.Terminal() {
		return fmt.Errorf("term %s is %s: %w", term.Token, term.Status, apperr.ErrNotSignable)
	}
	return nil
}

// RequestSignature prepares the signing form. It reads only.
func (s *Service) RequestSignature(ctx context.Context, token string, actor Actor) (*SigningForm, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := checkSignable(term, actor); err != nil {
		return nil, err
	}

	items, err := s.repo.ItemsFor(ctx, term.ID)
	if err != nil {
		return nil, err
	}

	return &SigningForm{
		Term:    term,
		Items:   items,
		Profile: term.Signer.Profile,
	}, nil
}

// CommitSignature signs the term in one transaction, then renders and stores the document.
// A render or storage failure is returned, but the signature stays committed and the
// returned term reflects it.
func (s *Service) CommitSignature(ctx context.Context, token string, actor Actor, sub Submission, client ClientInfo) (*ds.Term, error) {
	log := s.log.WithFields(logrus.Fields{"term": token, "actor": actor.UserID})

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		term, err := tx.LockTermByToken(ctx, token)
		if err != nil {
			return err
		}
		if err := checkSignable(term, actor); err != nil {
			return err
		}
		if err := sub.validate(); err != nil {
			return err
		}

		signer, err := tx.GetUserByID(ctx, term.SignerID)
		if err != nil {
			return err
		}
		if err := tx.UpdateProfile(ctx, signer.ID, sub.Profile); err != nil {
			return err
		}

		items, err := tx.ItemsFor(ctx, term.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if condition, ok := sub.Conditions[item.EquipmentID]; ok {
				if err := tx.RecordDelivery(ctx, term.ID, item.EquipmentID, condition); err != nil {
					return err
				}
			}
			if err := tx.AssignCustody(ctx, item.EquipmentID, signer.ID); err != nil {
				return err
			}
		}

		address := ResolveAddress(client)
		signedAt := s.now().UTC().Truncate(time.Microsecond)
		sentAt := signedAt
		if term.SentAt != nil {
			sentAt = *term.SentAt
		}

		return tx.MarkSigned(ctx, term.ID, repository.SignatureRecord{
			SignedAt:    signedAt,
			SentAt:      sentAt,
			IP:          address,
			UserAgent:   client.UserAgent,
			Hash:        SignatureHash(term.Token, signer.Login, signedAt, address),
			HashVersion: HashVersion,
			Notes:       appendNote(term.Notes, s.provenanceNote(signedAt, address, client.UserAgent)),
		})
	})
	if err != nil {
		log.WithError(err).Info("signature rejected")
		return nil, err
	}

	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	log.WithField("signer", term.Signer.Login).Info("term signed")

	if _, err := s.RenderAndStore(ctx, term); err != nil {
		log.WithError(err).Error("signed term has no document yet")
		return term, err
	}
	return term, nil
}

func (s *Service) provenanceNote(signedAt time.Time, address, agent string) string {
	if agent == "" {
		agent = UnidentifiedAddress
	}
	return fmt.Sprintf("[%s] Assinatura eletrônica registrada. IP: %s. Navegador: %s",
		s.renderer.Formatter().DateTime(signedAt), address, agent)
}
