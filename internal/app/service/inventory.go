package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"

	"github.com/sirupsen/logrus"
)

// ============ Equipment ============

func (s *Service) CreateEquipment(ctx context.Context, e *ds.Equipment) error {
	if err := validateEquipment(e); err != nil {
		return err
	}
	if e.Status == ds.EquipmentInUse {
		return &apperr.ValidationError{Field: "status", Reason: "units enter use through a signed term"}
	}
	if e.AcquiredOn.IsZero() {
		e.AcquiredOn = s.now()
	}

	if err := s.repo.CreateEquipment(ctx, e); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"equipment": e.ID, "serial": e.SerialNumber}).Info("equipment registered")
	return nil
}

func (s *Service) GetEquipment(ctx context.Context, id uint) (*ds.Equipment, error) {
	return s.repo.GetEquipmentByID(ctx, id)
}

// UpdateEquipment replaces the descriptive fields of a unit. Status moves freely between
// DISPONIVEL, MANUTENCAO and INATIVO while nobody holds the unit; a held unit stays EM_USO
// until it is returned. An empty status keeps the current one.
func (s *Service) UpdateEquipment(ctx context.Context, e *ds.Equipment) error {
	if err := validateEquipment(e); err != nil {
		return err
	}

	current, err := s.repo.GetEquipmentByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if e.Status == "" {
		e.Status = current.Status
	}
	switch {
	case current.HolderID != nil && e.Status != ds.EquipmentInUse:
		return fmt.Errorf("equipment %d is held by user %d: %w", e.ID, *current.HolderID, apperr.ErrInvalidTransition)
	case current.HolderID == nil && e.Status == ds.EquipmentInUse:
		return &apperr.ValidationError{Field: "status", Reason: "units enter use through a signed term"}
	}
	if e.AcquiredOn.IsZero() {
		e.AcquiredOn = current.AcquiredOn
	}
	e.HolderID = current.HolderID

	if err := s.repo.UpdateEquipment(ctx, e); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"equipment": e.ID, "status": e.Status}).Info("equipment updated")
	return nil
}

func validateEquipment(e *ds.Equipment) error {
	switch {
	case strings.TrimSpace(e.SerialNumber) == "":
		return apperr.Required("serial_number")
	case !e.Category.Valid():
		return &apperr.ValidationError{Field: "category", Reason: "unknown category"}
	case strings.TrimSpace(e.Make) == "":
		return apperr.Required("make")
	case strings.TrimSpace(e.Model) == "":
		return apperr.Required("model")
	case e.Value.IsNegative():
		return &apperr.ValidationError{Field: "value", Reason: "must not be negative"}
	case e.Status != "" && !e.Status.Valid():
		return &apperr.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return nil
}

func (s *Service) ListEquipment(ctx context.Context, status ds.EquipmentStatus) ([]ds.Equipment, error) {
	if status != "" && !status.Valid() {
		return nil, &apperr.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.repo.ListEquipment(ctx, status)
}

// ============ Templates ============

func (s *Service) CreateTemplate(ctx context.Context, t *ds.DocumentTemplate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}
	return s.repo.CreateTemplate(ctx, t)
}

func (s *Service) GetTemplate(ctx context.Context, id uint) (*ds.DocumentTemplate, error) {
	return s.repo.GetTemplateByID(ctx, id)
}

// UpdateTemplate edits title, version, body and the active flag. Terms already drafted keep
// pointing at the template, so a signed term re-renders with the current body.
func (s *Service) UpdateTemplate(ctx context.Context, t *ds.DocumentTemplate) (*ds.DocumentTemplate, error) {
	if err := validateTemplate(t); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	s.log.WithField("template", t.ID).Info("template updated")
	return s.repo.GetTemplateByID(ctx, t.ID)
}

func validateTemplate(t *ds.DocumentTemplate) error {
	if strings.TrimSpace(t.Title) == "" {
		return apperr.Required("title")
	}
	if strings.TrimSpace(t.Version) == "" {
		return apperr.Required("version")
	}
	return nil
}

// AttachTemplateFile stores a .docx blob and makes it the template's structured source.
func (s *Service) AttachTemplateFile(ctx context.Context, templateID uint, fileName string, data []byte) (*ds.DocumentTemplate, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".docx") {
		return nil, &apperr.ValidationError{Field: "file", Reason: "only .docx templates are accepted"}
	}
	if len(data) == 0 {
		return nil, apperr.Required("file")
	}

	tpl, err := s.repo.GetTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	key, err := s.templates.UploadTemplate(ctx, tpl.ID, data)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetTemplateBlob(ctx, tpl.ID, key); err != nil {
		return nil, fmt.Errorf("record template blob: %w", err)
	}
	tpl.BlobKey = &key
	return tpl, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]ds.DocumentTemplate, error) {
	return s.repo.ListActiveTemplates(ctx)
}
