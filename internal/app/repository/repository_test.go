package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/role"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "custody_test.db"))
	require.NoError(t, err)
	return repo
}

type fixture struct {
	signer    *ds.User
	template  *ds.DocumentTemplate
	equipment []ds.Equipment
	term      *ds.Term
}

func seed(t *testing.T, repo *Repository, values ...string) fixture {
	t.Helper()
	ctx := context.Background()

	signer, err := repo.CreateUser(ctx, "ana.silva", "hash", "Ana", "Silva", role.Employee)
	require.NoError(t, err)

	tpl := &ds.DocumentTemplate{Title: "Termo", Version: "1", Content: "<p>Body</p>", Active: true}
	require.NoError(t, repo.CreateTemplate(ctx, tpl))

	var ids []uint
	var units []ds.Equipment
	for i, v := range values {
		e := ds.Equipment{
			Category:     ds.CategoryNotebook,
			Make:         "Dell",
			Model:        "Latitude",
			SerialNumber: "SN-" + string(rune('A'+i)),
			Value:        decimal.RequireFromString(v),
			AcquiredOn:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.CreateEquipment(ctx, &e))
		ids = append(ids, e.ID)
		units = append(units, e)
	}

	term := &ds.Term{Token: uuid.NewString(), SignerID: signer.ID, TemplateID: tpl.ID}
	err = repo.Transaction(ctx, func(tx *Repository) error {
		return tx.CreateTerm(ctx, term, ids, time.Now())
	})
	require.NoError(t, err)

	return fixture{signer: signer, template: tpl, equipment: units, term: term}
}

func TestSerialNumberIsUnique(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first := ds.Equipment{Category: ds.CategoryMonitor, Make: "LG", Model: "27UL", SerialNumber: "DUP-1",
		Value: decimal.NewFromInt(900), AcquiredOn: time.Now()}
	require.NoError(t, repo.CreateEquipment(ctx, &first))

	second := first
	second.ID = 0
	err := repo.CreateEquipment(ctx, &second)
	assert.ErrorIs(t, err, apperr.ErrDuplicateSerial)

	// the column constraint holds even without the pre-check
	third := first
	third.ID = 0
	assert.Error(t, repo.DB().Create(&third).Error)
}

func TestItemsForKeepsCreationOrderAndResolvesEquipment(t *testing.T) {
	repo := openTestRepo(t)
	f := seed(t, repo, "1500.00", "300.50")

	items, err := repo.ItemsFor(context.Background(), f.term.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, f.equipment[0].ID, items[0].Equipment.ID)
	assert.Equal(t, f.equipment[1].ID, items[1].Equipment.ID)
	assert.Equal(t, "SN-A", items[0].Equipment.SerialNumber)
	assert.Equal(t, ds.DefaultDeliveryCondition, items[0].DeliveryCondition)
	assert.True(t, items[1].Equipment.Value.Equal(decimal.RequireFromString("300.50")))
}

func TestRecordDeliveryRequiresMatchingItem(t *testing.T) {
	repo := openTestRepo(t)
	f := seed(t, repo, "100")
	ctx := context.Background()

	require.NoError(t, repo.RecordDelivery(ctx, f.term.ID, f.equipment[0].ID, "Risco na tampa"))
	items, err := repo.ItemsFor(ctx, f.term.ID)
	require.NoError(t, err)
	assert.Equal(t, "Risco na tampa", items[0].DeliveryCondition)

	err = repo.RecordDelivery(ctx, f.term.ID, 9999, "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAssignCustodyAndReturn(t *testing.T) {
	repo := openTestRepo(t)
	f := seed(t, repo, "100")
	ctx := context.Background()
	unit := f.equipment[0]

	require.NoError(t, repo.AssignCustody(ctx, unit.ID, f.signer.ID))
	got, err := repo.GetEquipmentByID(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.EquipmentInUse, got.Status)
	require.NotNil(t, got.HolderID)
	assert.Equal(t, f.signer.ID, *got.HolderID)

	require.NoError(t, repo.ReturnItem(ctx, f.term.ID, unit.ID, "Bom estado", time.Now()))
	got, err = repo.GetEquipmentByID(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.EquipmentAvailable, got.Status)
	assert.Nil(t, got.HolderID)

	err = repo.ReturnItem(ctx, f.term.ID, unit.ID, "again", time.Now())
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	assert.ErrorIs(t, repo.AssignCustody(ctx, 4242, f.signer.ID), apperr.ErrNotFound)
}

func TestMarkSentStampsOnce(t *testing.T) {
	repo := openTestRepo(t)
	f := seed(t, repo, "100")
	ctx := context.Background()

	first := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkSent(ctx, f.term.ID, first))

	err := repo.MarkSent(ctx, f.term.ID, first.Add(time.Hour))
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	term, err := repo.GetTermByToken(ctx, f.term.Token)
	require.NoError(t, err)
	assert.Equal(t, ds.TermSent, term.Status)
	require.NotNil(t, term.SentAt)
	assert.True(t, term.SentAt.Equal(first))
}

func TestMarkSignedOnlyOnce(t *testing.T) {
	repo := openTestRepo(t)
	f := seed(t, repo, "100")
	ctx := context.Background()

	rec := SignatureRecord{SignedAt: time.Now(), SentAt: time.Now(), IP: "10.0.0.1", Hash: "abc", HashVersion: "sig-v2"}
	require.NoError(t, repo.MarkSigned(ctx, f.term.ID, rec))

	rec.Hash = "def"
	assert.ErrorIs(t, repo.MarkSigned(ctx, f.term.ID, rec), apperr.ErrAlreadySigned)

	term, err := repo.GetTermByToken(ctx, f.term.Token)
	require.NoError(t, err)
	assert.Equal(t, "abc", term.SignatureHash)

	assert.ErrorIs(t, repo.CloseTerm(ctx, f.term.ID, ds.TermCancelled, ""), apperr.ErrInvalidTransition)
}

func TestGetTermByTokenNotFound(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.GetTermByToken(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListSignedWithoutArtifact(t *testing.T) {
	repo := openTestRepo(t)
	f := seed(t, repo, "100")
	ctx := context.Background()

	require.NoError(t, repo.MarkSigned(ctx, f.term.ID, SignatureRecord{SignedAt: time.Now(), SentAt: time.Now(), Hash: "h"}))

	pending, err := repo.ListSignedWithoutArtifact(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, repo.SetArtifactRef(ctx, f.term.ID, "terms/term_x.pdf"))
	pending, err = repo.ListSignedWithoutArtifact(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
