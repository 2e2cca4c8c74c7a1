package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/dbtest"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
)

type fixture struct {
	conn   *gorm.DB
	client *dbpkg.Client
	outbox *outbox.Repository
	svc    Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn := dbtest.Open(t)
	client := dbpkg.Wrap(conn)
	outboxRepo := outbox.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), client, outbox.NewService(outboxRepo, nil))
	require.NoError(t, err)
	return fixture{conn: conn, client: client, outbox: outboxRepo, svc: svc}
}

func (f fixture) resolve(t *testing.T, contact Contact) *models.Customer {
	t.Helper()
	var customer *models.Customer
	err := f.client.WithTx(context.Background(), func(tx *gorm.DB) error {
		var err error
		customer, err = f.svc.Resolve(context.Background(), tx, contact)
		return err
	})
	require.NoError(t, err)
	return customer
}

func TestMatchKeys(t *testing.T) {
	assert.Equal(t, "ayesha khan", NameKey("  Ayesha KHAN "))
	assert.Equal(t, "3001234567", PhoneKey("03001234567"))
	assert.Equal(t, "3001234567", PhoneKey("+92 300 1234567"))
	assert.Equal(t, "3001234567", PhoneKey("923001234567"))
	assert.Equal(t, "12345", PhoneKey("12-345"))
}

func TestResolveCreatesThenReuses(t *testing.T) {
	f := newFixture(t)

	first := f.resolve(t, Contact{
		Name:     "Ayesha Khan",
		Number:   "03001234567",
		Address:  "House 12, Street 4",
		City:     "Lahore",
		Province: "Punjab",
	})
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, "", first.Email)
	assert.Equal(t, "", first.PostalCode)

	second := f.resolve(t, Contact{
		Name:    "ayesha khan",
		Number:  "+923001234567",
		Address: "Somewhere else",
	})
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "House 12, Street 4", second.Address, "existing record is reused untouched")

	other := f.resolve(t, Contact{Name: "Ayesha Khan", Number: "03111234567"})
	assert.NotEqual(t, first.ID, other.ID)

	var count int64
	require.NoError(t, f.conn.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestPatchUpdatesFieldsAndMatchKey(t *testing.T) {
	f := newFixture(t)
	customer := f.resolve(t, Contact{Name: "Bilal", Number: "03001234567"})

	patch, err := ParsePatch(map[string]any{"name": "Bilal Ahmed", "number": "+923331234567", "city": "Karachi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "name", "number"}, patch.Fields())

	require.NoError(t, f.svc.Patch(context.Background(), customer.ID, patch, &outbox.ActorRef{Role: "admin"}))

	stored, err := f.svc.Get(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bilal Ahmed", stored.Name)
	assert.Equal(t, "bilal ahmed", stored.NameKey)
	assert.Equal(t, "3331234567", stored.PhoneKey)
	assert.Equal(t, "Karachi", stored.City)

	events, err := f.outbox.ListByAggregate(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, enums.EventCustomerUpdated, events[0].EventType)
}

func TestPatchMissingCustomer(t *testing.T) {
	f := newFixture(t)
	name := "Someone"
	err := f.svc.Patch(context.Background(), uuid.New(), Patch{Name: &name}, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.Get(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestParsePatchRejectsUnknownFieldsAndBadValues(t *testing.T) {
	_, err := ParsePatch(map[string]any{"nameKey": "x"})
	require.Error(t, err)

	_, err = ParsePatch(map[string]any{"number": "12345"})
	require.Error(t, err)

	patch, err := ParsePatch(map[string]any{"email": ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": ""}, patch.Columns())
	assert.False(t, patch.IsEmpty())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	assert.Error(t, err)
}
