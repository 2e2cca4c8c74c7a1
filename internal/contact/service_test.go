package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/dbtest"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, *gorm.DB, outbox.DomainEvent) error {
	return errors.New("outbox unavailable")
}

func TestSubmitStoresAndEmits(t *testing.T) {
	conn := dbtest.Open(t)
	outboxRepo := outbox.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), dbpkg.Wrap(conn), outbox.NewService(outboxRepo, nil))
	require.NoError(t, err)

	msg, err := svc.Submit(context.Background(), Input{
		Name:    " Hamza ",
		Email:   "hamza@example.com",
		Phone:   "+923001234567",
		Message: "Do you ship to Quetta?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hamza", msg.Name)

	events, err := outboxRepo.ListByAggregate(context.Background(), msg.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, enums.EventContactMessageReceived, events[0].EventType)
	assert.Contains(t, events[0].Payload, "Quetta")
}

func TestSubmitValidation(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), dbpkg.Wrap(conn), outbox.NewService(outbox.NewRepository(conn), nil))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), Input{Name: "H", Email: "nope", Phone: "555", Message: "x"})
	require.Error(t, err)
	details := validation.Details(err)
	for _, field := range []string{"name", "email", "phone", "message"} {
		assert.Contains(t, details, field)
	}
}

func TestSubmitRollsBackWhenEmitFails(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), dbpkg.Wrap(conn), failingEmitter{})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), Input{Name: "Hamza", Email: "hamza@example.com", Phone: "03001234567", Message: "Hello"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))

	var count int64
	require.NoError(t, conn.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}
