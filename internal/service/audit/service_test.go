package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository/mocks"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

func TestLog_PersistsTransition(t *testing.T) {
	repo := &mocks.AuditRepository{}
	svc := NewService(repo, zerolog.Nop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.AuditLog) bool {
		return l.EntityType == model.AuditEntityAppointment &&
			l.EntityID == 4 &&
			l.ActorRole == model.RoleDoctor &&
			l.ActorID == 7 &&
			*l.FromStatus == "PENDING" &&
			*l.ToStatus == "ACCEPTED" &&
			string(l.Metadata) == `{"department":"cardiology"}`
	})).Return(nil)

	err := svc.Log(context.Background(), Entry{
		EntityType: model.AuditEntityAppointment,
		EntityID:   4,
		Action:     model.AuditActionTransition,
		Actor:      model.Actor{Role: model.RoleDoctor, ID: 7},
		From:       "PENDING",
		To:         "ACCEPTED",
		Metadata:   map[string]string{"department": "cardiology"},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLog_OmitsEmptyStatuses(t *testing.T) {
	repo := &mocks.AuditRepository{}
	svc := NewService(repo, zerolog.Nop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.AuditLog) bool {
		return l.FromStatus == nil && l.ToStatus == nil && l.Metadata == nil
	})).Return(nil)

	require.NoError(t, svc.Log(context.Background(), Entry{EntityType: model.AuditEntityTestReport, EntityID: 1, Action: model.AuditActionDelete}))
}

func TestRecord_SwallowsRepositoryError(t *testing.T) {
	repo := &mocks.AuditRepository{}
	svc := NewService(repo, zerolog.Nop())
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), Entry{EntityType: model.AuditEntityDoctor, EntityID: 2})
	})
	repo.AssertExpectations(t)
}

func TestList_RejectsOversizedLimit(t *testing.T) {
	svc := NewService(&mocks.AuditRepository{}, zerolog.Nop())

	_, err := svc.List(context.Background(), model.AuditFilter{Limit: 1000})
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
}
