package gorm

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

func TestConsumeInvitation(t *testing.T) {
	token := "tok-1"
	response := func() *model.Response {
		return &model.Response{
			ID:        "r-1",
			SurveyID:  "s-1",
			CompanyID: "company-1",
			Token:     &token,
		}
	}
	answers := []model.Answer{
		{ID: "a-1", ResponseID: "r-1", QuestionID: "q-1", Value: "4"},
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewResponsesStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "invitations" SET "used_at"=\$1 WHERE id = \$2 AND used_at IS NULL`).
			WithArgs(sqlmock.AnyArg(), "i-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "responses"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "answers"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.ConsumeInvitation("i-1", response(), answers)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already used", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewResponsesStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "invitations" SET "used_at"=\$1 WHERE id = \$2 AND used_at IS NULL`).
			WithArgs(sqlmock.AnyArg(), "i-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.ConsumeInvitation("i-1", response(), answers)
		assert.ErrorIs(t, err, store.ErrInvitationUsed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed insert rolls back the consumption", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewResponsesStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "invitations" SET "used_at"=\$1 WHERE id = \$2 AND used_at IS NULL`).
			WithArgs(sqlmock.AnyArg(), "i-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "responses"`).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		err := s.ConsumeInvitation("i-1", response(), answers)
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrInvitationUsed)
		// The rollback above is the invariant: the invitation stays
		// unused, so the respondent can retry.
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
