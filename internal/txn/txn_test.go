package txn_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matchpoint-labs/wtadb/internal/fault"
	"github.com/matchpoint-labs/wtadb/internal/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE ranking").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = txn.Run(context.Background(), db, "update-ranking", func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE ranking SET player_id = ? WHERE rank = ?", 3, 5)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnStepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO match_result").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO tournament_history").WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	err = txn.Run(context.Background(), db, "record-match", func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO match_result (score) VALUES (?)", "6-4"); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO tournament_history (winner_id) VALUES (?)", 1)
		return err
	})
	require.Error(t, err)
	assert.Equal(t, fault.KindTransaction, fault.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "first step must be rolled back with the second")
}

func TestRunCommitFailureIsTransactionFault(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err = txn.Run(context.Background(), db, "noop", func(tx *sql.Tx) error { return nil })
	require.Error(t, err)
	assert.Equal(t, fault.KindTransaction, fault.KindOf(err))
}

func TestRunPreservesValidationKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	reject := fault.Newf(fault.KindValidation, "record-match", "stats must be all present or all absent")
	err = txn.Run(context.Background(), db, "record-match", func(tx *sql.Tx) error { return reject })
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}
