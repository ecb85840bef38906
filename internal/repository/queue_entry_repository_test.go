package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/avicena/clinic-ops/internal/model"
)

const queueSelect = `SELECT id, appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time, consultation_start_time, consultation_end_time, created_at, updated_at FROM queue_entries`

func newQueueRepoMock(t *testing.T) (*QueueEntryRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewQueueEntryRepo(db), mock
}

func queueEntryRows(e model.QueueEntry) *sqlmock.Rows {
    return sqlmock.NewRows([]string{
        "id", "appointment_id", "patient_id", "doctor_id", "queue_date",
        "token_number", "position", "status", "check_in_time",
        "consultation_start_time", "consultation_end_time", "created_at", "updated_at",
    }).AddRow(
        e.ID, e.AppointmentID, e.PatientID, e.DoctorID, e.QueueDate,
        e.TokenNumber, e.Position, e.Status, e.CheckInTime,
        e.ConsultationStartTime, e.ConsultationEndTime, e.CreatedAt, e.UpdatedAt,
    )
}

func sampleEntry() model.QueueEntry {
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)
    return model.QueueEntry{
        ID:            10,
        AppointmentID: 20,
        PatientID:     30,
        DoctorID:      4,
        QueueDate:     day,
        TokenNumber:   "0511-003",
        Position:      3,
        Status:        model.QueueStatusWaiting,
        CheckInTime:   day.Add(9 * time.Hour),
        CreatedAt:     day.Add(9 * time.Hour),
        UpdatedAt:     day.Add(9 * time.Hour),
    }
}

func TestGetByID(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    want := sampleEntry()

    mock.ExpectQuery(queueSelect + ` WHERE id = ?`).
        WithArgs(want.ID).
        WillReturnRows(queueEntryRows(want))

    got, err := repo.GetByID(context.Background(), want.ID)
    require.NoError(t, err)
    assert.Equal(t, want.TokenNumber, got.TokenNumber)
    assert.Equal(t, want.Position, got.Position)
    assert.Nil(t, got.ConsultationStartTime)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
    repo, mock := newQueueRepoMock(t)

    mock.ExpectQuery(queueSelect + ` WHERE id = ?`).
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    _, err := repo.GetByID(context.Background(), 99)
    assert.ErrorIs(t, err, ErrQueueEntryNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaxPositionTxEmptyDay(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT COALESCE(MAX(position), 0) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? FOR UPDATE`).
        WithArgs(uint64(4), "2026-11-05").
        WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    max, err := repo.MaxPositionTx(context.Background(), tx, 4, day)
    require.NoError(t, err)
    assert.Equal(t, 0, max)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMinWaitingPositionTxNobodyWaiting(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT MIN(position) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? AND status = ? FOR UPDATE`).
        WithArgs(uint64(4), "2026-11-05", model.QueueStatusWaiting).
        WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    _, ok, err := repo.MinWaitingPositionTx(context.Background(), tx, 4, day)
    require.NoError(t, err)
    assert.False(t, ok)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaxTokenSequenceTx(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT token_number FROM queue_entries WHERE queue_date = ? FOR UPDATE`).
        WithArgs("2026-11-05").
        WillReturnRows(sqlmock.NewRows([]string{"token_number"}).
            AddRow("0511-001").
            AddRow("garbage"). // malformed rows contribute 0
            AddRow("0511-007").
            AddRow("0511-003"))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    max, err := repo.MaxTokenSequenceTx(context.Background(), tx, day)
    require.NoError(t, err)
    assert.Equal(t, 7, max)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTx(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    e := sampleEntry()
    e.ID = 0

    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`).
        WithArgs(e.AppointmentID, e.PatientID, e.DoctorID, "2026-11-05",
            e.TokenNumber, e.Position, e.Status, "2026-11-05 09:00:00").
        WillReturnResult(sqlmock.NewResult(42, 1))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    require.NoError(t, repo.CreateTx(context.Background(), tx, &e))
    assert.Equal(t, uint64(42), e.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTxDuplicateToken(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    e := sampleEntry()
    e.ID = 0

    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`).
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    err = repo.CreateTx(context.Background(), tx, &e)
    assert.ErrorIs(t, err, ErrDuplicate)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftWaitingTx(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE queue_entries SET position = position + 1 WHERE doctor_id = ? AND queue_date = ? AND status = ?`).
        WithArgs(uint64(4), "2026-11-05", model.QueueStatusWaiting).
        WillReturnResult(sqlmock.NewResult(0, 3))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    n, err := repo.ShiftWaitingTx(context.Background(), tx, 4, day)
    require.NoError(t, err)
    assert.Equal(t, int64(3), n)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderTx(t *testing.T) {
    repo, mock := newQueueRepoMock(t)

    mock.ExpectBegin()
    // Every id is locked and verified before any position changes.
    for _, id := range []uint64{7, 5, 6} {
        mock.ExpectQuery(`SELECT id FROM queue_entries WHERE id = ? FOR UPDATE`).
            WithArgs(id).
            WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
    }
    for i, id := range []uint64{7, 5, 6} {
        mock.ExpectExec(`UPDATE queue_entries SET position = ? WHERE id = ?`).
            WithArgs(i+1, id).
            WillReturnResult(sqlmock.NewResult(0, 1))
    }

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    require.NoError(t, repo.ReorderTx(context.Background(), tx, []uint64{7, 5, 6}))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderTxUnknownID(t *testing.T) {
    repo, mock := newQueueRepoMock(t)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT id FROM queue_entries WHERE id = ? FOR UPDATE`).
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    err = repo.ReorderTx(context.Background(), tx, []uint64{99, 5})
    assert.ErrorIs(t, err, ErrQueueEntryNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTxNotFound(t *testing.T) {
    repo, mock := newQueueRepoMock(t)

    mock.ExpectBegin()
    mock.ExpectExec(`DELETE FROM queue_entries WHERE id = ?`).
        WithArgs(uint64(99)).
        WillReturnResult(sqlmock.NewResult(0, 0))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    err = repo.DeleteTx(context.Background(), tx, 99)
    assert.ErrorIs(t, err, ErrQueueEntryNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseGapTx(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE queue_entries SET position = position - 1 WHERE doctor_id = ? AND queue_date = ? AND position > ?`).
        WithArgs(uint64(4), "2026-11-05", 2).
        WillReturnResult(sqlmock.NewResult(0, 2))

    tx, err := repo.DB().Begin()
    require.NoError(t, err)
    require.NoError(t, repo.CloseGapTx(context.Background(), tx, 4, day, 2))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForDayFilters(t *testing.T) {
    repo, mock := newQueueRepoMock(t)
    day := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)
    e := sampleEntry()

    mock.ExpectQuery(queueSelect + ` WHERE queue_date = ? AND doctor_id = ? AND status = ? ORDER BY doctor_id, position ASC`).
        WithArgs("2026-11-05", uint64(4), model.QueueStatusWaiting).
        WillReturnRows(queueEntryRows(e))

    got, err := repo.ListForDay(context.Background(), day, 4, model.QueueStatusWaiting)
    require.NoError(t, err)
    require.Len(t, got, 1)
    assert.Equal(t, e.ID, got[0].ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}
