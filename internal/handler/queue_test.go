package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/repository"
)

const (
    queueCols = `id, appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time, consultation_start_time, consultation_end_time, created_at, updated_at`
    apptCols  = `id, patient_id, doctor_id, scheduled_at, appointment_type, status, reason, queue_token, queue_position, created_at, updated_at`
    docCols   = `id, full_name, specialty, room, fee_cents, is_active, created_at, updated_at`
)

func newQueueHandlerMock(t *testing.T) (*QueueHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewQueueHandler(
        repository.NewQueueEntryRepo(db),
        repository.NewAppointmentRepo(db),
        repository.NewDoctorRepo(db),
        repository.NewPatientRepo(db),
        repository.NewBillRepo(db),
        time.UTC,
    ), mock
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, h(e.NewContext(req, rec)))
    return rec
}

func expectAppointment(mock sqlmock.Sqlmock, id, patientID, doctorID uint64) {
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)
    mock.ExpectQuery(`SELECT ` + apptCols + ` FROM appointments WHERE id = ?`).
        WithArgs(id).
        WillReturnRows(sqlmock.NewRows(strings.Split(apptCols, ", ")).
            AddRow(id, patientID, doctorID, now, model.AppointmentTypeWalkIn,
                model.AppointmentScheduled, nil, nil, nil, now, now))
}

func expectDoctor(mock sqlmock.Sqlmock, id uint64, feeCents uint32) {
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)
    mock.ExpectQuery(`SELECT ` + docCols + ` FROM doctors WHERE id = ?`).
        WithArgs(id).
        WillReturnRows(sqlmock.NewRows(strings.Split(docCols, ", ")).
            AddRow(id, "Dr. Ayu", "general", "3", feeCents, true, now, now))
}

func expectNoExistingEntry(mock sqlmock.Sqlmock, appointmentID uint64) {
    mock.ExpectQuery(`SELECT ` + queueCols + ` FROM queue_entries WHERE appointment_id = ? LIMIT 1`).
        WithArgs(appointmentID).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func expectTokenScan(mock sqlmock.Sqlmock, day string, tokens ...string) {
    rows := sqlmock.NewRows([]string{"token_number"})
    for _, tok := range tokens {
        rows.AddRow(tok)
    }
    mock.ExpectQuery(`SELECT token_number FROM queue_entries WHERE queue_date = ? FOR UPDATE`).
        WithArgs(day).
        WillReturnRows(rows)
}

func expectMaxPosition(mock sqlmock.Sqlmock, doctorID uint64, day string, max int) {
    mock.ExpectQuery(`SELECT COALESCE(MAX(position), 0) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? FOR UPDATE`).
        WithArgs(doctorID, day).
        WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(max))
}

func expectInsertEntry(mock sqlmock.Sqlmock, appointmentID, patientID, doctorID uint64, day, token string, position int, newID int64) {
    mock.ExpectExec(`INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`).
        WithArgs(appointmentID, patientID, doctorID, day, token, position,
            model.QueueStatusWaiting, sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(newID, 1))
}

func expectAssignAppointment(mock sqlmock.Sqlmock, appointmentID uint64, token string, position int) {
    mock.ExpectExec(`UPDATE appointments SET queue_token = ?, queue_position = ?, status = ? WHERE id = ?`).
        WithArgs(token, position, model.AppointmentArrived, appointmentID).
        WillReturnResult(sqlmock.NewResult(0, 1))
}

func expectSyncPositions(mock sqlmock.Sqlmock, doctorID uint64, day string) {
    mock.ExpectExec(`UPDATE appointments a JOIN queue_entries q ON q.appointment_id = a.id SET a.queue_position = q.position WHERE q.doctor_id = ? AND q.queue_date = ?`).
        WithArgs(doctorID, day).
        WillReturnResult(sqlmock.NewResult(0, 2))
}

func TestCheckInAppendsToEnd(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 20, 30, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 20)

    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05", "0511-001", "0511-002")
    expectMaxPosition(mock, 4, "2026-11-05", 2)
    expectInsertEntry(mock, 20, 30, 4, "2026-11-05", "0511-003", 3, 10)
    expectAssignAppointment(mock, 20, "0511-003", 3)
    mock.ExpectCommit()

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in",
        `{"appointment_id":20,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusCreated, rec.Code)
    var resp map[string]interface{}
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, "0511-003", resp["token_number"])
    assert.Equal(t, float64(3), resp["position"])
    assert.Equal(t, model.QueueStatusWaiting, resp["status"])
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInFirstOfDay(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 20, 30, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 20)

    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05") // nothing issued yet
    expectMaxPosition(mock, 4, "2026-11-05", 0)
    expectInsertEntry(mock, 20, 30, 4, "2026-11-05", "0511-001", 1, 10)
    expectAssignAppointment(mock, 20, "0511-001", 1)
    mock.ExpectCommit()

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in",
        `{"appointment_id":20,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"token_number":"0511-001"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriorityCheckInShiftsWaiting(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 21, 31, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 21)

    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05", "0511-001", "0511-002", "0511-003")
    // Patient at position 1 is already in consultation; waiting starts at 2.
    mock.ExpectQuery(`SELECT MIN(position) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? AND status = ? FOR UPDATE`).
        WithArgs(uint64(4), "2026-11-05", model.QueueStatusWaiting).
        WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(2))
    mock.ExpectExec(`UPDATE queue_entries SET position = position + 1 WHERE doctor_id = ? AND queue_date = ? AND status = ?`).
        WithArgs(uint64(4), "2026-11-05", model.QueueStatusWaiting).
        WillReturnResult(sqlmock.NewResult(0, 2))
    expectInsertEntry(mock, 21, 31, 4, "2026-11-05", "0511-004", 2, 11)
    expectAssignAppointment(mock, 21, "0511-004", 2)
    expectSyncPositions(mock, 4, "2026-11-05")
    mock.ExpectCommit()

    rec := postJSON(t, h.PriorityCheckIn, "/v1/queue/priority-check-in",
        `{"appointment_id":21,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"token_number":"0511-004"`)
    assert.Contains(t, rec.Body.String(), `"position":2`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriorityCheckInEmptyLineAppends(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 21, 31, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 21)

    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05")
    mock.ExpectQuery(`SELECT MIN(position) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? AND status = ? FOR UPDATE`).
        WithArgs(uint64(4), "2026-11-05", model.QueueStatusWaiting).
        WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))
    expectMaxPosition(mock, 4, "2026-11-05", 0)
    expectInsertEntry(mock, 21, 31, 4, "2026-11-05", "0511-001", 1, 11)
    expectAssignAppointment(mock, 21, "0511-001", 1)
    mock.ExpectCommit()

    rec := postJSON(t, h.PriorityCheckIn, "/v1/queue/priority-check-in",
        `{"appointment_id":21,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"position":1`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInIdempotent(t *testing.T) {
    h, mock := newQueueHandlerMock(t)
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)

    expectAppointment(mock, 20, 30, 4)
    expectDoctor(mock, 4, 5000)
    mock.ExpectQuery(`SELECT ` + queueCols + ` FROM queue_entries WHERE appointment_id = ? LIMIT 1`).
        WithArgs(uint64(20)).
        WillReturnRows(sqlmock.NewRows(strings.Split(queueCols, ", ")).
            AddRow(10, 20, 30, 4, now, "0511-003", 3, model.QueueStatusWaiting,
                now, nil, nil, now, now))

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in",
        `{"appointment_id":20,"date":"2026-11-05"}`)

    // The existing entry comes back unchanged with 200, not 201.
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"token_number":"0511-003"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRetriesAfterTokenRace(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 20, 30, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 20)

    // First attempt loses the uq_token race.
    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05", "0511-001")
    expectMaxPosition(mock, 4, "2026-11-05", 1)
    mock.ExpectExec(`INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`).
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
    mock.ExpectRollback()

    // Not a same-appointment race, so the loop retries.
    expectNoExistingEntry(mock, 20)

    // Second attempt sees the winner's token and succeeds.
    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05", "0511-001", "0511-002")
    expectMaxPosition(mock, 4, "2026-11-05", 1)
    expectInsertEntry(mock, 20, 30, 4, "2026-11-05", "0511-003", 2, 12)
    expectAssignAppointment(mock, 20, "0511-003", 2)
    mock.ExpectCommit()

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in",
        `{"appointment_id":20,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"token_number":"0511-003"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRetriesAfterDeadlock(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 20, 30, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 20)

    // On an empty day the locking reads take only gap locks, which both
    // transactions can hold at once; InnoDB then kills one insert with a
    // deadlock instead of a duplicate key.
    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05")
    expectMaxPosition(mock, 4, "2026-11-05", 0)
    mock.ExpectExec(`INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`).
        WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
    mock.ExpectRollback()

    // Not a same-appointment race, so the loop retries.
    expectNoExistingEntry(mock, 20)

    // Second attempt sees the winner's row and appends behind it.
    mock.ExpectBegin()
    expectTokenScan(mock, "2026-11-05", "0511-001")
    expectMaxPosition(mock, 4, "2026-11-05", 1)
    expectInsertEntry(mock, 20, 30, 4, "2026-11-05", "0511-002", 2, 12)
    expectAssignAppointment(mock, 20, "0511-002", 2)
    mock.ExpectCommit()

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in",
        `{"appointment_id":20,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"token_number":"0511-002"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInExhaustsRetryBudget(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    expectAppointment(mock, 20, 30, 4)
    expectDoctor(mock, 4, 5000)
    expectNoExistingEntry(mock, 20)

    // Every attempt loses the token race and never finds a
    // same-appointment winner, so the budget runs out.
    for i := 0; i < 5; i++ {
        mock.ExpectBegin()
        expectTokenScan(mock, "2026-11-05", "0511-001")
        expectMaxPosition(mock, 4, "2026-11-05", 1)
        mock.ExpectExec(`INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`).
            WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
        mock.ExpectRollback()
        expectNoExistingEntry(mock, 20)
    }

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in",
        `{"appointment_id":20,"date":"2026-11-05"}`)

    assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInAppointmentNotFound(t *testing.T) {
    h, mock := newQueueHandlerMock(t)

    mock.ExpectQuery(`SELECT ` + apptCols + ` FROM appointments WHERE id = ?`).
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    rec := postJSON(t, h.CheckIn, "/v1/queue/check-in", `{"appointment_id":99}`)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkStartedRejectsTerminalEntry(t *testing.T) {
    h, mock := newQueueHandlerMock(t)
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT ` + queueCols + ` FROM queue_entries WHERE id = ? FOR UPDATE`).
        WithArgs(uint64(10)).
        WillReturnRows(sqlmock.NewRows(strings.Split(queueCols, ", ")).
            AddRow(10, 20, 30, 4, now, "0511-003", 3, model.QueueStatusNoShow,
                now, nil, nil, now, now))
    mock.ExpectRollback()

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/queue/10/start", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("10")
    require.NoError(t, h.MarkStarted(c))

    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompletedRaisesBill(t *testing.T) {
    h, mock := newQueueHandlerMock(t)
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT ` + queueCols + ` FROM queue_entries WHERE id = ? FOR UPDATE`).
        WithArgs(uint64(10)).
        WillReturnRows(sqlmock.NewRows(strings.Split(queueCols, ", ")).
            AddRow(10, 20, 30, 4, now, "0511-003", 3, model.QueueStatusInConsultation,
                now, now, nil, now, now))
    expectDoctor(mock, 4, 5000)
    mock.ExpectExec(`UPDATE queue_entries SET status = ?, consultation_end_time = ? WHERE id = ?`).
        WithArgs(model.QueueStatusPendingTransaction, sqlmock.AnyArg(), uint64(10)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`UPDATE appointments SET status = ? WHERE id = ?`).
        WithArgs(model.AppointmentPendingBill, uint64(20)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`INSERT INTO bills (appointment_id, queue_entry_id, amount_cents, status, issued_at) VALUES (?, ?, ?, ?, ?)`).
        WithArgs(uint64(20), uint64(10), uint32(5000), model.BillPending, sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/queue/10/complete", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("10")
    require.NoError(t, h.MarkCompleted(c))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), model.QueueStatusPendingTransaction)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveClosesGap(t *testing.T) {
    h, mock := newQueueHandlerMock(t)
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT ` + queueCols + ` FROM queue_entries WHERE id = ? FOR UPDATE`).
        WithArgs(uint64(10)).
        WillReturnRows(sqlmock.NewRows(strings.Split(queueCols, ", ")).
            AddRow(10, 20, 30, 4, now, "0511-002", 2, model.QueueStatusWaiting,
                now, nil, nil, now, now))
    mock.ExpectExec(`DELETE FROM queue_entries WHERE id = ?`).
        WithArgs(uint64(10)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`UPDATE queue_entries SET position = position - 1 WHERE doctor_id = ? AND queue_date = ? AND position > ?`).
        WithArgs(uint64(4), "2026-11-05", 2).
        WillReturnResult(sqlmock.NewResult(0, 3))
    expectSyncPositions(mock, 4, "2026-11-05")
    mock.ExpectExec(`UPDATE appointments SET queue_token = NULL, queue_position = NULL WHERE id = ?`).
        WithArgs(uint64(20)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    e := echo.New()
    req := httptest.NewRequest(http.MethodDelete, "/v1/queue/10", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("10")
    require.NoError(t, h.Remove(c))

    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderRefreshesMirrors(t *testing.T) {
    h, mock := newQueueHandlerMock(t)
    now := time.Date(2026, time.November, 5, 9, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT ` + queueCols + ` FROM queue_entries WHERE id = ? FOR UPDATE`).
        WithArgs(uint64(6)).
        WillReturnRows(sqlmock.NewRows(strings.Split(queueCols, ", ")).
            AddRow(6, 21, 31, 4, now, "0511-002", 2, model.QueueStatusWaiting,
                now, nil, nil, now, now))
    for _, id := range []uint64{6, 5} {
        mock.ExpectQuery(`SELECT id FROM queue_entries WHERE id = ? FOR UPDATE`).
            WithArgs(id).
            WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
    }
    mock.ExpectExec(`UPDATE queue_entries SET position = ? WHERE id = ?`).
        WithArgs(1, uint64(6)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`UPDATE queue_entries SET position = ? WHERE id = ?`).
        WithArgs(2, uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    expectSyncPositions(mock, 4, "2026-11-05")
    mock.ExpectCommit()

    e := echo.New()
    req := httptest.NewRequest(http.MethodPut, "/v1/queue/order", strings.NewReader(`{"entry_ids":[6,5]}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Reorder(e.NewContext(req, rec)))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"updated":2`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderRejectsDuplicates(t *testing.T) {
    h, _ := newQueueHandlerMock(t)

    e := echo.New()
    req := httptest.NewRequest(http.MethodPut, "/v1/queue/order", strings.NewReader(`{"entry_ids":[5,6,5]}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Reorder(e.NewContext(req, rec)))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
    h, _ := newQueueHandlerMock(t)

    e := echo.New()
    req := httptest.NewRequest(http.MethodPatch, "/v1/queue/10/status", strings.NewReader(`{"status":"archived"}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("10")
    require.NoError(t, h.UpdateStatus(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusRejectsUnknownFilter(t *testing.T) {
    h, _ := newQueueHandlerMock(t)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/queue?status=archived&date=2026-11-05", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Status(e.NewContext(req, rec)))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
