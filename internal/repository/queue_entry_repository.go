package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/utils"
)

// ErrQueueEntryNotFound is returned when no queue entry matches the
// requested id or appointment.
var ErrQueueEntryNotFound = errors.New("queue entry not found")

// QueueEntryRepo provides data access to the queue_entries table.  It
// exclusively owns the token and position invariants.  Tokens are
// guarded by the uq_token unique key on (queue_date, token_number);
// check-in retries on a violation.  Position uniqueness within
// (doctor_id, queue_date) is guaranteed by serialization instead: every
// assigning operation runs in a caller-supplied transaction whose first
// read is a locking scan of the day's rows, so concurrent check-ins and
// shifts cannot interleave.  A position unique key is deliberately not
// used — the priority shift moves only waiting entries, and a terminal
// entry parked above them would collide with a shifted row even though
// the resulting line is valid.
type QueueEntryRepo struct {
    db *sql.DB
}

// NewQueueEntryRepo returns a QueueEntryRepo bound to the given database.
func NewQueueEntryRepo(db *sql.DB) *QueueEntryRepo { return &QueueEntryRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning queue entries, appointments and bills.
func (r *QueueEntryRepo) DB() *sql.DB { return r.db }

const queueEntryColumns = `id, appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time, consultation_start_time, consultation_end_time, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanQueueEntry(s rowScanner) (model.QueueEntry, error) {
    var e model.QueueEntry
    var start, end sql.NullTime
    if err := s.Scan(
        &e.ID, &e.AppointmentID, &e.PatientID, &e.DoctorID, &e.QueueDate,
        &e.TokenNumber, &e.Position, &e.Status, &e.CheckInTime,
        &start, &end, &e.CreatedAt, &e.UpdatedAt,
    ); err != nil {
        return model.QueueEntry{}, err
    }
    if start.Valid {
        t := start.Time
        e.ConsultationStartTime = &t
    }
    if end.Valid {
        t := end.Time
        e.ConsultationEndTime = &t
    }
    return e, nil
}

// GetByID fetches a single entry.  Returns ErrQueueEntryNotFound when
// the id does not exist.
func (r *QueueEntryRepo) GetByID(ctx context.Context, id uint64) (model.QueueEntry, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+queueEntryColumns+` FROM queue_entries WHERE id = ?`, id)
    e, err := scanQueueEntry(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.QueueEntry{}, ErrQueueEntryNotFound
    }
    return e, err
}

// GetByIDTx fetches an entry inside a transaction and locks its row for
// the duration, so status transitions cannot interleave.
func (r *QueueEntryRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.QueueEntry, error) {
    row := tx.QueryRowContext(ctx,
        `SELECT `+queueEntryColumns+` FROM queue_entries WHERE id = ? FOR UPDATE`, id)
    e, err := scanQueueEntry(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.QueueEntry{}, ErrQueueEntryNotFound
    }
    return e, err
}

// GetByAppointment returns the live entry for an appointment, if any.
// At most one exists; appointment_id carries a unique key.
func (r *QueueEntryRepo) GetByAppointment(ctx context.Context, appointmentID uint64) (model.QueueEntry, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+queueEntryColumns+` FROM queue_entries WHERE appointment_id = ? LIMIT 1`, appointmentID)
    e, err := scanQueueEntry(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.QueueEntry{}, ErrQueueEntryNotFound
    }
    return e, err
}

// MaxPositionTx returns the highest position for (doctor, day) across
// all statuses, or 0 when the line is empty.  The locking read is the
// serialization point for concurrent appends.
func (r *QueueEntryRepo) MaxPositionTx(ctx context.Context, tx *sql.Tx, doctorID uint64, day time.Time) (int, error) {
    var max int
    err := tx.QueryRowContext(ctx,
        `SELECT COALESCE(MAX(position), 0) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? FOR UPDATE`,
        doctorID, utils.DateString(day)).Scan(&max)
    return max, err
}

// MinWaitingPositionTx returns the smallest position among entries still
// waiting for (doctor, day).  The second return value is false when
// nobody is waiting.
func (r *QueueEntryRepo) MinWaitingPositionTx(ctx context.Context, tx *sql.Tx, doctorID uint64, day time.Time) (int, bool, error) {
    var min sql.NullInt64
    err := tx.QueryRowContext(ctx,
        `SELECT MIN(position) FROM queue_entries WHERE doctor_id = ? AND queue_date = ? AND status = ? FOR UPDATE`,
        doctorID, utils.DateString(day), model.QueueStatusWaiting).Scan(&min)
    if err != nil {
        return 0, false, err
    }
    if !min.Valid {
        return 0, false, nil
    }
    return int(min.Int64), true, nil
}

// ShiftWaitingTx increments the position of every waiting entry for
// (doctor, day) by one, making room for a priority insertion at the
// front.  Non-waiting entries keep their positions.  Must run inside
// the transaction that locked the day's rows.
func (r *QueueEntryRepo) ShiftWaitingTx(ctx context.Context, tx *sql.Tx, doctorID uint64, day time.Time) (int64, error) {
    res, err := tx.ExecContext(ctx,
        `UPDATE queue_entries SET position = position + 1 WHERE doctor_id = ? AND queue_date = ? AND status = ?`,
        doctorID, utils.DateString(day), model.QueueStatusWaiting)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// MaxTokenSequenceTx scans every token issued for the given day across
// all doctors and returns the highest parsed sequence, 0 when none.
// Tokens whose suffix does not parse contribute 0.  The locking scan
// serializes minting for the day; the uq_token key backstops the empty
// day, where there are no rows to lock and two transactions can both
// derive sequence 1.
func (r *QueueEntryRepo) MaxTokenSequenceTx(ctx context.Context, tx *sql.Tx, day time.Time) (int, error) {
    rows, err := tx.QueryContext(ctx,
        `SELECT token_number FROM queue_entries WHERE queue_date = ? FOR UPDATE`,
        utils.DateString(day))
    if err != nil {
        return 0, err
    }
    defer rows.Close()
    max := 0
    for rows.Next() {
        var token string
        if err := rows.Scan(&token); err != nil {
            return 0, err
        }
        if seq := utils.TokenSequence(token); seq > max {
            max = seq
        }
    }
    return max, rows.Err()
}

// CreateTx inserts a new entry and populates its generated ID.  A
// unique-key violation (token or position raced with another check-in)
// is reported as ErrDuplicate so the caller can recompute and retry.
func (r *QueueEntryRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.QueueEntry) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO queue_entries (appointment_id, patient_id, doctor_id, queue_date, token_number, position, status, check_in_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        e.AppointmentID, e.PatientID, e.DoctorID, utils.DateString(e.QueueDate),
        e.TokenNumber, e.Position, e.Status, e.CheckInTime.UTC().Format("2006-01-02 15:04:05"))
    if err != nil {
        if isDuplicateKey(err) {
            return ErrDuplicate
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)
    return nil
}

// ListForDay returns the entries for a calendar day ordered by position
// ascending within each doctor.  doctorID 0 means all doctors; status
// "" means all statuses.
func (r *QueueEntryRepo) ListForDay(ctx context.Context, day time.Time, doctorID uint64, status string) ([]model.QueueEntry, error) {
    query := `SELECT ` + queueEntryColumns + ` FROM queue_entries WHERE queue_date = ?`
    args := []interface{}{utils.DateString(day)}
    if doctorID != 0 {
        query += ` AND doctor_id = ?`
        args = append(args, doctorID)
    }
    if status != "" {
        query += ` AND status = ?`
        args = append(args, status)
    }
    query += ` ORDER BY doctor_id, position ASC`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    entries := make([]model.QueueEntry, 0)
    for rows.Next() {
        e, err := scanQueueEntry(rows)
        if err != nil {
            return nil, err
        }
        entries = append(entries, e)
    }
    return entries, rows.Err()
}

// MarkStartedTx moves an entry to in-consultation and stamps the
// consultation start time.
func (r *QueueEntryRepo) MarkStartedTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE queue_entries SET status = ?, consultation_start_time = ? WHERE id = ?`,
        model.QueueStatusInConsultation, at.UTC().Format("2006-01-02 15:04:05"), id)
    return err
}

// MarkCompletedTx moves an entry to pending-transaction and stamps the
// consultation end time.  The entry stays in the line until billing
// settles and prunes it.
func (r *QueueEntryRepo) MarkCompletedTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE queue_entries SET status = ?, consultation_end_time = ? WHERE id = ?`,
        model.QueueStatusPendingTransaction, at.UTC().Format("2006-01-02 15:04:05"), id)
    return err
}

// SetStatusTx sets an entry's status directly.  Used for administrative
// corrections such as marking a no-show; timestamps are untouched.
// Callers verify existence via GetByIDTx first.
func (r *QueueEntryRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE queue_entries SET status = ? WHERE id = ?`, status, id)
    return err
}

// ReorderTx reassigns position = index+1 to the listed entries within
// the caller's transaction.  Entries not listed keep their prior
// position (full replacement, last write wins).  An unknown id fails
// the whole operation with ErrQueueEntryNotFound; the caller's rollback
// leaves every position untouched.
func (r *QueueEntryRepo) ReorderTx(ctx context.Context, tx *sql.Tx, orderedIDs []uint64) error {
    // Lock and verify every id first; an UPDATE that writes an unchanged
    // position reports zero affected rows, so row counts cannot tell a
    // missing id from a no-op write.
    for _, id := range orderedIDs {
        var found uint64
        err := tx.QueryRowContext(ctx,
            `SELECT id FROM queue_entries WHERE id = ? FOR UPDATE`, id).Scan(&found)
        if errors.Is(err, sql.ErrNoRows) {
            return ErrQueueEntryNotFound
        }
        if err != nil {
            return err
        }
    }
    for i, id := range orderedIDs {
        if _, err := tx.ExecContext(ctx,
            `UPDATE queue_entries SET position = ? WHERE id = ?`, i+1, id); err != nil {
            return err
        }
    }
    return nil
}

// DeleteTx hard-deletes an entry.  Returns ErrQueueEntryNotFound when
// the id does not exist.
func (r *QueueEntryRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    res, err := tx.ExecContext(ctx, `DELETE FROM queue_entries WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrQueueEntryNotFound
    }
    return nil
}

// CloseGapTx shifts every position above removedPos down by one for
// (doctor, day), keeping the line contiguous after a removal.
func (r *QueueEntryRepo) CloseGapTx(ctx context.Context, tx *sql.Tx, doctorID uint64, day time.Time, removedPos int) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE queue_entries SET position = position - 1 WHERE doctor_id = ? AND queue_date = ? AND position > ?`,
        doctorID, utils.DateString(day), removedPos)
    return err
}
