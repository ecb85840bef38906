package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/utils"
)

// ErrAppointmentNotFound is returned when no appointment matches the
// requested id.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepo provides data access to the appointments table.  The
// queue_token/queue_position columns are a denormalized mirror of the
// live queue entry; only queue operations write them.
type AppointmentRepo struct {
    db *sql.DB
}

// NewAppointmentRepo returns an AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

const appointmentColumns = `id, patient_id, doctor_id, scheduled_at, appointment_type, status, reason, queue_token, queue_position, created_at, updated_at`

func scanAppointment(s rowScanner) (model.Appointment, error) {
    var a model.Appointment
    var reason, token sql.NullString
    var pos sql.NullInt64
    if err := s.Scan(
        &a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Type, &a.Status,
        &reason, &token, &pos, &a.CreatedAt, &a.UpdatedAt,
    ); err != nil {
        return model.Appointment{}, err
    }
    if reason.Valid {
        v := reason.String
        a.Reason = &v
    }
    if token.Valid {
        v := token.String
        a.QueueToken = &v
    }
    if pos.Valid {
        v := int(pos.Int64)
        a.QueuePosition = &v
    }
    return a, nil
}

// Create inserts a new appointment in scheduled status and populates
// its generated ID.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
    var reason interface{}
    if a.Reason != nil {
        reason = *a.Reason
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO appointments (patient_id, doctor_id, scheduled_at, appointment_type, status, reason) VALUES (?, ?, ?, ?, ?, ?)`,
        a.PatientID, a.DoctorID, a.ScheduledAt.UTC().Format("2006-01-02 15:04:05"),
        a.Type, a.Status, reason)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    return nil
}

// GetByID fetches an appointment.  Returns ErrAppointmentNotFound when
// the id does not exist.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
    a, err := scanAppointment(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Appointment{}, ErrAppointmentNotFound
    }
    return a, err
}

// CountActiveAt returns the number of non-cancelled appointments for a
// doctor at an exact datetime.  Booking treats the slot as free only
// when the count is zero; availability is consumed strictly as a yes/no.
func (r *AppointmentRepo) CountActiveAt(ctx context.Context, doctorID uint64, at time.Time) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM appointments WHERE doctor_id = ? AND scheduled_at = ? AND status NOT IN (?, ?)`,
        doctorID, at.UTC().Format("2006-01-02 15:04:05"),
        model.AppointmentCancelled, model.AppointmentNoShow).Scan(&n)
    return n, err
}

// ListByDoctorAndRange returns a doctor's appointments whose
// scheduled_at falls within [from, to], ordered by time.  doctorID 0
// lists all doctors.
func (r *AppointmentRepo) ListByDoctorAndRange(ctx context.Context, doctorID uint64, from, to time.Time) ([]model.Appointment, error) {
    query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE scheduled_at BETWEEN ? AND ?`
    args := []interface{}{
        from.UTC().Format("2006-01-02 15:04:05"),
        to.UTC().Format("2006-01-02 15:04:05"),
    }
    if doctorID != 0 {
        query += ` AND doctor_id = ?`
        args = append(args, doctorID)
    }
    query += ` ORDER BY scheduled_at ASC`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Appointment, 0)
    for rows.Next() {
        a, err := scanAppointment(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// SetStatus updates only the status column.  Callers verify existence
// first; affected-row counts cannot distinguish a missing id from an
// unchanged value.
func (r *AppointmentRepo) SetStatus(ctx context.Context, id uint64, status string) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE appointments SET status = ? WHERE id = ?`, status, id)
    return err
}

// SetStatusTx is SetStatus inside a caller-owned transaction.  Used by
// the consultation transitions so the mirror update commits atomically
// with the queue entry change.
func (r *AppointmentRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE appointments SET status = ? WHERE id = ?`, status, id)
    return err
}

// SetQueueAssignmentTx mirrors a freshly assigned token and position
// onto the appointment and marks it arrived, atomically with the queue
// entry insert.
func (r *AppointmentRepo) SetQueueAssignmentTx(ctx context.Context, tx *sql.Tx, id uint64, token string, position int) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE appointments SET queue_token = ?, queue_position = ?, status = ? WHERE id = ?`,
        token, position, model.AppointmentArrived, id)
    return err
}

// ClearQueueAssignmentTx blanks the mirrored token and position after
// the queue entry is removed.
func (r *AppointmentRepo) ClearQueueAssignmentTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE appointments SET queue_token = NULL, queue_position = NULL WHERE id = ?`, id)
    return err
}

// SyncQueuePositionsTx rewrites the mirrored queue_position for every
// appointment with a live entry in the doctor's line for the day.
// Called after bulk position moves (priority shift, manual reorder,
// gap close) so entries that were moved without a status change keep a
// fresh mirror too.
func (r *AppointmentRepo) SyncQueuePositionsTx(ctx context.Context, tx *sql.Tx, doctorID uint64, day time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE appointments a JOIN queue_entries q ON q.appointment_id = a.id SET a.queue_position = q.position WHERE q.doctor_id = ? AND q.queue_date = ?`,
        doctorID, utils.DateString(day))
    return err
}
