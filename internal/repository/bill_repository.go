package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/avicena/clinic-ops/internal/model"
)

// ErrBillNotFound is returned when no bill matches the requested id.
var ErrBillNotFound = errors.New("bill not found")

// BillRepo provides data access to the bills table.  Bills are created
// pending when a consultation completes; settlement flips them to paid
// and prunes the originating queue entry.
type BillRepo struct {
    db *sql.DB
}

// NewBillRepo returns a BillRepo bound to the given database.
func NewBillRepo(db *sql.DB) *BillRepo { return &BillRepo{db: db} }

const billColumns = `id, appointment_id, queue_entry_id, amount_cents, status, issued_at, paid_at`

func scanBill(s rowScanner) (model.Bill, error) {
    var b model.Bill
    var paid sql.NullTime
    if err := s.Scan(&b.ID, &b.AppointmentID, &b.QueueEntryID, &b.AmountCents,
        &b.Status, &b.IssuedAt, &paid); err != nil {
        return model.Bill{}, err
    }
    if paid.Valid {
        t := paid.Time
        b.PaidAt = &t
    }
    return b, nil
}

// CreateTx inserts a pending bill inside the consultation-completion
// transaction and populates its generated ID.
func (r *BillRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Bill) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO bills (appointment_id, queue_entry_id, amount_cents, status, issued_at) VALUES (?, ?, ?, ?, ?)`,
        b.AppointmentID, b.QueueEntryID, b.AmountCents, b.Status,
        b.IssuedAt.UTC().Format("2006-01-02 15:04:05"))
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// GetByIDTx fetches a bill and locks its row so concurrent settlements
// serialize.
func (r *BillRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Bill, error) {
    row := tx.QueryRowContext(ctx,
        `SELECT `+billColumns+` FROM bills WHERE id = ? FOR UPDATE`, id)
    b, err := scanBill(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Bill{}, ErrBillNotFound
    }
    return b, err
}

// MarkPaidTx settles a bill, stamping the payment time.
func (r *BillRepo) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE bills SET status = ?, paid_at = ? WHERE id = ?`,
        model.BillPaid, at.UTC().Format("2006-01-02 15:04:05"), id)
    return err
}

// ListByStatus returns bills in the given status, newest first.  Status
// "" lists everything.
func (r *BillRepo) ListByStatus(ctx context.Context, status string) ([]model.Bill, error) {
    query := `SELECT ` + billColumns + ` FROM bills`
    var args []interface{}
    if status != "" {
        query += ` WHERE status = ?`
        args = append(args, status)
    }
    query += ` ORDER BY issued_at DESC`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Bill, 0)
    for rows.Next() {
        b, err := scanBill(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}
