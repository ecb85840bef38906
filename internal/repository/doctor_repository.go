package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/avicena/clinic-ops/internal/model"
)

// ErrDoctorNotFound is returned when no doctor matches the requested id.
var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepo provides data access to the doctors table.
type DoctorRepo struct {
    db *sql.DB
}

// NewDoctorRepo returns a DoctorRepo bound to the given database.
func NewDoctorRepo(db *sql.DB) *DoctorRepo { return &DoctorRepo{db: db} }

const doctorColumns = `id, full_name, specialty, room, fee_cents, is_active, created_at, updated_at`

func scanDoctor(s rowScanner) (model.Doctor, error) {
    var d model.Doctor
    err := s.Scan(&d.ID, &d.FullName, &d.Specialty, &d.Room, &d.FeeCents,
        &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
    return d, err
}

// Create inserts a doctor and populates the generated ID.
func (r *DoctorRepo) Create(ctx context.Context, d *model.Doctor) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO doctors (full_name, specialty, room, fee_cents, is_active) VALUES (?, ?, ?, ?, ?)`,
        d.FullName, d.Specialty, d.Room, d.FeeCents, d.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    d.ID = uint64(id)
    return nil
}

// GetByID fetches a doctor.  Returns ErrDoctorNotFound when the id does
// not exist.
func (r *DoctorRepo) GetByID(ctx context.Context, id uint64) (model.Doctor, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+doctorColumns+` FROM doctors WHERE id = ?`, id)
    d, err := scanDoctor(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Doctor{}, ErrDoctorNotFound
    }
    return d, err
}

// List returns doctors ordered by name.  When activeOnly is set,
// inactive doctors are excluded (the public directory view).
func (r *DoctorRepo) List(ctx context.Context, activeOnly bool) ([]model.Doctor, error) {
    query := `SELECT ` + doctorColumns + ` FROM doctors`
    if activeOnly {
        query += ` WHERE is_active = 1`
    }
    query += ` ORDER BY full_name ASC`
    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Doctor, 0)
    for rows.Next() {
        d, err := scanDoctor(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// Update rewrites the mutable columns of a doctor record.  Callers
// verify existence first; affected-row counts cannot distinguish a
// missing id from an unchanged value.
func (r *DoctorRepo) Update(ctx context.Context, d model.Doctor) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE doctors SET full_name = ?, specialty = ?, room = ?, fee_cents = ?, is_active = ? WHERE id = ?`,
        d.FullName, d.Specialty, d.Room, d.FeeCents, d.IsActive, d.ID)
    return err
}
