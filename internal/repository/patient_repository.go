package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/avicena/clinic-ops/internal/model"
)

// ErrPatientNotFound is returned when no patient matches the requested id.
var ErrPatientNotFound = errors.New("patient not found")

// PatientRepo provides data access to the patients table.
type PatientRepo struct {
    db *sql.DB
}

// NewPatientRepo returns a PatientRepo bound to the given database.
func NewPatientRepo(db *sql.DB) *PatientRepo { return &PatientRepo{db: db} }

const patientColumns = `id, full_name, phone, email, birth_date, created_at, updated_at`

func scanPatient(s rowScanner) (model.Patient, error) {
    var p model.Patient
    var email sql.NullString
    var birth sql.NullTime
    if err := s.Scan(&p.ID, &p.FullName, &p.Phone, &email, &birth,
        &p.CreatedAt, &p.UpdatedAt); err != nil {
        return model.Patient{}, err
    }
    if email.Valid {
        v := email.String
        p.Email = &v
    }
    if birth.Valid {
        v := birth.Time
        p.BirthDate = &v
    }
    return p, nil
}

// Create inserts a patient and populates the generated ID.
func (r *PatientRepo) Create(ctx context.Context, p *model.Patient) error {
    var email, birth interface{}
    if p.Email != nil {
        email = *p.Email
    }
    if p.BirthDate != nil {
        birth = p.BirthDate.Format("2006-01-02")
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO patients (full_name, phone, email, birth_date) VALUES (?, ?, ?, ?)`,
        p.FullName, p.Phone, email, birth)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    return nil
}

// GetByID fetches a patient.  Returns ErrPatientNotFound when the id
// does not exist.
func (r *PatientRepo) GetByID(ctx context.Context, id uint64) (model.Patient, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+patientColumns+` FROM patients WHERE id = ?`, id)
    p, err := scanPatient(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Patient{}, ErrPatientNotFound
    }
    return p, err
}

// List returns patients ordered by name, optionally filtered by a
// case-insensitive name substring.
func (r *PatientRepo) List(ctx context.Context, nameSearch string) ([]model.Patient, error) {
    query := `SELECT ` + patientColumns + ` FROM patients`
    var args []interface{}
    if s := strings.TrimSpace(nameSearch); s != "" {
        query += ` WHERE full_name LIKE ?`
        args = append(args, "%"+s+"%")
    }
    query += ` ORDER BY full_name ASC`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Patient, 0)
    for rows.Next() {
        p, err := scanPatient(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// Update rewrites the mutable columns of a patient record.  Callers
// verify existence first; affected-row counts cannot distinguish a
// missing id from an unchanged value.
func (r *PatientRepo) Update(ctx context.Context, p model.Patient) error {
    var email, birth interface{}
    if p.Email != nil {
        email = *p.Email
    }
    if p.BirthDate != nil {
        birth = p.BirthDate.Format("2006-01-02")
    }
    _, err := r.db.ExecContext(ctx,
        `UPDATE patients SET full_name = ?, phone = ?, email = ?, birth_date = ? WHERE id = ?`,
        p.FullName, p.Phone, email, birth, p.ID)
    return err
}
