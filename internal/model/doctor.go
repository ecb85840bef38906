package model

import "time"

// Doctor represents a practicing doctor as stored in the `doctors`
// table.  Each doctor owns one waiting line per calendar day.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – doctor's display name.
//  Specialty – medical specialty shown in the public directory.
//  Room      – consultation room label.
//  FeeCents  – consultation fee in cents, billed on completion.
//  IsActive  – inactive doctors are hidden from the directory and
//              cannot take new appointments or check-ins.
type Doctor struct {
    ID        uint64    // doctors.id
    FullName  string    // doctors.full_name
    Specialty string    // doctors.specialty
    Room      string    // doctors.room
    FeeCents  uint32    // doctors.fee_cents
    IsActive  bool      // doctors.is_active
    CreatedAt time.Time // doctors.created_at
    UpdatedAt time.Time // doctors.updated_at
}
