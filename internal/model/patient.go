package model

import "time"

// Patient represents a clinic patient record as stored in the `patients`
// table.  Medical records and document uploads live outside this
// service; only demographic and contact data is kept here.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – patient's display name.
//  Phone     – contact phone number.
//  Email     – contact email, optional.
//  BirthDate – date of birth, optional.
type Patient struct {
    ID        uint64     // patients.id
    FullName  string     // patients.full_name
    Phone     string     // patients.phone
    Email     *string    // patients.email (nullable)
    BirthDate *time.Time // patients.birth_date (nullable DATE)
    CreatedAt time.Time  // patients.created_at
    UpdatedAt time.Time  // patients.updated_at
}
