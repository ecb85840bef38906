package model

import "time"

// Bill statuses.  A bill is created pending when a consultation
// completes; paying it settles the visit and prunes the queue entry.
const (
    BillPending = "pending"
    BillPaid    = "paid"
    BillVoid    = "void"
)

// Bill records the charge raised for a completed consultation.
//
// Fields:
//  ID            – primary key identifier.
//  AppointmentID – appointment the charge belongs to.
//  QueueEntryID  – queue entry that produced the charge.
//  AmountCents   – charged amount in cents.
//  Status        – pending, paid or void.
//  IssuedAt      – when the consultation completed.
//  PaidAt        – when payment settled (nullable).
type Bill struct {
    ID            uint64     // bills.id
    AppointmentID uint64     // bills.appointment_id
    QueueEntryID  uint64     // bills.queue_entry_id
    AmountCents   uint32     // bills.amount_cents
    Status        string     // bills.status
    IssuedAt      time.Time  // bills.issued_at
    PaidAt        *time.Time // bills.paid_at (nullable)
}
