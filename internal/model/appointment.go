package model

import "time"

// Appointment statuses.  Queue operations move an appointment from
// scheduled through arrived, in-consultation and pending-bill; billing
// settlement marks it completed.
const (
    AppointmentScheduled      = "scheduled"
    AppointmentArrived        = "arrived"
    AppointmentInConsultation = "in-consultation"
    AppointmentPendingBill    = "pending-bill"
    AppointmentCompleted      = "completed"
    AppointmentCancelled      = "cancelled"
    AppointmentNoShow         = "no-show"
)

// Appointment types.  Scheduled patients get priority insertion at
// check-in; walk-ins are appended to the end of the line.
const (
    AppointmentTypeScheduled = "scheduled"
    AppointmentTypeWalkIn    = "walk-in"
)

// Appointment records a patient's booking with a doctor.  QueueToken and
// QueuePosition mirror the live queue entry for cheap reads; they are a
// cache owned by the queue operations, not an authority.
//
// Fields:
//  ID            – primary key identifier.
//  PatientID     – patient who booked.
//  DoctorID      – doctor being seen.
//  ScheduledAt   – booked date and time.
//  Type          – scheduled or walk-in.
//  Status        – one of the Appointment* status constants.
//  Reason        – free-text visit reason, optional.
//  QueueToken    – mirrored daily token once checked in (nullable).
//  QueuePosition – mirrored line position once checked in (nullable).
type Appointment struct {
    ID            uint64    // appointments.id
    PatientID     uint64    // appointments.patient_id
    DoctorID      uint64    // appointments.doctor_id
    ScheduledAt   time.Time // appointments.scheduled_at
    Type          string    // appointments.appointment_type
    Status        string    // appointments.status
    Reason        *string   // appointments.reason (nullable)
    QueueToken    *string   // appointments.queue_token (nullable)
    QueuePosition *int      // appointments.queue_position (nullable)
    CreatedAt     time.Time // appointments.created_at
    UpdatedAt     time.Time // appointments.updated_at
}
