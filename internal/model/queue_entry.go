package model

import "time"

// Queue entry statuses.  An entry moves waiting -> in-consultation ->
// pending-transaction, after which billing settlement removes it.  The
// terminal statuses completed, cancelled and no-show accept no further
// transitions.
const (
    QueueStatusWaiting            = "waiting"
    QueueStatusInConsultation     = "in-consultation"
    QueueStatusPendingTransaction = "pending-transaction"
    QueueStatusCompleted          = "completed"
    QueueStatusNoShow             = "no-show"
    QueueStatusCancelled          = "cancelled"
)

// QueueEntry tracks one checked-in patient's place in a doctor's daily
// waiting line.  Tokens are unique per calendar day across the whole
// clinic; positions are unique per (doctor, day).  The paired
// appointment carries a denormalized copy of the token and position,
// refreshed by the queue operations; this record is the authority.
//
// Fields:
//  ID                    – primary key identifier.
//  AppointmentID         – appointment this entry belongs to (at most one
//                          live entry per appointment).
//  PatientID             – patient being seen.
//  DoctorID              – doctor whose line the entry is in.
//  QueueDate             – calendar day the entry belongs to.
//  TokenNumber           – human-readable daily token, "DDMM-SEQ".
//  Position              – 1-based order in the doctor's line.
//  Status                – one of the QueueStatus* constants.
//  CheckInTime           – when the patient checked in.
//  ConsultationStartTime – stamped when the consultation starts.
//  ConsultationEndTime   – stamped when the consultation completes.
type QueueEntry struct {
    ID                    uint64     // queue_entries.id
    AppointmentID         uint64     // queue_entries.appointment_id
    PatientID             uint64     // queue_entries.patient_id
    DoctorID              uint64     // queue_entries.doctor_id
    QueueDate             time.Time  // queue_entries.queue_date (DATE)
    TokenNumber           string     // queue_entries.token_number
    Position              int        // queue_entries.position
    Status                string     // queue_entries.status
    CheckInTime           time.Time  // queue_entries.check_in_time
    ConsultationStartTime *time.Time // queue_entries.consultation_start_time (nullable)
    ConsultationEndTime   *time.Time // queue_entries.consultation_end_time (nullable)
    CreatedAt             time.Time  // queue_entries.created_at
    UpdatedAt             time.Time  // queue_entries.updated_at
}

// KnownQueueStatus reports whether s is one of the defined entry statuses.
func KnownQueueStatus(s string) bool {
    switch s {
    case QueueStatusWaiting, QueueStatusInConsultation, QueueStatusPendingTransaction,
        QueueStatusCompleted, QueueStatusNoShow, QueueStatusCancelled:
        return true
    }
    return false
}

// TerminalQueueStatus reports whether s is a terminal status.  Entries in
// a terminal status accept no further consultation transitions.
func TerminalQueueStatus(s string) bool {
    switch s {
    case QueueStatusCompleted, QueueStatusNoShow, QueueStatusCancelled:
        return true
    }
    return false
}

// consultationTransitions lists the statuses each consultation operation
// may start from.  Callers are trusted with the happy path; the map only
// blocks transitions out of terminal states.
var consultationTransitions = map[string][]string{
    QueueStatusInConsultation:     {QueueStatusWaiting, QueueStatusInConsultation},
    QueueStatusPendingTransaction: {QueueStatusWaiting, QueueStatusInConsultation, QueueStatusPendingTransaction},
}

// CanTransition reports whether an entry currently in `from` may be moved
// to `to` by the consultation state machine.
func CanTransition(from, to string) bool {
    allowed, ok := consultationTransitions[to]
    if !ok {
        return false
    }
    for _, s := range allowed {
        if s == from {
            return true
        }
    }
    return false
}
