// Package event defines message payloads exchanged over the message broker.
package event

// Queue lifecycle event types.
const (
    TypeCheckedIn             = "checked_in"
    TypePriorityCheckedIn     = "priority_checked_in"
    TypeConsultationStarted   = "consultation_started"
    TypeConsultationCompleted = "consultation_completed"
    TypeEntryRemoved          = "entry_removed"
)

// QueueEvent is published on every queue lifecycle change.  It carries
// enough information for downstream consumers (waiting-room display
// feed, analytics) to act without querying the primary database.
type QueueEvent struct {
    Type          string `json:"type"`
    EntryID       uint64 `json:"entry_id"`
    AppointmentID uint64 `json:"appointment_id"`
    PatientID     uint64 `json:"patient_id"`
    DoctorID      uint64 `json:"doctor_id"`
    QueueDate     string `json:"queue_date"`
    Token         string `json:"token"`
    Position      int    `json:"position"`
    Status        string `json:"status"`
    OccurredAt    string `json:"occurred_at"`
}
