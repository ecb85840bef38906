package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avicena/clinic-ops/internal/event"
    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/repository"
    event_publisher "github.com/avicena/clinic-ops/internal/service"
    "github.com/avicena/clinic-ops/internal/utils"
)

// tokenRetryBudget bounds how often a check-in recomputes its token and
// position after losing a race to a concurrent request.  Exhausting it
// fails the request as retryable.
const tokenRetryBudget = 5

// QueueHandler implements the daily waiting-line operations: check-in
// (normal and priority), status listing, consultation transitions,
// manual reordering and removal.  Every operation that assigns or moves
// positions runs inside a transaction whose first read locks the
// relevant (doctor, day) rows, so concurrent requests serialize at the
// store; see QueueEntryRepo.
type QueueHandler struct {
    QueueRepo       *repository.QueueEntryRepo
    AppointmentRepo *repository.AppointmentRepo
    DoctorRepo      *repository.DoctorRepo
    PatientRepo     *repository.PatientRepo
    BillRepo        *repository.BillRepo
    Loc             *time.Location // clinic timezone for day bounds
}

// NewQueueHandler constructs a QueueHandler.  All repositories must be
// non-nil; a nil location falls back to time.Local.
func NewQueueHandler(queueRepo *repository.QueueEntryRepo, apptRepo *repository.AppointmentRepo, doctorRepo *repository.DoctorRepo, patientRepo *repository.PatientRepo, billRepo *repository.BillRepo, loc *time.Location) *QueueHandler {
    if queueRepo == nil || apptRepo == nil || doctorRepo == nil || patientRepo == nil || billRepo == nil {
        panic("nil repository passed to NewQueueHandler")
    }
    if loc == nil {
        loc = time.Local
    }
    return &QueueHandler{
        QueueRepo:       queueRepo,
        AppointmentRepo: apptRepo,
        DoctorRepo:      doctorRepo,
        PatientRepo:     patientRepo,
        BillRepo:        billRepo,
        Loc:             loc,
    }
}

// ----- DTOs -----

type checkInReq struct {
    AppointmentID uint64 `json:"appointment_id"`
    PatientID     uint64 `json:"patient_id"` // optional, defaults from the appointment
    DoctorID      uint64 `json:"doctor_id"`  // optional, defaults from the appointment
    Date          string `json:"date"`       // YYYY-MM-DD; empty means today
}

type queueEntryResp struct {
    ID                    uint64     `json:"id"`
    AppointmentID         uint64     `json:"appointment_id"`
    PatientID             uint64     `json:"patient_id"`
    DoctorID              uint64     `json:"doctor_id"`
    QueueDate             string     `json:"queue_date"`
    TokenNumber           string     `json:"token_number"`
    Position              int        `json:"position"`
    Status                string     `json:"status"`
    CheckInTime           time.Time  `json:"check_in_time"`
    ConsultationStartTime *time.Time `json:"consultation_start_time,omitempty"`
    ConsultationEndTime   *time.Time `json:"consultation_end_time,omitempty"`
}

func toQueueEntryResp(e model.QueueEntry) queueEntryResp {
    return queueEntryResp{
        ID:                    e.ID,
        AppointmentID:         e.AppointmentID,
        PatientID:             e.PatientID,
        DoctorID:              e.DoctorID,
        QueueDate:             utils.DateString(e.QueueDate),
        TokenNumber:           e.TokenNumber,
        Position:              e.Position,
        Status:                e.Status,
        CheckInTime:           e.CheckInTime,
        ConsultationStartTime: e.ConsultationStartTime,
        ConsultationEndTime:   e.ConsultationEndTime,
    }
}

// CheckIn handles POST /v1/queue/check-in.  The patient is appended to
// the end of the doctor's line for the day.  Repeating the request for
// an appointment that already has an entry returns the existing entry
// unchanged.
func (h *QueueHandler) CheckIn(c echo.Context) error {
    return h.checkIn(c, false)
}

// PriorityCheckIn handles POST /v1/queue/priority-check-in.  A
// scheduled patient takes the first waiting slot; everyone still
// waiting moves back one place.  When nobody is waiting it behaves
// exactly like CheckIn.
func (h *QueueHandler) PriorityCheckIn(c echo.Context) error {
    return h.checkIn(c, true)
}

func (h *QueueHandler) checkIn(c echo.Context, priority bool) error {
    var req checkInReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.AppointmentID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "appointment_id is required"})
    }
    ctx := c.Request().Context()

    appt, err := h.AppointmentRepo.GetByID(ctx, req.AppointmentID)
    if err != nil {
        if errors.Is(err, repository.ErrAppointmentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    doctorID := req.DoctorID
    if doctorID == 0 {
        doctorID = appt.DoctorID
    }
    patientID := req.PatientID
    if patientID == 0 {
        patientID = appt.PatientID
    }
    if _, err := h.DoctorRepo.GetByID(ctx, doctorID); err != nil {
        if errors.Is(err, repository.ErrDoctorNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    day := utils.ParseQueueDate(req.Date, h.Loc)

    // Idempotence: a repeat check-in returns the existing entry as-is.
    if existing, err := h.QueueRepo.GetByAppointment(ctx, req.AppointmentID); err == nil {
        return c.JSON(http.StatusOK, toQueueEntryResp(existing))
    } else if !errors.Is(err, repository.ErrQueueEntryNotFound) {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    entry, created, err := h.allocateEntry(ctx, appt.ID, patientID, doctorID, day, priority)
    if err != nil {
        if errors.Is(err, repository.ErrAllocationExhausted) {
            // Nothing was written; the caller may simply try again.
            return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "queue is busy, please try again"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
    }
    if !created {
        return c.JSON(http.StatusOK, toQueueEntryResp(entry))
    }
    evType := event.TypeCheckedIn
    if priority {
        evType = event.TypePriorityCheckedIn
    }
    h.publish(ctx, evType, entry)
    return c.JSON(http.StatusCreated, toQueueEntryResp(entry))
}

// allocateEntry runs the token/position retry loop.  The bool result is
// false when an existing entry for the appointment was returned instead
// of a newly created one.
func (h *QueueHandler) allocateEntry(ctx context.Context, appointmentID, patientID, doctorID uint64, day time.Time, priority bool) (model.QueueEntry, bool, error) {
    for attempt := 0; attempt < tokenRetryBudget; attempt++ {
        entry, err := h.tryCheckIn(ctx, appointmentID, patientID, doctorID, day, priority)
        if err == nil {
            return entry, true, nil
        }
        if errors.Is(err, repository.ErrDuplicate) || repository.IsSerializationFailure(err) {
            // Lost a race, either on a unique key or as an InnoDB
            // deadlock victim.  A concurrent request for the same
            // appointment may have won; if so, answer idempotently
            // with its entry.
            if existing, err2 := h.QueueRepo.GetByAppointment(ctx, appointmentID); err2 == nil {
                return existing, false, nil
            }
            continue // token collision with another appointment: recompute
        }
        return model.QueueEntry{}, false, err
    }
    return model.QueueEntry{}, false, repository.ErrAllocationExhausted
}

// tryCheckIn performs one transactional attempt at minting a token and
// assigning a position.  A duplicate-key or serialization failure means
// the attempt raced with a concurrent check-in and should be retried;
// nothing is left behind, so no partial write is ever observable.
func (h *QueueHandler) tryCheckIn(ctx context.Context, appointmentID, patientID, doctorID uint64, day time.Time, priority bool) (model.QueueEntry, error) {
    tx, err := h.QueueRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return model.QueueEntry{}, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Token first: the locking scan covers the whole day across doctors
    // and is the clinic-wide serialization point for minting.
    maxSeq, err := h.QueueRepo.MaxTokenSequenceTx(ctx, tx, day)
    if err != nil {
        return model.QueueEntry{}, err
    }
    token := utils.FormatQueueToken(day, maxSeq+1)

    var position int
    shifted := false
    if priority {
        minPos, ok, err := h.QueueRepo.MinWaitingPositionTx(ctx, tx, doctorID, day)
        if err != nil {
            return model.QueueEntry{}, err
        }
        if ok {
            // Take the first waiting slot; everyone waiting moves back one.
            if _, err := h.QueueRepo.ShiftWaitingTx(ctx, tx, doctorID, day); err != nil {
                return model.QueueEntry{}, err
            }
            position = minPos
            shifted = true
        } else {
            // Nobody waiting: fall back to a plain append at the end.
            maxPos, err := h.QueueRepo.MaxPositionTx(ctx, tx, doctorID, day)
            if err != nil {
                return model.QueueEntry{}, err
            }
            position = maxPos + 1
        }
    } else {
        maxPos, err := h.QueueRepo.MaxPositionTx(ctx, tx, doctorID, day)
        if err != nil {
            return model.QueueEntry{}, err
        }
        position = maxPos + 1
    }

    entry := model.QueueEntry{
        AppointmentID: appointmentID,
        PatientID:     patientID,
        DoctorID:      doctorID,
        QueueDate:     day,
        TokenNumber:   token,
        Position:      position,
        Status:        model.QueueStatusWaiting,
        CheckInTime:   time.Now().UTC(),
    }
    if err := h.QueueRepo.CreateTx(ctx, tx, &entry); err != nil {
        return model.QueueEntry{}, err
    }
    if err := h.AppointmentRepo.SetQueueAssignmentTx(ctx, tx, appointmentID, token, position); err != nil {
        return model.QueueEntry{}, err
    }
    if shifted {
        // The shift moved other entries; refresh their mirrors too.
        if err := h.AppointmentRepo.SyncQueuePositionsTx(ctx, tx, doctorID, day); err != nil {
            return model.QueueEntry{}, err
        }
    }
    if err := tx.Commit(); err != nil {
        return model.QueueEntry{}, err
    }
    committed = true
    return entry, nil
}

// Status handles GET /v1/queue.  Query parameters: date (YYYY-MM-DD,
// default today), doctor_id (optional; omitted returns every doctor's
// line), status (optional filter).  Entries are ordered by position
// ascending within each doctor.
func (h *QueueHandler) Status(c echo.Context) error {
    ctx := c.Request().Context()
    day := utils.ParseQueueDate(c.QueryParam("date"), h.Loc)

    var doctorID uint64
    if s := c.QueryParam("doctor_id"); s != "" {
        id, ok := parseID(s)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor_id"})
        }
        doctorID = id
    }
    status := c.QueryParam("status")
    if status != "" && !model.KnownQueueStatus(status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }

    entries, err := h.QueueRepo.ListForDay(ctx, day, doctorID, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]queueEntryResp, 0, len(entries))
    for _, e := range entries {
        out = append(out, toQueueEntryResp(e))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":    utils.DateString(day),
        "entries": out,
    })
}

// MarkStarted handles POST /v1/queue/:id/start.  Moves the entry to
// in-consultation, stamps the start time and mirrors the appointment.
func (h *QueueHandler) MarkStarted(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
    }
    ctx := c.Request().Context()

    tx, err := h.QueueRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    entry, err := h.QueueRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrQueueEntryNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "queue entry not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !model.CanTransition(entry.Status, model.QueueStatusInConsultation) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "cannot start consultation from status " + entry.Status})
    }

    now := time.Now().UTC()
    if err := h.QueueRepo.MarkStartedTx(ctx, tx, id, now); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if err := h.AppointmentRepo.SetStatusTx(ctx, tx, entry.AppointmentID, model.AppointmentInConsultation); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "appointment update failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    entry.Status = model.QueueStatusInConsultation
    entry.ConsultationStartTime = &now
    h.publish(ctx, event.TypeConsultationStarted, entry)
    return c.JSON(http.StatusOK, toQueueEntryResp(entry))
}

// MarkCompleted handles POST /v1/queue/:id/complete.  Moves the entry
// to pending-transaction, stamps the end time, mirrors the appointment
// to pending-bill and raises a pending bill for the doctor's fee.
// Billing settlement later deletes the entry and completes the
// appointment (see BillingHandler.Pay).
func (h *QueueHandler) MarkCompleted(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
    }
    ctx := c.Request().Context()

    tx, err := h.QueueRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    entry, err := h.QueueRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrQueueEntryNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "queue entry not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !model.CanTransition(entry.Status, model.QueueStatusPendingTransaction) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "cannot complete consultation from status " + entry.Status})
    }

    doctor, err := h.DoctorRepo.GetByID(ctx, entry.DoctorID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    now := time.Now().UTC()
    if err := h.QueueRepo.MarkCompletedTx(ctx, tx, id, now); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if err := h.AppointmentRepo.SetStatusTx(ctx, tx, entry.AppointmentID, model.AppointmentPendingBill); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "appointment update failed"})
    }
    bill := model.Bill{
        AppointmentID: entry.AppointmentID,
        QueueEntryID:  entry.ID,
        AmountCents:   doctor.FeeCents,
        Status:        model.BillPending,
        IssuedAt:      now,
    }
    if err := h.BillRepo.CreateTx(ctx, tx, &bill); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bill creation failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    entry.Status = model.QueueStatusPendingTransaction
    entry.ConsultationEndTime = &now
    h.publish(ctx, event.TypeConsultationCompleted, entry)
    return c.JSON(http.StatusOK, toQueueEntryResp(entry))
}

// UpdateStatus handles PATCH /v1/queue/:id/status, the administrative
// correction path (e.g. marking a no-show).  Cancelled and no-show are
// mirrored onto the appointment; other statuses touch the entry only.
func (h *QueueHandler) UpdateStatus(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil || body.Status == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
    }
    if !model.KnownQueueStatus(body.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }
    ctx := c.Request().Context()

    tx, err := h.QueueRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    entry, err := h.QueueRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrQueueEntryNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "queue entry not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.QueueRepo.SetStatusTx(ctx, tx, id, body.Status); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if body.Status == model.QueueStatusCancelled || body.Status == model.QueueStatusNoShow {
        if err := h.AppointmentRepo.SetStatusTx(ctx, tx, entry.AppointmentID, body.Status); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "appointment update failed"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    entry.Status = body.Status
    return c.JSON(http.StatusOK, toQueueEntryResp(entry))
}

// Reorder handles PUT /v1/queue/order.  The body carries the full
// desired ordering as entry ids; each listed entry gets position
// index+1, entries not listed are left untouched.  The caller is
// trusted to supply ids from one doctor's line for one day.
func (h *QueueHandler) Reorder(c echo.Context) error {
    var body struct {
        EntryIDs []uint64 `json:"entry_ids"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if len(body.EntryIDs) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "entry_ids is required"})
    }
    seen := make(map[uint64]struct{}, len(body.EntryIDs))
    for _, id := range body.EntryIDs {
        if id == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "entry_ids contains an invalid id"})
        }
        if _, dup := seen[id]; dup {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "entry_ids contains duplicates"})
        }
        seen[id] = struct{}{}
    }
    ctx := c.Request().Context()

    tx, err := h.QueueRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // The first entry scopes the mirror refresh; all listed entries
    // belong to its doctor and day per the trust model above.
    first, err := h.QueueRepo.GetByIDTx(ctx, tx, body.EntryIDs[0])
    if err != nil {
        if errors.Is(err, repository.ErrQueueEntryNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "queue entry not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.QueueRepo.ReorderTx(ctx, tx, body.EntryIDs); err != nil {
        if errors.Is(err, repository.ErrQueueEntryNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "queue entry not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reorder failed"})
    }
    if err := h.AppointmentRepo.SyncQueuePositionsTx(ctx, tx, first.DoctorID, first.QueueDate); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reorder failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{"updated": len(body.EntryIDs)})
}

// Remove handles DELETE /v1/queue/:id.  The entry is hard-deleted, the
// line behind it closes up, and the appointment's mirrored token and
// position are cleared.
func (h *QueueHandler) Remove(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
    }
    ctx := c.Request().Context()

    tx, err := h.QueueRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    entry, err := h.QueueRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrQueueEntryNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "queue entry not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.QueueRepo.DeleteTx(ctx, tx, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    if err := h.QueueRepo.CloseGapTx(ctx, tx, entry.DoctorID, entry.QueueDate, entry.Position); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    if err := h.AppointmentRepo.SyncQueuePositionsTx(ctx, tx, entry.DoctorID, entry.QueueDate); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    if err := h.AppointmentRepo.ClearQueueAssignmentTx(ctx, tx, entry.AppointmentID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "appointment update failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    h.publish(ctx, event.TypeEntryRemoved, entry)
    return c.NoContent(http.StatusNoContent)
}

// publish emits a queue lifecycle event.  Broker failures are already
// logged by the publisher and never fail the request.
func (h *QueueHandler) publish(ctx context.Context, evType string, e model.QueueEntry) {
    _ = event_publisher.PublishQueueEvent(ctx, event.QueueEvent{
        Type:          evType,
        EntryID:       e.ID,
        AppointmentID: e.AppointmentID,
        PatientID:     e.PatientID,
        DoctorID:      e.DoctorID,
        QueueDate:     utils.DateString(e.QueueDate),
        Token:         e.TokenNumber,
        Position:      e.Position,
        Status:        e.Status,
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    })
}
