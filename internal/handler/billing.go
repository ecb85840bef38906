package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/repository"
)

// BillingHandler settles consultation bills.  Paying a bill is the
// final step of a visit: the bill is marked paid, the queue entry is
// removed (closing the gap behind it) and the appointment becomes
// completed.
type BillingHandler struct {
    Bills        *repository.BillRepo
    QueueRepo    *repository.QueueEntryRepo
    Appointments *repository.AppointmentRepo
}

func NewBillingHandler(bills *repository.BillRepo, queueRepo *repository.QueueEntryRepo, appts *repository.AppointmentRepo) *BillingHandler {
    return &BillingHandler{Bills: bills, QueueRepo: queueRepo, Appointments: appts}
}

type billResp struct {
    ID            uint64     `json:"id"`
    AppointmentID uint64     `json:"appointment_id"`
    QueueEntryID  uint64     `json:"queue_entry_id"`
    AmountCents   uint32     `json:"amount_cents"`
    Status        string     `json:"status"`
    IssuedAt      time.Time  `json:"issued_at"`
    PaidAt        *time.Time `json:"paid_at,omitempty"`
}

func toBillResp(b model.Bill) billResp {
    return billResp{
        ID:            b.ID,
        AppointmentID: b.AppointmentID,
        QueueEntryID:  b.QueueEntryID,
        AmountCents:   b.AmountCents,
        Status:        b.Status,
        IssuedAt:      b.IssuedAt,
        PaidAt:        b.PaidAt,
    }
}

// List handles GET /v1/bills?status= (default pending).
func (h *BillingHandler) List(c echo.Context) error {
    status := c.QueryParam("status")
    if status == "" {
        status = model.BillPending
    }
    switch status {
    case model.BillPending, model.BillPaid, model.BillVoid:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown bill status"})
    }
    bills, err := h.Bills.ListByStatus(c.Request().Context(), status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]billResp, 0, len(bills))
    for _, b := range bills {
        out = append(out, toBillResp(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"bills": out})
}

// Pay handles POST /v1/bills/:id/pay.  One transaction marks the bill
// paid, deletes the queue entry (the line behind closes up), clears the
// appointment's mirrored token and completes the appointment.  A bill
// that is already paid returns 409.
func (h *BillingHandler) Pay(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bill id"})
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

    bill, err := h.Bills.GetByIDTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrBillNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "bill not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if bill.Status != model.BillPending {
        return c.JSON(http.StatusConflict, echo.Map{"error": "bill is not pending"})
    }

    now := time.Now().UTC()
    if err := h.Bills.MarkPaidTx(ctx, tx, id, now); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
    }

    // The queue entry may already be gone if an administrator removed
    // it; settlement still completes the appointment.
    entry, err := h.QueueRepo.GetByIDTx(ctx, tx, bill.QueueEntryID)
    switch {
    case err == nil:
        if err := h.QueueRepo.DeleteTx(ctx, tx, entry.ID); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
        }
        if err := h.QueueRepo.CloseGapTx(ctx, tx, entry.DoctorID, entry.QueueDate, entry.Position); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
        }
        if err := h.Appointments.SyncQueuePositionsTx(ctx, tx, entry.DoctorID, entry.QueueDate); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
        }
        if err := h.Appointments.ClearQueueAssignmentTx(ctx, tx, bill.AppointmentID); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
        }
    case errors.Is(err, repository.ErrQueueEntryNotFound):
        // already removed, nothing to close up
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    if err := h.Appointments.SetStatusTx(ctx, tx, bill.AppointmentID, model.AppointmentCompleted); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    bill.Status = model.BillPaid
    bill.PaidAt = &now
    return c.JSON(http.StatusOK, toBillResp(bill))
}
