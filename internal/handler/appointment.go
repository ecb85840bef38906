package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/repository"
    "github.com/avicena/clinic-ops/internal/utils"
)

// AppointmentHandler serves booking: availability lookups, creating
// scheduled and walk-in appointments and listing a doctor's day.
type AppointmentHandler struct {
    Appointments *repository.AppointmentRepo
    Patients     *repository.PatientRepo
    Doctors      *repository.DoctorRepo
    Loc          *time.Location
}

func NewAppointmentHandler(appts *repository.AppointmentRepo, patients *repository.PatientRepo, doctors *repository.DoctorRepo, loc *time.Location) *AppointmentHandler {
    if loc == nil {
        loc = time.Local
    }
    return &AppointmentHandler{Appointments: appts, Patients: patients, Doctors: doctors, Loc: loc}
}

type appointmentReq struct {
    PatientID   uint64 `json:"patient_id"`
    DoctorID    uint64 `json:"doctor_id"`
    ScheduledAt string `json:"scheduled_at"` // RFC 3339
    Type        string `json:"type"`         // scheduled | walk-in, defaults to scheduled
    Reason      string `json:"reason"`
}

type appointmentResp struct {
    ID            uint64    `json:"id"`
    PatientID     uint64    `json:"patient_id"`
    DoctorID      uint64    `json:"doctor_id"`
    ScheduledAt   time.Time `json:"scheduled_at"`
    Type          string    `json:"type"`
    Status        string    `json:"status"`
    Reason        *string   `json:"reason,omitempty"`
    QueueToken    *string   `json:"queue_token,omitempty"`
    QueuePosition *int      `json:"queue_position,omitempty"`
}

func toAppointmentResp(a model.Appointment) appointmentResp {
    return appointmentResp{
        ID:            a.ID,
        PatientID:     a.PatientID,
        DoctorID:      a.DoctorID,
        ScheduledAt:   a.ScheduledAt,
        Type:          a.Type,
        Status:        a.Status,
        Reason:        a.Reason,
        QueueToken:    a.QueueToken,
        QueuePosition: a.QueuePosition,
    }
}

// Availability handles GET /v1/appointments/availability?doctor_id=&at=.
// A slot is free when the doctor has no active appointment at that
// exact time; cancelled and no-show bookings do not block it.
func (h *AppointmentHandler) Availability(c echo.Context) error {
    doctorID, ok := parseID(c.QueryParam("doctor_id"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "doctor_id is required"})
    }
    at, err := time.Parse(time.RFC3339, c.QueryParam("at"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "at must be an RFC 3339 timestamp"})
    }
    ctx := c.Request().Context()
    if _, err := h.Doctors.GetByID(ctx, doctorID); err != nil {
        if errors.Is(err, repository.ErrDoctorNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    n, err := h.Appointments.CountActiveAt(ctx, doctorID, at.UTC())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"doctor_id": doctorID, "at": at.UTC(), "available": n == 0})
}

// Create handles POST /v1/appointments.  The slot must be free for
// scheduled bookings; walk-ins skip the availability check since they
// join the line on arrival regardless.
func (h *AppointmentHandler) Create(c echo.Context) error {
    var req appointmentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.PatientID == 0 || req.DoctorID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "patient_id and doctor_id are required"})
    }
    apptType := req.Type
    switch apptType {
    case "":
        apptType = model.AppointmentTypeScheduled
    case model.AppointmentTypeScheduled, model.AppointmentTypeWalkIn:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be scheduled or walk-in"})
    }
    scheduledAt := time.Now().UTC()
    if req.ScheduledAt != "" {
        at, err := time.Parse(time.RFC3339, req.ScheduledAt)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduled_at must be an RFC 3339 timestamp"})
        }
        scheduledAt = at.UTC()
    }
    ctx := c.Request().Context()

    if _, err := h.Patients.GetByID(ctx, req.PatientID); err != nil {
        if errors.Is(err, repository.ErrPatientNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    doctor, err := h.Doctors.GetByID(ctx, req.DoctorID)
    if err != nil {
        if errors.Is(err, repository.ErrDoctorNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !doctor.IsActive {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "doctor is not accepting appointments"})
    }
    if apptType == model.AppointmentTypeScheduled {
        n, err := h.Appointments.CountActiveAt(ctx, req.DoctorID, scheduledAt)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if n > 0 {
            return c.JSON(http.StatusConflict, echo.Map{"error": "slot is already booked"})
        }
    }

    a := model.Appointment{
        PatientID:   req.PatientID,
        DoctorID:    req.DoctorID,
        ScheduledAt: scheduledAt,
        Type:        apptType,
        Status:      model.AppointmentScheduled,
    }
    if req.Reason != "" {
        a.Reason = &req.Reason
    }
    if err := h.Appointments.Create(ctx, &a); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create appointment"})
    }
    return c.JSON(http.StatusCreated, toAppointmentResp(a))
}

// Get handles GET /v1/appointments/:id.
func (h *AppointmentHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
    }
    a, err := h.Appointments.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrAppointmentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toAppointmentResp(a))
}

// List handles GET /v1/appointments?doctor_id=&date=.  Returns the
// doctor's bookings for the clinic day; doctor_id omitted returns all
// doctors' bookings for that day.
func (h *AppointmentHandler) List(c echo.Context) error {
    var doctorID uint64
    if s := c.QueryParam("doctor_id"); s != "" {
        id, ok := parseID(s)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor_id"})
        }
        doctorID = id
    }
    day := utils.ParseQueueDate(c.QueryParam("date"), h.Loc)
    from, to := utils.DayBounds(day)

    appts, err := h.Appointments.ListByDoctorAndRange(c.Request().Context(), doctorID, from.UTC(), to.UTC())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]appointmentResp, 0, len(appts))
    for _, a := range appts {
        out = append(out, toAppointmentResp(a))
    }
    return c.JSON(http.StatusOK, echo.Map{"date": utils.DateString(day), "appointments": out})
}

// Cancel handles POST /v1/appointments/:id/cancel.  Only appointments
// that have not entered the queue can be cancelled here; checked-in
// patients are removed through the queue endpoints instead.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
    }
    ctx := c.Request().Context()
    a, err := h.Appointments.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrAppointmentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if a.Status != model.AppointmentScheduled {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "only scheduled appointments can be cancelled"})
    }
    if err := h.Appointments.SetStatus(ctx, id, model.AppointmentCancelled); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel appointment"})
    }
    a.Status = model.AppointmentCancelled
    return c.JSON(http.StatusOK, toAppointmentResp(a))
}
