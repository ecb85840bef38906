package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/repository"
)

// DoctorHandler serves the doctor directory.  The public listing shows
// active doctors only; administration sees and edits everyone.
type DoctorHandler struct {
    Doctors *repository.DoctorRepo
}

func NewDoctorHandler(doctors *repository.DoctorRepo) *DoctorHandler {
    return &DoctorHandler{Doctors: doctors}
}

type doctorReq struct {
    FullName  string `json:"full_name"`
    Specialty string `json:"specialty"`
    Room      string `json:"room"`
    FeeCents  uint32 `json:"fee_cents"`
    IsActive  *bool  `json:"is_active"` // nil on create means active
}

type doctorResp struct {
    ID        uint64 `json:"id"`
    FullName  string `json:"full_name"`
    Specialty string `json:"specialty"`
    Room      string `json:"room"`
    FeeCents  uint32 `json:"fee_cents"`
    IsActive  bool   `json:"is_active"`
}

func toDoctorResp(d model.Doctor) doctorResp {
    return doctorResp{
        ID:        d.ID,
        FullName:  d.FullName,
        Specialty: d.Specialty,
        Room:      d.Room,
        FeeCents:  d.FeeCents,
        IsActive:  d.IsActive,
    }
}

// Create handles POST /v1/doctors (admin only).
func (h *DoctorHandler) Create(c echo.Context) error {
    var req doctorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.FullName == "" || req.Specialty == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and specialty are required"})
    }
    d := model.Doctor{
        FullName:  req.FullName,
        Specialty: req.Specialty,
        Room:      req.Room,
        FeeCents:  req.FeeCents,
        IsActive:  true,
    }
    if req.IsActive != nil {
        d.IsActive = *req.IsActive
    }
    if err := h.Doctors.Create(c.Request().Context(), &d); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create doctor"})
    }
    return c.JSON(http.StatusCreated, toDoctorResp(d))
}

// Get handles GET /v1/doctors/:id.
func (h *DoctorHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
    }
    d, err := h.Doctors.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrDoctorNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toDoctorResp(d))
}

// List handles GET /v1/doctors.  Active doctors only unless
// `all=true` is passed by an administrative client.
func (h *DoctorHandler) List(c echo.Context) error {
    activeOnly := c.QueryParam("all") != "true"
    doctors, err := h.Doctors.List(c.Request().Context(), activeOnly)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]doctorResp, 0, len(doctors))
    for _, d := range doctors {
        out = append(out, toDoctorResp(d))
    }
    return c.JSON(http.StatusOK, echo.Map{"doctors": out})
}

// Update handles PUT /v1/doctors/:id (admin only).
func (h *DoctorHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
    }
    var req doctorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.FullName == "" || req.Specialty == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and specialty are required"})
    }
    if _, err := h.Doctors.GetByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrDoctorNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    d := model.Doctor{
        ID:        id,
        FullName:  req.FullName,
        Specialty: req.Specialty,
        Room:      req.Room,
        FeeCents:  req.FeeCents,
        IsActive:  true,
    }
    if req.IsActive != nil {
        d.IsActive = *req.IsActive
    }
    if err := h.Doctors.Update(c.Request().Context(), d); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update doctor"})
    }
    return c.JSON(http.StatusOK, toDoctorResp(d))
}
