package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avicena/clinic-ops/internal/model"
    "github.com/avicena/clinic-ops/internal/repository"
)

// PatientHandler serves the patient registry endpoints used by
// reception when registering walk-ins and looking up returning
// patients.
type PatientHandler struct {
    Patients *repository.PatientRepo
}

func NewPatientHandler(patients *repository.PatientRepo) *PatientHandler {
    return &PatientHandler{Patients: patients}
}

type patientReq struct {
    FullName  string `json:"full_name"`
    Phone     string `json:"phone"`
    Email     string `json:"email"`
    BirthDate string `json:"birth_date"` // YYYY-MM-DD, optional
}

type patientResp struct {
    ID        uint64  `json:"id"`
    FullName  string  `json:"full_name"`
    Phone     string  `json:"phone"`
    Email     *string `json:"email,omitempty"`
    BirthDate *string `json:"birth_date,omitempty"`
}

func toPatientResp(p model.Patient) patientResp {
    out := patientResp{ID: p.ID, FullName: p.FullName, Phone: p.Phone, Email: p.Email}
    if p.BirthDate != nil {
        s := p.BirthDate.Format("2006-01-02")
        out.BirthDate = &s
    }
    return out
}

// Create handles POST /v1/patients.
func (h *PatientHandler) Create(c echo.Context) error {
    var req patientReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.FullName == "" || req.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and phone are required"})
    }
    p := model.Patient{FullName: req.FullName, Phone: req.Phone}
    if req.Email != "" {
        p.Email = &req.Email
    }
    if req.BirthDate != "" {
        bd, err := time.Parse("2006-01-02", req.BirthDate)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date must be YYYY-MM-DD"})
        }
        p.BirthDate = &bd
    }
    if err := h.Patients.Create(c.Request().Context(), &p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create patient"})
    }
    return c.JSON(http.StatusCreated, toPatientResp(p))
}

// Get handles GET /v1/patients/:id.
func (h *PatientHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
    }
    p, err := h.Patients.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrPatientNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toPatientResp(p))
}

// List handles GET /v1/patients?name= with an optional name substring
// filter for the reception lookup screen.
func (h *PatientHandler) List(c echo.Context) error {
    patients, err := h.Patients.List(c.Request().Context(), c.QueryParam("name"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]patientResp, 0, len(patients))
    for _, p := range patients {
        out = append(out, toPatientResp(p))
    }
    return c.JSON(http.StatusOK, echo.Map{"patients": out})
}

// Update handles PUT /v1/patients/:id with a full replacement of the
// editable fields.
func (h *PatientHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
    }
    var req patientReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.FullName == "" || req.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and phone are required"})
    }
    if _, err := h.Patients.GetByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrPatientNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    p := model.Patient{ID: id, FullName: req.FullName, Phone: req.Phone}
    if req.Email != "" {
        p.Email = &req.Email
    }
    if req.BirthDate != "" {
        bd, err := time.Parse("2006-01-02", req.BirthDate)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date must be YYYY-MM-DD"})
        }
        p.BirthDate = &bd
    }
    if err := h.Patients.Update(c.Request().Context(), p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update patient"})
    }
    return c.JSON(http.StatusOK, toPatientResp(p))
}
