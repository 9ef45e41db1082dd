/*
handlers.go - HTTP API handlers for charge validation

PURPOSE:
  Exposes the charge rule engine over REST. Handlers read the request body,
  run the factory or the validator, and translate the outcome into JSON.
  Nothing is stored; every endpoint answers from the request alone.

ENDPOINTS:
  POST   /api/charges/validate        Validate a create payload, return the assembled charge
  PUT    /api/charges/validate        Validate an update payload
  POST   /api/charges/slabs/validate  Validate a rate chart {"chartSlabs": [...]}
  POST   /api/charges/timing-check    Check a timing/calculation method pair
  GET    /api/charges/options         Legal codes per applicability
  GET    /healthz                     Liveness

ERROR HANDLING:
  - 400: Structural validation errors (every error in "errors"), empty or
         malformed body, unsupported parameters, unknown enumeration codes
  - 403: Domain rule violations (min/max amount policy), one code
  - 500: Anything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - validation/errors.go: The error kinds translated here
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/factory"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/rules"
	"github.com/warp/charge-engine/validation"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Factory   *factory.ChargeFactory
	Validator *rules.Validator
	Logger    *zap.Logger

	options OptionsResponse
}

// NewHandler creates a new handler. A nil logger discards log output.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Factory:   factory.NewChargeFactory(),
		Validator: rules.New(),
		Logger:    logger,
		options:   buildOptions(),
	}
}

// =============================================================================
// CHARGE HANDLERS
// =============================================================================

// ValidateCreate validates a new charge and returns its assembled definition.
func (h *Handler) ValidateCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	def, err := h.Factory.Create(in)
	if err != nil {
		h.writeValidationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChargeDTO(def))
}

// ValidateUpdate validates a partial update payload.
func (h *Handler) ValidateUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	if err := h.Validator.ValidateForUpdate(in); err != nil {
		h.writeValidationError(w, r, err)
		return
	}
	if in.Exists(rules.ParamChart) {
		slabs, err := in.Slabs(rules.ParamChart)
		if err == nil {
			err = h.Validator.ValidateSlabSet(slabs)
		}
		if err != nil {
			h.writeValidationError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, ValidationResultDTO{Valid: true, Parameters: in.Names()})
}

// ValidateSlabs validates a rate chart on its own.
func (h *Handler) ValidateSlabs(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	slabs, err := in.Slabs("chartSlabs")
	if err == nil {
		err = h.Validator.ValidateSlabSet(slabs)
	}
	if err != nil {
		h.writeValidationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ValidationResultDTO{Valid: true})
}

// TimingCheck checks that a raw timing code and calculation method code combine.
func (h *Handler) TimingCheck(w http.ResponseWriter, r *http.Request) {
	var req TimingCheckRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ChargeTimeType == nil || req.ChargeCalculationType == nil {
		writeError(w, http.StatusBadRequest, "chargeTimeType and chargeCalculationType are required", nil)
		return
	}

	timing, err := charge.TimingFromCode(*req.ChargeTimeType)
	if err != nil {
		h.writeValidationError(w, r, err)
		return
	}
	method, err := charge.MethodFromCode(*req.ChargeCalculationType)
	if err != nil {
		h.writeValidationError(w, r, err)
		return
	}

	if err := h.Validator.ValidateTimingAndCalculationMethod(timing, method); err != nil {
		h.writeValidationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ValidationResultDTO{Valid: true})
}

// Options returns the legal codes per applicability.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.options)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) readPayload(w http.ResponseWriter, r *http.Request) (*fields.Map, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	in, err := fields.ParseJSON(body)
	if err != nil {
		h.writeValidationError(w, r, err)
		return nil, false
	}
	return in, true
}

// writeValidationError translates a validation outcome into a response.
func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.Logger.With(
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
	)

	var (
		failure *validation.Failure
		rule    *validation.DomainRuleError
	)
	switch {
	case errors.As(err, &failure):
		log.Debug("charge payload rejected", zap.Int("errors", len(failure.Errors)), zap.Strings("codes", failure.Codes()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Validation errors exist",
			Code:   "validation.msg.validation.errors.exist",
			Errors: toErrorDTOs(failure.Errors),
		})
	case errors.As(err, &rule):
		log.Debug("charge payload violates rule", zap.String("code", rule.Code))
		writeJSON(w, http.StatusForbidden, ErrorResponse{
			Error:   rule.Message,
			Code:    rule.Code,
			Details: rule.Args,
		})
	case validation.IsInputShape(err):
		log.Debug("charge payload malformed", zap.Error(err))
		writeError(w, http.StatusBadRequest, inputShapeMessage(err), err)
	default:
		log.Error("charge validation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error", nil)
	}
}

func inputShapeMessage(err error) string {
	switch {
	case errors.Is(err, validation.ErrEmptyInput):
		return "Request body is empty"
	case errors.Is(err, validation.ErrUnsupportedParameter):
		return "Request body contains unsupported parameters"
	case errors.Is(err, charge.ErrUnknownCategoryValue):
		return "Unknown enumeration code"
	}
	return "Invalid request body"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

