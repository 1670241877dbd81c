package planview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fortranov/sportproject/internal/export"
	"github.com/fortranov/sportproject/internal/middleware"
	"github.com/fortranov/sportproject/internal/telemetry/metrics"
	"github.com/fortranov/sportproject/internal/telemetry/tracing"
	"github.com/fortranov/sportproject/internal/training"
	"github.com/fortranov/sportproject/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=planview_test

type planStore interface {
	GetPlan(ctx context.Context, uin string) (*training.TrainingPlan, error)
	CreatePlan(ctx context.Context, req training.CreatePlanRequest) (*training.TrainingPlan, error)
	DeletePlan(ctx context.Context, uin string) error
}

type createPlanBody struct {
	UIN             string        `json:"uin"`
	CompetitionDate training.Date `json:"competition_date"`
	Difficulty      *int          `json:"difficulty"`
}

type DeletePlanResponse struct {
	Deleted string `json:"deleted"`
}

type TierInfo struct {
	Tier        training.DifficultyTier `json:"tier"`
	Min         int                     `json:"min"`
	Max         int                     `json:"max"`
	Preset      int                     `json:"preset"`
	Description string                  `json:"description"`
}

type Handler struct {
	plans          planStore
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

func NewHandler(plans planStore, metricsManager *metrics.Manager, nowFunc func() time.Time) *Handler {
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &Handler{
		plans:          plans,
		metricsManager: metricsManager,
		nowFunc:        nowFunc,
	}
}

// SetupRoutes registers the plan routes. Create and delete are rate limited
// when a rate limiter is given.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	mutating := func(name string, h http.HandlerFunc) http.Handler {
		if rateLimiter == nil {
			return h
		}
		return middleware.RateLimit(rateLimiter, name, allowedPerMin, handler.metricsManager)(h)
	}

	router.Handle("/plans", mutating("plans-create", handler.handleCreate)).Methods("POST", "OPTIONS").Name("plans-create")
	router.HandleFunc("/plans/{uin}", handler.handleGet).Methods("GET", "OPTIONS").Name("plans-get")
	router.Handle("/plans/{uin}", mutating("plans-delete", handler.handleDelete)).Methods("DELETE").Name("plans-delete")
	router.HandleFunc("/plans/{uin}/calendar", handler.handleCalendar).Methods("GET", "OPTIONS").Name("plans-calendar")
	router.HandleFunc("/plans/{uin}/summary", handler.handleSummary).Methods("GET", "OPTIONS").Name("plans-summary")
	router.HandleFunc("/plans/{uin}/chart", handler.handleChart).Methods("GET", "OPTIONS").Name("plans-chart")
	router.HandleFunc("/plans/{uin}/days/{date}", handler.handleDay).Methods("GET", "OPTIONS").Name("plans-day")
	router.HandleFunc("/plans/{uin}/export.xlsx", handler.handleExport).Methods("GET", "OPTIONS").Name("plans-export")
	router.HandleFunc("/difficulty/tiers", handler.handleTiers).Methods("GET", "OPTIONS").Name("difficulty-tiers")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.get")
	defer span.End()

	plan, err := handler.loadPlan(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	pkg.WriteJSONOK(w, plan)
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.create")
	defer span.End()

	var body createPlanBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Tracef("create plan, unmarshal json body: %s", err)
		writeError(w, fmt.Errorf("%w: invalid json body", training.ErrValidation))
		return
	}

	req := training.CreatePlanRequest{
		UIN:             body.UIN,
		CompetitionDate: body.CompetitionDate,
		Difficulty:      training.DefaultDifficulty,
	}
	if body.Difficulty != nil {
		req.Difficulty = *body.Difficulty
	}
	span.SetAttributes(
		attribute.String("uin", req.UIN),
		attribute.Int("difficulty", req.Difficulty),
	)

	if err := req.Validate(handler.nowFunc()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeInputError(w, err)
		return
	}

	plan, err := handler.plans.CreatePlan(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterPlansCreated.Inc()
	}
	log.Infof("training plan %d created for %s: competition %s, difficulty %d, %d days",
		plan.ID, req.UIN, req.CompetitionDate, req.Difficulty, len(plan.TrainingDays))
	pkg.WriteJSON(w, plan, http.StatusCreated)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.delete")
	defer span.End()

	uin := mux.Vars(r)["uin"]
	span.SetAttributes(attribute.String("uin", uin))

	if err := handler.plans.DeletePlan(ctx, uin); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterPlansDeleted.Inc()
	}
	log.Infof("training plan of %s deleted", uin)
	pkg.WriteJSONOK(w, DeletePlanResponse{Deleted: uin})
}

func (handler *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.calendar")
	defer span.End()

	now := handler.nowFunc()
	month := training.MonthStart(training.DateOf(now))
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := time.Parse(MonthLayout, monthParam)
		if err != nil {
			writeError(w, &training.ValidationError{Field: "month", Reason: "expected YYYY-MM"})
			return
		}
		month = training.DateOf(parsed)
	}
	span.SetAttributes(attribute.String("month", month.String()))

	view, err := handler.loadView(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	grid, err := view.Grid(month, now)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	pkg.WriteJSONOK(w, grid)
}

func (handler *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.summary")
	defer span.End()

	view, err := handler.loadView(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	summary, err := view.Summary(handler.nowFunc())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	pkg.WriteJSONOK(w, summary)
}

func (handler *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.chart")
	defer span.End()

	view, err := handler.loadView(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	pkg.WriteJSONOK(w, view.Chart())
}

func (handler *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.day")
	defer span.End()

	date, err := training.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, &training.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"})
		return
	}

	view, err := handler.loadView(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	detail, err := view.Day(date)
	if errors.Is(err, training.ErrNotFound) {
		log.Tracef("plan handler: %s", err)
		pkg.WriteJSONError(w, fmt.Sprintf("no training scheduled on %s", date), http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSONOK(w, detail)
}

func (handler *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.export")
	defer span.End()

	plan, err := handler.loadPlan(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	content, err := export.PlanWorkbookBytes(plan, handler.nowFunc())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="training-plan-%d.xlsx"`, plan.ID))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.XLSX, content)
}

func (handler *Handler) handleTiers(w http.ResponseWriter, _ *http.Request) {
	tiers := training.DifficultyTiers()
	resp := make([]TierInfo, 0, len(tiers))
	for _, tier := range tiers {
		lo, hi := tier.Range()
		resp = append(resp, TierInfo{
			Tier:        tier,
			Min:         lo,
			Max:         hi,
			Preset:      tier.Preset(),
			Description: tier.Description(),
		})
	}
	pkg.WriteJSONOK(w, resp)
}

func (handler *Handler) loadPlan(ctx context.Context, r *http.Request) (*training.TrainingPlan, error) {
	uin := mux.Vars(r)["uin"]
	return handler.plans.GetPlan(ctx, uin)
}

func (handler *Handler) loadView(ctx context.Context, r *http.Request) (*View, error) {
	plan, err := handler.loadPlan(ctx, r)
	if err != nil {
		return nil, err
	}
	return New(plan)
}

// writeInputError answers a rejected create request. Out-of-range values
// there come from the caller, not the plan service, so they are not logged as errors.
func writeInputError(w http.ResponseWriter, err error) {
	if errors.Is(err, training.ErrOutOfRange) {
		log.Debugf("plan handler: rejected input: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeError(w, err)
}

// writeError maps the error taxonomy onto status codes. Contract violations
// get an explicit error body instead of a partially computed result.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, training.ErrNotFound):
		log.Debugf("plan handler: %s", err)
		pkg.WriteJSONError(w, "no training plan found, create a new one", http.StatusNotFound)
	case errors.Is(err, training.ErrValidation):
		log.Debugf("plan handler: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, training.ErrOutOfRange), errors.Is(err, training.ErrDivisionByZero):
		log.Errorf("plan handler: invalid plan data: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, training.ErrTransport):
		log.Warnf("plan handler: %s", err)
		pkg.WriteJSONError(w, "plan service unavailable, retry", http.StatusBadGateway)
	default:
		log.Errorf("plan handler: %s", err)
		pkg.WriteJSONError(w, "internal error", http.StatusInternalServerError)
	}
}
