package test

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gorilla/mux"

	"github.com/fortranov/sportproject/internal/training"
)

// fakePlanService mimics the remote plan service: one plan per UIN, with a
// generated daily schedule from today up to the competition date.
type fakePlanService struct {
	router *mux.Router
	faker  *gofakeit.Faker

	mu       sync.Mutex
	nextID   int64
	plans    map[string]*training.TrainingPlan
	getCalls int
	down     bool
}

func newFakePlanService() *fakePlanService {
	f := &fakePlanService{
		faker: gofakeit.New(42),
	}
	f.reset()

	f.router = mux.NewRouter()
	f.router.HandleFunc("/training-plan", f.handleCreate).Methods("POST")
	f.router.HandleFunc("/training-plan/{uin}", f.handleGet).Methods("GET")
	f.router.HandleFunc("/training-plan/{uin}", f.handleDelete).Methods("DELETE")
	return f
}

func (f *fakePlanService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()
	if down {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	f.router.ServeHTTP(w, r)
}

func (f *fakePlanService) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID = 1
	f.plans = map[string]*training.TrainingPlan{}
	f.getCalls = 0
	f.down = false
}

func (f *fakePlanService) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakePlanService) gets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

// put stores a plan as is, bypassing generation.
func (f *fakePlanService) put(uin string, plan *training.TrainingPlan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans[uin] = plan
}

func (f *fakePlanService) handleGet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++

	plan, ok := f.plans[mux.Vars(r)["uin"]]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Training plan not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (f *fakePlanService) handleDelete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uin := mux.Vars(r)["uin"]
	if _, ok := f.plans[uin]; !ok {
		writeDetail(w, http.StatusNotFound, "Training plan not found")
		return
	}
	delete(f.plans, uin)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Training plan deleted"})
}

func (f *fakePlanService) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req training.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if _, err := training.DifficultyTierOf(req.Difficulty); err != nil {
		writeDetail(w, http.StatusBadRequest, "Difficulty must be between 0 and 1000")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	today := training.DateOf(time.Now())
	plan := &training.TrainingPlan{
		ID:              f.nextID,
		CompetitionDate: req.CompetitionDate,
		Difficulty:      req.Difficulty,
	}
	f.nextID++

	for d := today; d.Before(req.CompetitionDate); d = d.AddDays(1) {
		plan.TrainingDays = append(plan.TrainingDays, f.day(d, req.Difficulty))
	}
	f.plans[req.UIN] = plan

	writeJSON(w, http.StatusOK, plan)
}

func (f *fakePlanService) day(d training.Date, difficulty int) training.TrainingDay {
	if d.Weekday() == time.Monday {
		return training.TrainingDay{Date: d}
	}
	scale := 0.5 + float64(difficulty)/1000
	day := training.TrainingDay{
		Date:          d,
		SwimmingHours: round2(f.faker.Float64Range(0, 1) * scale),
		CyclingHours:  round2(f.faker.Float64Range(0, 2) * scale),
		RunningHours:  round2(f.faker.Float64Range(0, 1.2) * scale),
	}
	day.TotalHours = round2(day.SwimmingHours + day.CyclingHours + day.RunningHours)
	return day
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
