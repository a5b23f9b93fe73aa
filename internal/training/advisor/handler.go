package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/internal/training/progression"
	"github.com/carterbs/brad-os-sub016/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=advisor_test

type adviceService interface {
	NextTargets(ctx context.Context, cycleID int, baseline progression.Baseline) (*Advice, error)
}

type NextTargetsRequest struct {
	Baseline progression.Baseline `json:"baseline"`
}

type Handler struct {
	advisor adviceService
}

func NewHandler(advisor adviceService) *Handler {
	return &Handler{
		advisor: advisor,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/advisor/cycles/{cycleId}/next", handler.HandleNextTargets).Methods("POST", "OPTIONS").Name("next-targets")
}

func (handler *Handler) HandleNextTargets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.advisor.next-targets")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	cycleID, err := strconv.Atoi(vars["cycleId"])
	if err != nil {
		http.Error(w, "error, cycle id NaN", http.StatusBadRequest)
		return
	}

	var req NextTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("next targets, unmarshal json params: %s", err)
		http.Error(w, "next targets failed", http.StatusBadRequest)
		return
	}

	if req.Baseline.ExerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}
	if req.Baseline.MinReps > req.Baseline.MaxReps {
		http.Error(w, "error, min reps greater than max reps", http.StatusBadRequest)
		return
	}

	advice, err := handler.advisor.NextTargets(ctx, cycleID, req.Baseline)
	if err != nil {
		log.Errorf("failed to compute next targets for cycle %d, exercise %s: %s", cycleID, req.Baseline.ExerciseID, err)
		http.Error(w, "error, failed to compute next targets", http.StatusInternalServerError)
		return
	}

	adviceJson, err := json.Marshal(advice)
	if err != nil {
		log.Errorf("failed to marshal advice: %s", err)
		http.Error(w, "failed to marshal advice", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, adviceJson, http.StatusOK)
}
