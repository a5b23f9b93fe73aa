package plan

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/internal/training/progression"
	"github.com/carterbs/brad-os-sub016/internal/training/schedule"
	"github.com/carterbs/brad-os-sub016/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=plan_test

type diffApplier interface {
	ApplyDiff(ctx context.Context, cycleID int, diff PlanDiff, newExerciseContexts []ExerciseContext) (*PlanModificationResult, error)
}

type cycleMaterializer interface {
	MaterializeCycle(ctx context.Context, template CycleTemplate) (*schedule.Cycle, error)
}

type ApplyEditRequest struct {
	OldPrescriptions []Prescription    `json:"oldPrescriptions"`
	NewPrescriptions []Prescription    `json:"newPrescriptions"`
	Contexts         []ExerciseContext `json:"contexts"`
}

type PreviewRequest struct {
	Baseline          progression.Baseline           `json:"baseline"`
	CompletionHistory []progression.CompletionStatus `json:"completionHistory"`
}

type PreviewResponse struct {
	Targets []progression.WeekTargets `json:"targets"`
}

type Handler struct {
	propagator   diffApplier
	materializer cycleMaterializer
}

func NewHandler(propagator diffApplier, materializer cycleMaterializer) *Handler {
	return &Handler{
		propagator:   propagator,
		materializer: materializer,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/plan/cycles", handler.HandleMaterializeCycle).Methods("POST", "OPTIONS").Name("materialize-cycle")
	router.HandleFunc("/plan/cycles/{cycleId}/days/{dayId}/edit", handler.HandleApplyEdit).Methods("POST", "OPTIONS").Name("apply-plan-edit")
	router.HandleFunc("/plan/preview", handler.HandlePreview).Methods("POST", "OPTIONS").Name("plan-preview")
}

// HandleApplyEdit diffs the old and new prescriptions of a training day and
// propagates the edit through the cycle's future workouts.
func (handler *Handler) HandleApplyEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.apply-edit")
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
	trainingDayID, err := strconv.Atoi(vars["dayId"])
	if err != nil {
		http.Error(w, "error, training day id NaN", http.StatusBadRequest)
		return
	}

	var req ApplyEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("apply plan edit, unmarshal json params: %s", err)
		http.Error(w, "apply plan edit failed", http.StatusBadRequest)
		return
	}

	diff := Diff(trainingDayID, req.OldPrescriptions, req.NewPrescriptions)
	if diff.IsEmpty() {
		pkg.WriteJSONResponseOK(w, `{"affectedWorkoutCount":0,"addedSetsCount":0,"removedSetsCount":0,"modifiedSetsCount":0,"preservedCount":0,"warnings":null}`)
		return
	}

	result, err := handler.propagator.ApplyDiff(ctx, cycleID, diff, req.Contexts)
	if err != nil {
		log.Errorf("failed to apply plan edit to cycle %d, day %d: %s", cycleID, trainingDayID, err)
		http.Error(w, "error, failed to apply plan edit", http.StatusInternalServerError)
		return
	}

	for _, warning := range result.Warnings {
		log.Warnf("plan edit, cycle %d: %s", cycleID, warning)
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal plan edit result: %s", err)
		http.Error(w, "failed to marshal plan edit result", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

// HandleMaterializeCycle creates a new cycle with all of its workouts and
// sets from a plan template.
func (handler *Handler) HandleMaterializeCycle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.materialize-cycle")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var template CycleTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		log.Errorf("materialize cycle, unmarshal json params: %s", err)
		http.Error(w, "materialize cycle failed", http.StatusBadRequest)
		return
	}

	if template.PlanID == 0 || len(template.Days) == 0 {
		http.Error(w, "error, plan id or training days empty", http.StatusBadRequest)
		return
	}

	cycle, err := handler.materializer.MaterializeCycle(ctx, template)
	if err != nil {
		log.Errorf("failed to materialize cycle for plan %d: %s", template.PlanID, err)
		http.Error(w, "error, failed to materialize cycle", http.StatusInternalServerError)
		return
	}

	cycleJson, err := json.Marshal(cycle)
	if err != nil {
		log.Errorf("failed to marshal cycle: %s", err)
		http.Error(w, "failed to marshal cycle", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cycleJson, http.StatusCreated)
}

// HandlePreview computes the static week-by-week plan preview for one
// exercise, before any logging exists.
func (handler *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.preview")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("plan preview, unmarshal json params: %s", err)
		http.Error(w, "plan preview failed", http.StatusBadRequest)
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

	targets := progression.History(req.Baseline, req.CompletionHistory)

	previewJson, err := json.Marshal(PreviewResponse{Targets: targets})
	if err != nil {
		log.Errorf("failed to marshal plan preview: %s", err)
		http.Error(w, "failed to marshal plan preview", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, previewJson, http.StatusOK)
}
