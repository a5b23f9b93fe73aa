package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/internal/training/schedule"
	"github.com/carterbs/brad-os-sub016/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workout_test

type lifecycleManager interface {
	Log(ctx context.Context, setID, actualReps int, actualWeight float64) (*schedule.ScheduledSet, error)
	Skip(ctx context.Context, setID int) (*schedule.ScheduledSet, error)
	Unlog(ctx context.Context, setID int) (*schedule.ScheduledSet, error)
	AddSet(ctx context.Context, workoutID int, exerciseID string) (*schedule.ScheduledSet, error)
	RemoveSet(ctx context.Context, workoutID int, exerciseID string) error
}

type LogSetRequest struct {
	ActualReps   int     `json:"actualReps"`
	ActualWeight float64 `json:"actualWeight"`
}

type RemoveSetResponse struct {
	WorkoutID  int    `json:"workoutId"`
	ExerciseID string `json:"exerciseId"`
}

type Handler struct {
	manager lifecycleManager
}

func NewHandler(manager lifecycleManager) *Handler {
	return &Handler{
		manager: manager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts/sets/{id}/log", handler.HandleLogSet).Methods("POST", "OPTIONS").Name("log-set")
	router.HandleFunc("/workouts/sets/{id}/skip", handler.HandleSkipSet).Methods("POST", "OPTIONS").Name("skip-set")
	router.HandleFunc("/workouts/sets/{id}/unlog", handler.HandleUnlogSet).Methods("POST", "OPTIONS").Name("unlog-set")
	router.HandleFunc("/workouts/{workoutId}/exercises/{exerciseId}/sets", handler.HandleAddSet).Methods("POST", "OPTIONS").Name("add-set")
	router.HandleFunc("/workouts/{workoutId}/exercises/{exerciseId}/sets", handler.HandleRemoveSet).Methods("DELETE", "OPTIONS").Name("remove-set")
}

func (handler *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.log-set")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	setID, ok := setIDParam(w, r)
	if !ok {
		return
	}

	var req LogSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("log set, unmarshal json params: %s", err)
		http.Error(w, "log set failed", http.StatusBadRequest)
		return
	}

	set, err := handler.manager.Log(ctx, setID, req.ActualReps, req.ActualWeight)
	if err != nil {
		writeLifecycleError(w, "log set", setID, err)
		return
	}

	writeSet(w, set, http.StatusOK)
}

func (handler *Handler) HandleSkipSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.skip-set")
	defer span.End()

	setID, ok := setIDParam(w, r)
	if !ok {
		return
	}

	set, err := handler.manager.Skip(ctx, setID)
	if err != nil {
		writeLifecycleError(w, "skip set", setID, err)
		return
	}

	writeSet(w, set, http.StatusOK)
}

func (handler *Handler) HandleUnlogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.unlog-set")
	defer span.End()

	setID, ok := setIDParam(w, r)
	if !ok {
		return
	}

	set, err := handler.manager.Unlog(ctx, setID)
	if err != nil {
		writeLifecycleError(w, "unlog set", setID, err)
		return
	}

	writeSet(w, set, http.StatusOK)
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.add-set")
	defer span.End()

	workoutID, exerciseID, ok := exerciseParams(w, r)
	if !ok {
		return
	}

	set, err := handler.manager.AddSet(ctx, workoutID, exerciseID)
	if err != nil {
		writeLifecycleError(w, "add set", workoutID, err)
		return
	}

	writeSet(w, set, http.StatusCreated)
}

func (handler *Handler) HandleRemoveSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.remove-set")
	defer span.End()

	workoutID, exerciseID, ok := exerciseParams(w, r)
	if !ok {
		return
	}

	if err := handler.manager.RemoveSet(ctx, workoutID, exerciseID); err != nil {
		writeLifecycleError(w, "remove set", workoutID, err)
		return
	}

	removeRespJson, err := json.Marshal(RemoveSetResponse{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
	})
	if err != nil {
		log.Errorf("failed to marshal remove set response: %s", err)
		http.Error(w, "failed to marshal remove set response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(removeRespJson))
}

func setIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, set id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, set id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func exerciseParams(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	vars := mux.Vars(r)
	workoutID, err := strconv.Atoi(vars["workoutId"])
	if err != nil {
		http.Error(w, "error, workout id NaN", http.StatusBadRequest)
		return 0, "", false
	}
	exerciseID := vars["exerciseId"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return 0, "", false
	}
	return workoutID, exerciseID, true
}

func writeSet(w http.ResponseWriter, set *schedule.ScheduledSet, statusCode int) {
	setJson, err := json.Marshal(set)
	if err != nil {
		log.Errorf("failed to marshal set: %s", err)
		http.Error(w, "failed to marshal set", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, setJson, statusCode)
}

// writeLifecycleError maps domain errors to status codes: invalid input to
// 400, missing records to 404, rejected transitions to 409, integrity
// failures and everything else to 500.
func writeLifecycleError(w http.ResponseWriter, op string, id int, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, schedule.ErrSetNotFound), errors.Is(err, schedule.ErrWorkoutNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrWorkoutFinished), errors.Is(err, ErrLastSet), errors.Is(err, ErrNoPendingSets):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("%s %d: %s", op, id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
