package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesService interface {
	ListDays(ctx context.Context) ([]Day, error)
	Schedule(ctx context.Context, dayID int) (Slots, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Create(ctx context.Context, exercise Exercise) (*Exercise, error)
	Update(ctx context.Context, exercise Exercise) (*Exercise, error)
	Delete(ctx context.Context, id int) error
	SwapSlots(ctx context.Context, dayID, from, to int) error
}

type DeleteExerciseResponse struct {
	DeletedID int `json:"deletedId"`
}

type SwapSlotsRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type Handler struct {
	service exercisesService
}

func NewHandler(service exercisesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/days", handler.HandleListDays).Methods("GET", "OPTIONS").Name("list-days")
	router.HandleFunc("/days/{dayId}/exercises", handler.HandleSchedule).Methods("GET", "OPTIONS").Name("day-schedule")
	router.HandleFunc("/days/{dayId}/slots/swap", handler.HandleSwapSlots).Methods("POST", "OPTIONS").Name("swap-slots")
	router.HandleFunc("/exercises", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	router.HandleFunc("/exercises/{id:[0-9]+}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	router.HandleFunc("/exercises/{id:[0-9]+}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise")
	router.HandleFunc("/exercises/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")
}

// errStatus maps service errors onto http status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrExerciseNotFound), errors.Is(err, ErrDayNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSlotTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, msg string, err error) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", msg, err)
		http.Error(w, "internal error", status)
		return
	}
	log.Debugf("%s: %s", msg, err)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}

func intVar(r *http.Request, name string) (int, bool) {
	val, err := strconv.Atoi(mux.Vars(r)[name])
	return val, err == nil
}

func (handler *Handler) HandleListDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listdays")
	defer span.End()

	days, err := handler.service.ListDays(ctx)
	if err != nil {
		writeErr(w, "list days", err)
		return
	}
	writeJSON(w, days, http.StatusOK)
}

func (handler *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.schedule")
	defer span.End()

	dayID, ok := intVar(r, "dayId")
	if !ok {
		http.Error(w, "error, day id NaN", http.StatusBadRequest)
		return
	}

	slots, err := handler.service.Schedule(ctx, dayID)
	if err != nil {
		writeErr(w, "get day schedule", err)
		return
	}
	writeJSON(w, slots, http.StatusOK)
}

func (handler *Handler) HandleSwapSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.swapslots")
	defer span.End()

	dayID, ok := intVar(r, "dayId")
	if !ok {
		http.Error(w, "error, day id NaN", http.StatusBadRequest)
		return
	}

	var req SwapSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("swap slots, unmarshal json params: %s", err)
		http.Error(w, "swap slots failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.SwapSlots(ctx, dayID, req.From, req.To); err != nil {
		writeErr(w, "swap slots", err)
		return
	}

	slots, err := handler.service.Schedule(ctx, dayID)
	if err != nil {
		writeErr(w, "get day schedule after swap", err)
		return
	}
	writeJSON(w, slots, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.new")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	added, err := handler.service.Create(ctx, exercise)
	if err != nil {
		writeErr(w, "add exercise", err)
		return
	}
	writeJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, ok := intVar(r, "id")
	if !ok {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	exercise, err := handler.service.Get(ctx, id)
	if err != nil {
		writeErr(w, "get exercise", err)
		return
	}
	writeJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	id, ok := intVar(r, "id")
	if !ok {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}
	exercise.ID = id

	updated, err := handler.service.Update(ctx, exercise)
	if err != nil {
		writeErr(w, "update exercise", err)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id, ok := intVar(r, "id")
	if !ok {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		writeErr(w, "delete exercise", err)
		return
	}
	writeJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}
