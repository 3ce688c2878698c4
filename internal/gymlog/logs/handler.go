package logs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=logs_test

type logsService interface {
	SaveSession(ctx context.Context, draft Draft, opts SessionOptions) (*SessionResult, error)
	GetLoggedWeeks(ctx context.Context) ([]LoggedWeek, error)
	GetLoggedDaysByWeek(ctx context.Context, weekStart string) ([calendar.TrainingDays]*LoggedDay, error)
	GetLoggedExercisesByDay(ctx context.Context, date string) (exercises.Slots, error)
	GetLogsByExerciseID(ctx context.Context, date string, exerciseID int) (*DayLogIdentity, error)
	UpdateLogs(ctx context.Context, identity DayLogIdentity) (int64, error)
	DestroyLogs(ctx context.Context, identity DayLogIdentity) (int64, error)
}

type Handler struct {
	service        logsService
	sessionOptions SessionOptions
}

type UpdateLogsResponse struct {
	Updated int64 `json:"updated"`
}

type DestroyLogsResponse struct {
	Deleted int64 `json:"deleted"`
}

// NewHandler creates the logs API. sessionOptions are the defaults of every saved
// session; a request can only switch auto-progression off.
func NewHandler(service logsService, sessionOptions SessionOptions) *Handler {
	return &Handler{
		service:        service,
		sessionOptions: sessionOptions,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/logs", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-logs")
	router.HandleFunc("/logs/delete", handler.HandleDestroy).Methods("POST", "OPTIONS").Name("destroy-logs")
	router.HandleFunc("/logs/session", handler.HandleSaveSession).Methods("POST", "OPTIONS").Name("save-session")
	router.HandleFunc("/logs/weeks", handler.HandleLoggedWeeks).Methods("GET", "OPTIONS").Name("logged-weeks")
	router.HandleFunc("/logs/weeks/{weekStart}/days", handler.HandleLoggedDays).Methods("GET", "OPTIONS").Name("logged-days")
	router.HandleFunc("/logs/days/{date}/exercises", handler.HandleLoggedExercises).Methods("GET", "OPTIONS").Name("logged-exercises")
	router.HandleFunc("/logs/days/{date}/exercises/{id:[0-9]+}", handler.HandleExerciseLogs).Methods("GET", "OPTIONS").Name("exercise-logs")
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrEmptyDraft), errors.Is(err, ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, exercises.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionExists):
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

func (handler *Handler) HandleSaveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.savesession")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	opts := handler.sessionOptions
	if raw := r.URL.Query().Get("auto_progression"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "error, auto_progression must be a bool", http.StatusBadRequest)
			return
		}
		opts.AutoProgression = opts.AutoProgression && enabled
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Debugf("save session, unmarshal draft: %s", err)
		http.Error(w, "error, invalid draft", http.StatusBadRequest)
		return
	}

	result, err := handler.service.SaveSession(ctx, draft, opts)
	if err != nil {
		writeErr(w, "save session", err)
		return
	}
	writeJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleLoggedWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.loggedweeks")
	defer span.End()

	weeks, err := handler.service.GetLoggedWeeks(ctx)
	if err != nil {
		writeErr(w, "get logged weeks", err)
		return
	}
	// nil (no logs at all) is written as null
	writeJSON(w, weeks, http.StatusOK)
}

func (handler *Handler) HandleLoggedDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.loggeddays")
	defer span.End()

	days, err := handler.service.GetLoggedDaysByWeek(ctx, mux.Vars(r)["weekStart"])
	if err != nil {
		writeErr(w, "get logged days", err)
		return
	}
	writeJSON(w, days, http.StatusOK)
}

func (handler *Handler) HandleLoggedExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.loggedexercises")
	defer span.End()

	slots, err := handler.service.GetLoggedExercisesByDay(ctx, mux.Vars(r)["date"])
	if err != nil {
		writeErr(w, "get logged exercises", err)
		return
	}
	writeJSON(w, slots, http.StatusOK)
}

func (handler *Handler) HandleExerciseLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.exerciselogs")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}

	identity, err := handler.service.GetLogsByExerciseID(ctx, vars["date"], id)
	if err != nil {
		writeErr(w, "get exercise logs", err)
		return
	}
	writeJSON(w, identity, http.StatusOK)
}

func decodeIdentity(w http.ResponseWriter, r *http.Request) (DayLogIdentity, bool) {
	var identity DayLogIdentity
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return identity, false
	}
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		log.Debugf("unmarshal day log: %s", err)
		http.Error(w, "error, invalid day log", http.StatusBadRequest)
		return identity, false
	}
	return identity, true
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.update")
	defer span.End()

	identity, ok := decodeIdentity(w, r)
	if !ok {
		return
	}

	updated, err := handler.service.UpdateLogs(ctx, identity)
	if err != nil {
		writeErr(w, "update logs", err)
		return
	}
	writeJSON(w, UpdateLogsResponse{Updated: updated}, http.StatusOK)
}

func (handler *Handler) HandleDestroy(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.destroy")
	defer span.End()

	identity, ok := decodeIdentity(w, r)
	if !ok {
		return
	}

	deleted, err := handler.service.DestroyLogs(ctx, identity)
	if err != nil {
		writeErr(w, "destroy logs", err)
		return
	}
	writeJSON(w, DestroyLogsResponse{Deleted: deleted}, http.StatusOK)
}
