package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	GetExerciseProgressByID(ctx context.Context, exerciseID int) (*Progress, error)
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/exercises/{id:[0-9]+}/progress", handler.HandleGetProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
}

func (handler *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}

	progress, err := handler.service.GetExerciseProgressByID(ctx, id)
	if errors.Is(err, exercises.ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get progress of exercise %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// nil (no logs) is written as null
	progressJson, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("failed to marshal progress: %s", err)
		http.Error(w, "failed to marshal progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, progressJson, http.StatusOK)
}
