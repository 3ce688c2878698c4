package schedule

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=schedule_test

type todayService interface {
	Today(ctx context.Context) (*Today, error)
}

type Handler struct {
	service todayService
}

func NewHandler(service todayService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/schedule/today", handler.HandleToday).Methods("GET", "OPTIONS").Name("today")
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.today")
	defer span.End()

	today, err := handler.service.Today(ctx)
	if err != nil {
		log.Errorf("get today: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	todayJson, err := json.Marshal(today)
	if err != nil {
		log.Errorf("failed to marshal today: %s", err)
		http.Error(w, "failed to marshal today", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, todayJson, http.StatusOK)
}
