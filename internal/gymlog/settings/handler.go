package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=settings_test

type settingsService interface {
	RestDays(ctx context.Context) (RestDays, error)
	SetRestDays(ctx context.Context, days RestDays) (RestDays, error)
}

type Handler struct {
	service settingsService
}

type RestDaysPayload struct {
	RestDays RestDays `json:"restDays"`
	Mask     int      `json:"mask"`
}

func NewHandler(service settingsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/settings/rest-days", handler.HandleGetRestDays).Methods("GET", "OPTIONS").Name("get-rest-days")
	router.HandleFunc("/settings/rest-days", handler.HandleSetRestDays).Methods("PUT", "OPTIONS").Name("set-rest-days")
}

func writeRestDays(w http.ResponseWriter, days RestDays) {
	respJson, err := json.Marshal(RestDaysPayload{RestDays: days, Mask: days.Mask()})
	if err != nil {
		log.Errorf("failed to marshal rest days: %s", err)
		http.Error(w, "failed to marshal rest days", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetRestDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.getrestdays")
	defer span.End()

	days, err := handler.service.RestDays(ctx)
	if err != nil {
		log.Errorf("get rest days: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeRestDays(w, days)
}

// HandleSetRestDays takes {"restDays": [7]bool}; Saturday and Sunday stay rest days whatever is sent.
func (handler *Handler) HandleSetRestDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.setrestdays")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var payload RestDaysPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Debugf("set rest days, unmarshal: %s", err)
		http.Error(w, "error, invalid rest days", http.StatusBadRequest)
		return
	}

	days, err := handler.service.SetRestDays(ctx, payload.RestDays)
	if err != nil {
		log.Errorf("set rest days: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeRestDays(w, days)
}
