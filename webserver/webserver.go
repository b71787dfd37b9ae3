package webserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/infinitybotlist/eureka/zapchi"
	jsoniter "github.com/json-iterator/go"

	"banexport/state"
	"banexport/webserver/routes/webhook"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func CreateWebserver() *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.RequestID,
		middleware.CleanPath,
		middleware.Timeout(30*time.Second),
		zapchi.Logger(state.Logger.Sugar().Named("zapchi"), "webserver"),
	)

	r.Post("/battlemetrics/webhook", webhook.Ack)
	r.Get("/healthz", healthRoute)

	return r
}

func healthRoute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp, err := json.Marshal(map[string]string{"status": "ok"})

	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Write(resp)
}
