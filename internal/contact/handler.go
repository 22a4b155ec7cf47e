package contact

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
	"github.com/chukwumaoranu/portfolio-gw/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Handler is the admin inbox surface. The public submission endpoint
// lives in the site handler, which shares the same service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("contact-list")
	router.HandleFunc("/stats", handler.handleStats).Methods("GET", "OPTIONS").Name("contact-stats")
	router.HandleFunc("/{id}", handler.handleGet).Methods("GET", "OPTIONS").Name("contact-get")
	router.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("contact-delete")
}

func (handler *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := handler.service.Stats(r.Context())
	if err != nil {
		log.Errorf("contact stats: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch message stats"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, stats)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	message, err := handler.service.Get(r.Context(), id)
	if err != nil {
		log.Errorf("get contact message %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch message"), http.StatusBadGateway)
		return
	}

	messageJSON, err := json.Marshal(message)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, messageJSON)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	messages, err := handler.service.All(r.Context(), forceRefresh)
	if err != nil {
		log.Errorf("list contact messages: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch messages"), http.StatusBadGateway)
		return
	}

	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		log.Errorf("marshal contact messages: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, messagesJSON)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		log.Errorf("delete contact message %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to delete message"), http.StatusBadGateway)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(id))
}
