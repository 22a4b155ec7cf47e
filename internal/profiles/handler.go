package profiles

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
	"github.com/chukwumaoranu/portfolio-gw/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("profiles-list")
	router.HandleFunc("", handler.handleCreate).Methods("POST", "OPTIONS").Name("profiles-create")
	router.HandleFunc("/stats", handler.handleStats).Methods("GET", "OPTIONS").Name("profiles-stats")
	router.HandleFunc("/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("profiles-update")
	router.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("profiles-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	profiles, err := handler.service.All(r.Context(), forceRefresh)
	if err != nil {
		log.Errorf("list profiles: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch profiles"), http.StatusBadGateway)
		return
	}

	profilesJSON, err := json.Marshal(profiles)
	if err != nil {
		log.Errorf("marshal profiles: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profilesJSON)
}

func (handler *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := handler.service.Stats(r.Context())
	if err != nil {
		log.Errorf("profile stats: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch profile stats"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, stats)
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var profile upstream.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("create profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile payload", http.StatusBadRequest)
		return
	}

	if profile.FullName == "" {
		http.Error(w, "error, full name empty", http.StatusBadRequest)
		return
	}
	if !pkg.ValidEmail(profile.Email) {
		http.Error(w, "error, email invalid", http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), profile)
	if err != nil {
		log.Errorf("create profile [%s]: %s", profile.FullName, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to create profile"), http.StatusBadGateway)
		return
	}

	createdJSON, err := json.Marshal(created)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdJSON, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var profile upstream.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile payload", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), id, profile)
	if err != nil {
		log.Errorf("update profile %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to update profile"), http.StatusBadGateway)
		return
	}

	updatedJSON, err := json.Marshal(updated)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJSON)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		log.Errorf("delete profile %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to delete profile"), http.StatusBadGateway)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(id))
}
