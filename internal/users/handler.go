package users

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
	router.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("users-list")
	router.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("users-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	users, err := handler.service.All(r.Context(), forceRefresh)
	if err != nil {
		log.Errorf("list users: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch users"), http.StatusBadGateway)
		return
	}

	usersJSON, err := json.Marshal(users)
	if err != nil {
		log.Errorf("marshal users: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, usersJSON)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		log.Errorf("delete user %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to delete user"), http.StatusBadGateway)
		return
	}

	log.Tracef("user %d deleted", id)
	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(id))
}
