package technologies

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
	router.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("technologies-list")
	router.HandleFunc("", handler.handleCreate).Methods("POST", "OPTIONS").Name("technologies-create")
	router.HandleFunc("/project/{projectId}", handler.handleByProject).Methods("GET", "OPTIONS").Name("technologies-by-project")
	router.HandleFunc("/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("technologies-update")
	router.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("technologies-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	technologies, err := handler.service.All(r.Context(), forceRefresh)
	if err != nil {
		log.Errorf("list technologies: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch technologies"), http.StatusBadGateway)
		return
	}

	technologiesJSON, err := json.Marshal(technologies)
	if err != nil {
		log.Errorf("marshal technologies: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, technologiesJSON)
}

func (handler *Handler) handleByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	technologies, err := handler.service.ByProject(r.Context(), projectID)
	if err != nil {
		log.Errorf("technologies for project %d: %s", projectID, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch project technologies"), http.StatusBadGateway)
		return
	}

	technologiesJSON, err := json.Marshal(technologies)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, technologiesJSON)
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var technology upstream.Technology
	if err := json.NewDecoder(r.Body).Decode(&technology); err != nil {
		log.Errorf("create technology, unmarshal json params: %s", err)
		http.Error(w, "invalid technology payload", http.StatusBadRequest)
		return
	}

	if technology.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), technology)
	if err != nil {
		log.Errorf("create technology [%s]: %s", technology.Name, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to create technology"), http.StatusBadGateway)
		return
	}

	log.Tracef("new technology created: [%s] id %d", created.Name, created.ID)

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

	var technology upstream.Technology
	if err := json.NewDecoder(r.Body).Decode(&technology); err != nil {
		log.Errorf("update technology, unmarshal json params: %s", err)
		http.Error(w, "invalid technology payload", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), id, technology)
	if err != nil {
		log.Errorf("update technology %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to update technology"), http.StatusBadGateway)
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
		log.Errorf("delete technology %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to delete technology"), http.StatusBadGateway)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(id))
}
