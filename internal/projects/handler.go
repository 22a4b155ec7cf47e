package projects

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
	router.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("projects-list")
	router.HandleFunc("", handler.handleCreate).Methods("POST", "OPTIONS").Name("projects-create")
	router.HandleFunc("/stats", handler.handleStats).Methods("GET", "OPTIONS").Name("projects-stats")
	router.HandleFunc("/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("projects-update")
	router.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("projects-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	projects, err := handler.service.All(r.Context(), forceRefresh)
	if err != nil {
		log.Errorf("list projects: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch projects"), http.StatusBadGateway)
		return
	}

	projectsJSON, err := json.Marshal(projects)
	if err != nil {
		log.Errorf("marshal projects: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, projectsJSON)
}

func (handler *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := handler.service.Stats(r.Context())
	if err != nil {
		log.Errorf("project stats: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch project stats"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, stats)
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var project upstream.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Errorf("create project, unmarshal json params: %s", err)
		http.Error(w, "invalid project payload", http.StatusBadRequest)
		return
	}

	if project.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), project)
	if err != nil {
		log.Errorf("create project [%s]: %s", project.Title, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to create project"), http.StatusBadGateway)
		return
	}

	log.Tracef("new project created: [%s] id %d", created.Title, created.ID)
	writeEntityJSON(w, created, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var project upstream.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Errorf("update project, unmarshal json params: %s", err)
		http.Error(w, "invalid project payload", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), id, project)
	if err != nil {
		log.Errorf("update project %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to update project"), http.StatusBadGateway)
		return
	}

	writeEntityJSON(w, updated, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		log.Errorf("delete project %d: %s", id, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to delete project"), http.StatusBadGateway)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(id))
}

func writeEntityJSON(w http.ResponseWriter, entity any, statusCode int) {
	entityJSON, err := json.Marshal(entity)
	if err != nil {
		log.Errorf("marshal entity: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entityJSON, statusCode)
}
