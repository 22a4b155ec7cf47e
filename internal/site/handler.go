package site

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chukwumaoranu/portfolio-gw/internal/contact"
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
	router.HandleFunc("/home", handler.handleHome).Methods("GET", "OPTIONS").Name("site-home")
	router.HandleFunc("/about", handler.handleMainProfile).Methods("GET", "OPTIONS").Name("site-about")
	router.HandleFunc("/projects", handler.handleProjects).Methods("GET", "OPTIONS").Name("site-projects")
	router.HandleFunc("/projects/{slug}", handler.handleProjectBySlug).Methods("GET", "OPTIONS").Name("site-project")
	router.HandleFunc("/skills", handler.handleTechnologies).Methods("GET", "OPTIONS").Name("site-skills")
	router.HandleFunc("/contact", handler.handleContactSubmit).Methods("POST", "OPTIONS").Name("site-contact")
}

func (handler *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	content, err := handler.service.Home(r.Context())
	if err != nil {
		log.Errorf("site, get home: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch home content"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, content)
}

func (handler *Handler) handleMainProfile(w http.ResponseWriter, r *http.Request) {
	content, err := handler.service.MainProfile(r.Context())
	if err != nil {
		log.Errorf("site, get main profile: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch profile"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, content)
}

func (handler *Handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	content, err := handler.service.Projects(r.Context())
	if err != nil {
		log.Errorf("site, get projects: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch projects"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, content)
}

func (handler *Handler) handleProjectBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	content, err := handler.service.ProjectBySlug(r.Context(), slug)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		log.Errorf("site, get project [%s]: %s", slug, err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch project"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, content)
}

func (handler *Handler) handleTechnologies(w http.ResponseWriter, r *http.Request) {
	content, err := handler.service.Technologies(r.Context())
	if err != nil {
		log.Errorf("site, get technologies: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to fetch technologies"), http.StatusBadGateway)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, content)
}

func (handler *Handler) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var message upstream.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		log.Errorf("contact submit, unmarshal json params: %s", err)
		http.Error(w, "invalid contact payload", http.StatusBadRequest)
		return
	}

	if err := handler.service.SubmitContactMessage(r.Context(), message); err != nil {
		var validationErr *contact.ErrValidation
		if errors.As(err, &validationErr) {
			response, merr := json.Marshal(struct {
				Success bool              `json:"success"`
				Errors  map[string]string `json:"errors"`
			}{Success: false, Errors: validationErr.FieldErrors})
			if merr != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, response, http.StatusBadRequest)
			return
		}

		log.Errorf("contact submit: %s", err)
		http.Error(w, upstream.ErrorMessage(err, "failed to send message"), http.StatusBadGateway)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"success":true,"message":"Message sent successfully"}`)
}
