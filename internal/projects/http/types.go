package http

import "github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/service"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type projectReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	ImageURL    string  `json:"imageUrl"`
	IsActive    bool    `json:"isActive"`
}
