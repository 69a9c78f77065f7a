package ui

import (
	"github.com/dustin/go-humanize"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

const cardDescriptionLimit = 60

// Card is the read-only presentation of a project.
type Card struct {
	ID          int64
	Name        string
	Description string
	Budget      string
	ImageURL    string
	IsActive    bool
}

// NewCard formats p for display.
func NewCard(p domain.Project) Card {
	return Card{
		ID:          p.ID,
		Name:        p.Name,
		Description: truncate(p.Description, cardDescriptionLimit),
		Budget:      humanize.Commaf(p.Budget),
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

func truncate(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
