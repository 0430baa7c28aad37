package repository

import (
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/database"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

// GetProfessionalNames resolves applied_by ids into display names for
// history and export rendering.
func GetProfessionalNames(ids []int) (map[int]string, error) {
	names := make(map[int]string)
	if len(ids) == 0 {
		return names, nil
	}

	var professionals []models.Professional
	if err := database.DB.Where("id IN ?", ids).Find(&professionals).Error; err != nil {
		return nil, err
	}
	for _, p := range professionals {
		names[p.ID] = p.Name
	}
	return names, nil
}
