// internal/repository/results.go
package repository

import (
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/database"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

// SaveTestResult inserts one administration record. There is
// deliberately no update or delete counterpart: corrections to a
// clinical result are saved as new rows.
func SaveTestResult(res *models.TestResult) error {
	return database.DB.Create(res).Error
}

// GetResultsForClient returns every persisted result for a client,
// most recent administration first.
func GetResultsForClient(clientID int) ([]models.TestResult, error) {
	var results []models.TestResult
	err := database.DB.
		Where("client_id = ?", clientID).
		Order("applied_at DESC").
		Find(&results).Error
	return results, err
}

// GetResultsForClientAndTest narrows the history to one instrument,
// oldest first, for timeline charting.
func GetResultsForClientAndTest(clientID int, testCode string) ([]models.TestResult, error) {
	var results []models.TestResult
	err := database.DB.
		Where("client_id = ? AND test_code = ?", clientID, testCode).
		Order("applied_at ASC").
		Find(&results).Error
	return results, err
}
