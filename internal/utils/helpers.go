package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/senyabanana/etender-service/internal/models"
	"github.com/senyabanana/etender-service/internal/repository"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// CheckDepartmentExists проверяет, существует ли подразделение
func CheckDepartmentExists(ctx context.Context, db repository.DBPool, departmentId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM department WHERE id = $1)`
	err := db.QueryRow(ctx, query, departmentId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckCategoryExists проверяет, существует ли категория тендера
func CheckCategoryExists(ctx context.Context, db repository.DBPool, categoryId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tender_category WHERE id = $1)`
	err := db.QueryRow(ctx, query, categoryId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckVendorExists проверяет, существует ли поставщик
func CheckVendorExists(ctx context.Context, db repository.DBPool, vendorId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM vendor WHERE id = $1)`
	err := db.QueryRow(ctx, query, vendorId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckTenderExists проверяет, существует ли тендер
func CheckTenderExists(ctx context.Context, db repository.DBPool, tenderId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tender WHERE id = $1)`
	err := db.QueryRow(ctx, query, tenderId).Scan(&exists)
	return exists, err
}
