package errors

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a repository/storage error into a code and a Spanish
// message safe to show to the admin. Sensitive detail stays in the logs.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocurrió un error en el servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	if isTimeout(err) {
		return ErrorInfo{
			Code:    ConfigTimeout,
			Message: "La consulta demoró demasiado. Intente nuevamente",
		}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Postgres not-null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Falta un campo obligatorio",
		}
	}

	// Connection-level failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "No se pudo conectar con la base de datos. Intente nuevamente",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "slug") || strings.Contains(errLower, "idx_products_slug") {
		return ErrorInfo{
			Code:    ProductSlugExists,
			Message: "Ya existe un producto con este slug",
		}
	}
	if strings.Contains(errLower, "key") || strings.Contains(errLower, "idx_config_entries_key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Ya existe una configuración con esta clave",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Ya existe un registro con estos datos",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") || strings.Contains(contextLower, "producto") {
		return "No se encontró el producto"
	}
	if strings.Contains(contextLower, "client") || strings.Contains(contextLower, "contacto") {
		return "No se encontró el contacto"
	}
	if strings.Contains(contextLower, "config") {
		return "No se encontró la configuración"
	}
	return "No se encontró el registro solicitado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "crear") {
		return "Error al crear el registro. Intente nuevamente"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "actualizar") {
		return "Error al actualizar el registro. Intente nuevamente"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "eliminar") {
		return "Error al eliminar el registro. Intente nuevamente"
	}
	return "Ocurrió un error en el servidor. Intente nuevamente más tarde"
}
