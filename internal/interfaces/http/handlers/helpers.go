package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/pkg/utils"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidID          = "Invalid id"
)

// pathID parses a UUID path parameter
func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.BadRequest(msgInvalidID)
	}
	return id, nil
}

func pagination(c *gin.Context) utils.PaginationParams {
	return utils.ParsePaginationParams(c.Query("page"), c.Query("pageSize"))
}

// bindJSON decodes the request body into dst
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domainerrors.BadRequest(msgInvalidRequestBody)
	}
	return nil
}

// bindOptionalJSON decodes the request body when there is one
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return bindJSON(c, dst)
}
