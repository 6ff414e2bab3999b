package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/codecanvas/beacon/internal/apperr"
	"github.com/codecanvas/beacon/internal/dto"
	"github.com/codecanvas/beacon/internal/linkscan"
	"github.com/codecanvas/beacon/internal/storage"
	"github.com/codecanvas/beacon/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const hottestDefaultLimit = 10

// AdminRouter exposes the dead-link report, the on-demand scan trigger and
// the score-ordered article listing.
type AdminRouter struct {
	e        *echo.Echo
	reports  storage.DeadLinkStore
	articles storage.ArticleStore
	scanner  *linkscan.Scanner
}

func NewAdminRouter(e *echo.Echo, reports storage.DeadLinkStore, articles storage.ArticleStore, scanner *linkscan.Scanner) *AdminRouter {
	return &AdminRouter{
		e:        e,
		reports:  reports,
		articles: articles,
		scanner:  scanner,
	}
}

func (r *AdminRouter) Bind() {
	r.e.GET("/api/admin/dead-links", r.listDeadLinks)
	r.e.POST("/api/admin/dead-links/scan", r.triggerScan)
	r.e.DELETE("/api/admin/dead-links/:id", r.deleteDeadLink)
	r.e.GET("/api/articles/hottest", r.hottestArticles)
}

func (r *AdminRouter) listDeadLinks(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	links, total, err := r.reports.List(c.Request().Context(), req.Page, req.Size)
	if err != nil {
		return err
	}

	result := pagination.NewOffsetResult(dto.FromDeadLinks(links), total, req.Page, req.Size)
	return c.JSON(http.StatusOK, result)
}

// triggerScan starts a scan in the background and confirms only that it
// started; the caller never learns whether it succeeded.
func (r *AdminRouter) triggerScan(c echo.Context) error {
	// The scan outlives the request; detach it from the request context so
	// writing the response does not cancel it.
	started := r.scanner.Start(context.WithoutCancel(c.Request().Context()))
	if !started {
		return c.JSON(http.StatusConflict, map[string]string{"message": "a scan is already running"})
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "dead link scan started in background"})
}

func (r *AdminRouter) deleteDeadLink(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid dead link id", err)
	}

	if err := r.reports.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AdminRouter) hottestArticles(c echo.Context) error {
	limit := hottestDefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperr.NewValidation("limit must be a positive integer")
		}
		limit = parsed
	}

	articles, err := r.articles.ListHottest(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromHotArticles(articles))
}
