package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rowjay/link-batch-shortener/internal/constants"
	"github.com/rowjay/link-batch-shortener/internal/dto"
	serviceErrors "github.com/rowjay/link-batch-shortener/internal/errors"
	"github.com/rowjay/link-batch-shortener/internal/models"
	"github.com/rowjay/link-batch-shortener/internal/services"
	"github.com/rs/zerolog/log"
)

const (
	messageExpired  = "This link has expired."
	messageNotFound = "Link not found."
)

type LinkHandler struct {
	service services.LinkService
	// baseURL overrides the request origin in shortened URLs when set.
	baseURL string
}

func NewLinkHandler(service services.LinkService, baseURL string) *LinkHandler {
	return &LinkHandler{service: service, baseURL: strings.TrimRight(baseURL, "/")}
}

func (h *LinkHandler) CreateLinks(c *gin.Context) {
	var req dto.ShortenBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid request payload")
		msg := "Invalid request payload"
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msg = fmt.Sprintf("Submit between 1 and %d URLs", constants.MaxBatchSize)
		}
		h.handleServiceError(c, serviceErrors.NewBadRequestError("handler.CreateLinks", msg, err))
		return
	}
	req.Origin = h.origin(c)

	resp, err := h.service.ShortenBatch(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	log.Info().Int("count", len(resp.Links)).Str("origin", req.Origin).Msg("Short links created successfully")
	c.JSON(http.StatusCreated, resp)
}

func (h *LinkHandler) ListLinks(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatsResponse(stats))
}

func (h *LinkHandler) ClearLinks(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	log.Info().Msg("All short links cleared")
	c.JSON(http.StatusOK, gin.H{"message": "All links cleared"})
}

// Redirect is the entry point for visited short links.
func (h *LinkHandler) Redirect(c *gin.Context) {
	shortcode := c.Param("shortcode")

	res, err := h.service.Resolve(c.Request.Context(), shortcode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	switch res.State {
	case models.FoundActive:
		c.Redirect(http.StatusFound, res.Record.OriginalURL)
	case models.FoundExpired:
		c.HTML(http.StatusGone, "redirect", gin.H{"Message": messageExpired})
	default:
		c.HTML(http.StatusNotFound, "redirect", gin.H{"Message": messageNotFound})
	}
}

// ResolveJSON reports what a visit to /r/{shortcode} would do, without
// navigating.
func (h *LinkHandler) ResolveJSON(c *gin.Context) {
	shortcode := c.Param("shortcode")

	res, err := h.service.Resolve(c.Request.Context(), shortcode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := dto.ResolveResponse{Shortcode: shortcode, State: string(res.State)}
	status := http.StatusOK
	switch res.State {
	case models.FoundActive:
		resp.Message = "Redirecting to " + res.Record.OriginalURL
	case models.FoundExpired:
		resp.Message = messageExpired
		status = http.StatusGone
	default:
		resp.Message = messageNotFound
		status = http.StatusNotFound
	}
	if res.Record != nil {
		resp.OriginalURL = res.Record.OriginalURL
		resp.ExpiryDate = res.Record.ExpiryDate.UTC().Format(constants.ExpiryTimeFormat)
	}

	c.JSON(status, resp)
}

func (h *LinkHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home", gin.H{"MaxURLs": constants.MaxBatchSize})
}

func (h *LinkHandler) StatsPage(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "stats", toStatsResponse(stats))
}

// origin is the configured base URL, or scheme://host of the request.
// X-Forwarded-Proto is only honoured for http and https.
func (h *LinkHandler) origin(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func toStatsResponse(stats *models.Statistics) dto.StatsResponse {
	resp := dto.StatsResponse{
		Total: stats.Total,
		Links: make([]dto.LinkStatusResponse, 0, len(stats.Links)),
	}
	for _, link := range stats.Links {
		status := "Active"
		if link.Expired {
			status = "Expired"
		}
		resp.Links = append(resp.Links, dto.LinkStatusResponse{
			OriginalURL:  link.Record.OriginalURL,
			ShortenedURL: link.Record.ShortenedURL,
			Shortcode:    link.Record.Shortcode,
			ExpiryDate:   link.Record.ExpiryDate.UTC().Format(constants.ExpiryTimeFormat),
			Expired:      link.Expired,
			Status:       status,
		})
	}
	return resp
}

func (h *LinkHandler) handleServiceError(c *gin.Context, err error) {
	var serviceErr *serviceErrors.ServiceError
	if errors.As(err, &serviceErr) {
		var statusCode int
		switch serviceErr.Code {
		case serviceErrors.ErrorCodeValidation, serviceErrors.ErrorCodeBadRequest:
			statusCode = http.StatusBadRequest
		default:
			statusCode = http.StatusInternalServerError
		}

		if statusCode >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", statusCode).Msg("Service error")
		} else {
			log.Warn().Err(err).Int("status", statusCode).Msg("Service error")
		}
		c.JSON(statusCode, dto.ErrorResponse{
			Error:   serviceErr.Message,
			Message: serviceErr.Error(),
			Code:    statusCode,
			Details: serviceErr.Details,
		})
		return
	}

	log.Error().Err(err).Msg("Unknown error")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Message: "An unexpected error occurred",
		Code:    http.StatusInternalServerError,
	})
}
