package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/standingsfeed/standings-service/errs"
)

type LeagueHandler struct {
	leagueService LeagueService
	sources       map[string]string
}

func NewLeagueHandler(leagueService LeagueService, sources map[string]string) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService, sources: sources}
}

func (h *LeagueHandler) Get(c *gin.Context) {
	leagueType := c.Param("league")

	var params GetLeagueRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errs.CodeInvalidRequest})

		return
	}

	request := params.ToDomain(leagueType, h.sources[leagueType])
	if request.SourceURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no source url configured for league " + leagueType, "code": errs.CodeInvalidRequest})

		return
	}

	snapshot, err := h.leagueService.RequestLeagueData(c.Request.Context(), request)
	if errors.As(err, &errs.NoDataError{}) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": errs.CodeNoData})

		return
	}

	var fetchErr errs.FetchFailedError
	if errors.As(err, &fetchErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": errs.CodeFetchFailed})

		return
	}

	if errors.Is(err, errs.ErrMalformedURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errs.CodeInvalidRequest})

		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": errs.CodeInternalServerError})

		return
	}

	c.JSON(http.StatusOK, FromDomainSnapshot(snapshot))
}
