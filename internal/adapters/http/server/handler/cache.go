package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/standingsfeed/standings-service/errs"
)

type CacheHandler struct {
	cacheService CacheService
}

func NewCacheHandler(cacheService CacheService) *CacheHandler {
	return &CacheHandler{cacheService: cacheService}
}

func (h *CacheHandler) Stats(c *gin.Context) {
	stats, err := h.cacheService.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": errs.CodeInternalServerError})

		return
	}

	entries := make([]CacheEntryStatsResponse, 0, len(stats))
	for _, entry := range stats {
		entries = append(entries, CacheEntryStatsResponse{
			Key:          entry.Key,
			AgeSeconds:   int64(entry.Age.Seconds()),
			RemainingTTL: int64(entry.RemainingTTL.Seconds()),
			SizeBytes:    entry.SizeBytes,
		})
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *CacheHandler) Cleanup(c *gin.Context) {
	removed, err := h.cacheService.CleanupExpired()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": errs.CodeInternalServerError})

		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *CacheHandler) Clear(c *gin.Context) {
	if err := h.cacheService.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": errs.CodeInternalServerError})

		return
	}

	c.Status(http.StatusNoContent)
}
