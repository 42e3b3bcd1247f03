package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trustwire/sourcecheck/src/api/config"
	"github.com/trustwire/sourcecheck/src/search"
)

type Health struct {
	cfg       config.Config
	searchSvc *search.Service
}

func NewHealth(cfg config.Config, searchSvc *search.Service) Health {
	return Health{cfg: cfg, searchSvc: searchSvc}
}

func (h Health) Status(c *gin.Context) {
	searchEnabled := h.searchSvc != nil && h.searchSvc.Enabled()
	var searchProviders []string
	if searchEnabled {
		searchProviders = h.searchSvc.ProvidersUsed()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"primaryProvider":   h.cfg.PrimaryProvider,
		"secondaryProvider": h.cfg.SecondaryProvider,
		"multiModel":        h.cfg.MultiModel,
		"searchEnabled":     searchEnabled,
		"searchProviders":   searchProviders,
	})
}
