package webserver

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trustwire/sourcecheck/src/api/config"
	"github.com/trustwire/sourcecheck/src/evaluation"
	"github.com/trustwire/sourcecheck/src/logging"
	"github.com/trustwire/sourcecheck/src/ratelimit"
)

type Evaluate struct {
	cfg      config.Config
	limiter  *ratelimit.Limiter
	resolver *evaluation.Resolver
}

func NewEvaluate(cfg config.Config, limiter *ratelimit.Limiter, resolver *evaluation.Resolver) Evaluate {
	return Evaluate{cfg: cfg, limiter: limiter, resolver: resolver}
}

type evaluateRequest struct {
	Domain              string   `json:"domain" binding:"required"`
	MultiModel          *bool    `json:"multiModel"`
	ConfidenceThreshold *float64 `json:"confidenceThreshold" binding:"omitempty,gte=0,lte=1"`
	ConsensusThreshold  *float64 `json:"consensusThreshold" binding:"omitempty,gte=0,lte=1"`
}

func (h Evaluate) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	domain := normalizeDomain(req.Domain)
	if domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid domain"})
		return
	}

	if decision := h.limiter.Check(c.ClientIP(), domain, time.Now()); !decision.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"err": decision.Reason})
		return
	}

	resolveReq := evaluation.Request{
		Domain:              domain,
		MultiModel:          h.cfg.MultiModel,
		ConfidenceThreshold: h.cfg.ConfidenceThreshold,
		ConsensusThreshold:  h.cfg.ConsensusThreshold,
	}
	if req.MultiModel != nil {
		resolveReq.MultiModel = *req.MultiModel
	}
	if req.ConfidenceThreshold != nil {
		resolveReq.ConfidenceThreshold = *req.ConfidenceThreshold
	}
	if req.ConsensusThreshold != nil {
		resolveReq.ConsensusThreshold = *req.ConsensusThreshold
	}

	evalID := uuid.NewString()
	log.Printf("evaluate %s: domain=%s multiModel=%v", evalID, domain, resolveReq.MultiModel)

	outcome, err := h.resolver.Resolve(c.Request.Context(), resolveReq)
	if err != nil {
		var re *evaluation.ResolveError
		if errors.As(err, &re) {
			switch {
			case logging.IsInvariant(re.Err):
				log.Printf("evaluate %s: INVARIANT VIOLATION: %v", evalID, re.Err)
			case logging.IsRateLimit(re.Err):
				log.Printf("evaluate %s: provider rate limited: %v", evalID, re)
			default:
				log.Printf("evaluate %s: failed: %v", evalID, re)
			}
			c.JSON(http.StatusUnprocessableEntity, failurePayload(re))
			return
		}
		log.Printf("evaluate %s: unexpected error: %v", evalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "internal error"})
		return
	}

	log.Printf("evaluate %s: done category=%s consensus=%v", evalID, outcome.Category, outcome.ConsensusAchieved)
	c.JSON(http.StatusOK, assembleResponse(outcome))
}

// normalizeDomain lowercases and trims a bare domain; anything carrying a
// scheme, path, or port is rejected as malformed input.
func normalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "www.")
	if d == "" || !strings.Contains(d, ".") {
		return ""
	}
	if strings.ContainsAny(d, "/:@?# ") {
		return ""
	}
	return d
}
