package shopserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

type HealthAPI struct {
	checks map[string]HealthCheck
}

func NewHealthAPI(checks map[string]HealthCheck) HealthAPI {
	return HealthAPI{checks: checks}
}

type healthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Get /actuator/health
func (api *HealthAPI) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthStatus{Status: "UP"}
	code := http.StatusOK
	for name, check := range api.checks {
		if resp.Components == nil {
			resp.Components = make(map[string]string, len(api.checks))
		}
		if err := check(ctx); err != nil {
			resp.Components[name] = "DOWN"
			resp.Status = "DOWN"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Components[name] = "UP"
	}
	c.JSON(code, resp)
}
