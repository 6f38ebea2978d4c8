package scheduler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"kitapantaups.id/api/pkg/response"
)

type Handler struct {
	scheduler *Scheduler
}

func NewHandler(s *Scheduler) *Handler {
	return &Handler{scheduler: s}
}

// ListJobs handles GET /jobs.
func (h *Handler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.scheduler.Jobs()})
}

// RunJob handles POST /jobs/:name/run. The job runs synchronously under the
// scheduler's timeout, detached from the request's cancellation.
func (h *Handler) RunJob(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.RunByName(context.WithoutCancel(c.Request.Context()), name); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job " + name + " selesai dijalankan"})
}
