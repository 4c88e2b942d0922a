package handler

import (
	"net/http"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/lab"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/middleware"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/stats"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"github.com/gin-gonic/gin"
)

// APIHandler backs the optional JSON API. Its routes are only registered
// when features.api_enabled is set.
type APIHandler struct {
	Users store.UserStore
	Stats *stats.Service
}

func NewAPIHandler(users store.UserStore, st *stats.Service) *APIHandler {
	return &APIHandler{Users: users, Stats: st}
}

// Me returns the authenticated identity.
func (h *APIHandler) Me(c *gin.Context) {
	session := middleware.CurrentSession(c)

	user, err := h.Users.FindByUsername(session.Username)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session user no longer exists")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"username":  user.Username,
			"full_name": user.FullName,
			"role":      user.Role,
		},
		"session": gin.H{
			"expires_at": session.ExpiresAt,
		},
	})
}

// Modules returns the lab catalog.
func (h *APIHandler) Modules(c *gin.Context) {
	type moduleResp struct {
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	items := make([]moduleResp, 0, lab.Count())
	for _, m := range lab.Modules() {
		items = append(items, moduleResp{Slug: m.Slug, Name: m.Name, Description: m.Description})
	}
	util.Success(c, util.Response{"modules": items})
}

// Overview returns the faculty statistics block.
func (h *APIHandler) Overview(c *gin.Context) {
	overview, err := h.Stats.Faculty()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "stats unavailable")
		return
	}
	util.Success(c, util.Response{
		"students":           overview.Students,
		"faculty":            overview.Faculty,
		"lab_modules":        overview.LabModules,
		"active_assignments": overview.ActiveAssignments,
		"submissions":        overview.Submissions,
	})
}
