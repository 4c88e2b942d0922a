package handler

import (
	"errors"
	"net/http"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/lab"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/middleware"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"github.com/gin-gonic/gin"
)

// ModuleHandler serves the educational content pages and their demos.
type ModuleHandler struct {
	Cfg *config.Config
}

func NewModuleHandler(cfg *config.Config) *ModuleHandler {
	return &ModuleHandler{Cfg: cfg}
}

// Show renders one lab module page. Unknown slugs are a plain 404.
func (h *ModuleHandler) Show(c *gin.Context) {
	slug := c.Param("slug")
	module, ok := lab.Find(slug)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"title":   "Page Not Found",
			"message": "The requested page could not be found.",
		})
		return
	}

	session := middleware.CurrentSession(c)
	c.HTML(http.StatusOK, "module.html", gin.H{
		"title":   h.Cfg.App.Name + " - " + module.Name,
		"module":  module,
		"session": session,
	})
}

// Demo runs the module's interactive simulation and returns JSON for the
// page's demo form.
func (h *ModuleHandler) Demo(c *gin.Context) {
	slug := c.Param("slug")

	var in lab.DemoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	result, err := lab.RunDemo(slug, in)
	if err != nil {
		if errors.Is(err, lab.ErrUnknownModule) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "unknown module")
			return
		}
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	data := util.Response{}
	for k, v := range result {
		data[k] = v
	}
	util.Success(c, data)
}
