package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/assignment"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/lab"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/middleware"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler serves the faculty assignment management pages and the
// student assignment list/submission flow.
type AssignmentHandler struct {
	Manager *assignment.Manager
	Cfg     *config.Config
}

func NewAssignmentHandler(mgr *assignment.Manager, cfg *config.Config) *AssignmentHandler {
	return &AssignmentHandler{Manager: mgr, Cfg: cfg}
}

// FacultyList renders /faculty/assignments.
func (h *AssignmentHandler) FacultyList(c *gin.Context) {
	session := middleware.CurrentSession(c)
	list, err := h.Manager.ByFaculty(session.Username)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Server Error", "message": "Error loading assignments.",
		})
		return
	}
	c.HTML(http.StatusOK, "faculty_assignments.html", gin.H{
		"title":       h.Cfg.App.Name + " - Assignments",
		"assignments": list,
		"labModules":  lab.Modules(),
	})
}

// CreateForm renders the create-assignment form.
func (h *AssignmentHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create_assignment.html", gin.H{
		"title":      h.Cfg.App.Name + " - Create Assignment",
		"labModules": lab.Modules(),
	})
}

// Create handles the create-assignment form POST.
func (h *AssignmentHandler) Create(c *gin.Context) {
	session := middleware.CurrentSession(c)

	points, _ := strconv.Atoi(c.PostForm("points"))
	dueDays, err := strconv.Atoi(c.DefaultPostForm("due_days", "7"))
	if err != nil {
		dueDays = 7
	}

	var resources []string
	for _, r := range strings.Split(c.PostForm("resources"), "\n") {
		if r = strings.TrimSpace(r); r != "" {
			resources = append(resources, r)
		}
	}

	_, err = h.Manager.Create(assignment.CreateInput{
		Title:        util.SanitizeInput(c.PostForm("title")),
		Description:  util.SanitizeInput(c.PostForm("description")),
		LabModule:    c.PostForm("lab_module"),
		Difficulty:   c.PostForm("difficulty"),
		Points:       points,
		DueDays:      dueDays,
		CreatedBy:    session.Username,
		Instructions: util.SanitizeInput(c.PostForm("instructions")),
		Resources:    resources,
	})
	if err != nil {
		c.HTML(http.StatusBadRequest, "create_assignment.html", gin.H{
			"title":      h.Cfg.App.Name + " - Create Assignment",
			"labModules": lab.Modules(),
			"error":      err.Error(),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/faculty/assignments")
}

// FacultyView shows one assignment with its submissions.
func (h *AssignmentHandler) FacultyView(c *gin.Context) {
	a, err := h.Manager.Get(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"title": "Page Not Found", "message": "Assignment not found.",
		})
		return
	}
	subs, err := h.Manager.Submissions(a.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Server Error", "message": "Error loading submissions.",
		})
		return
	}
	c.HTML(http.StatusOK, "view_assignment.html", gin.H{
		"title":       h.Cfg.App.Name + " - " + a.Title,
		"assignment":  a,
		"submissions": subs,
	})
}

// Grade records a grade on a submission.
func (h *AssignmentHandler) Grade(c *gin.Context) {
	session := middleware.CurrentSession(c)

	grade, err := strconv.Atoi(c.PostForm("grade"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "grade must be a number")
		return
	}

	sub, err := h.Manager.Grade(c.Param("id"), session.Username, grade, c.PostForm("feedback"))
	if err != nil {
		if errors.Is(err, assignment.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "submission not found")
			return
		}
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	util.Success(c, util.Response{
		"submission": gin.H{
			"id":     sub.ID,
			"status": sub.Status,
			"grade":  sub.Grade,
		},
	})
}

// Close deactivates an assignment.
func (h *AssignmentHandler) Close(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.Manager.Close(c.Param("id"), session.Username); err != nil {
		if errors.Is(err, assignment.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "assignment not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "could not close assignment")
		return
	}
	util.Success(c, util.Response{"message": "assignment closed"})
}

// StudentList renders /assignments for a student, annotated with their own
// submission status.
func (h *AssignmentHandler) StudentList(c *gin.Context) {
	session := middleware.CurrentSession(c)

	active, err := h.Manager.Active()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Server Error", "message": "Error loading assignments.",
		})
		return
	}

	type row struct {
		models.Assignment
		Status string
		Grade  *int
	}
	rows := make([]row, 0, len(active))
	for _, a := range active {
		r := row{Assignment: a, Status: "pending"}
		if sub, err := h.Manager.StudentSubmission(a.ID, session.Username); err == nil {
			r.Status = sub.Status
			r.Grade = sub.Grade
		}
		rows = append(rows, r)
	}

	c.HTML(http.StatusOK, "student_assignments.html", gin.H{
		"title":       h.Cfg.App.Name + " - Assignments",
		"assignments": rows,
	})
}

// Submit stores a student submission.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	session := middleware.CurrentSession(c)

	sub, err := h.Manager.Submit(c.Param("id"), session.Username, c.PostForm("content"))
	if err != nil {
		if errors.Is(err, assignment.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "assignment not found")
			return
		}
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	util.Success(c, util.Response{
		"submission": gin.H{
			"id":           sub.ID,
			"status":       sub.Status,
			"submitted_at": sub.SubmittedAt,
		},
	})
}
