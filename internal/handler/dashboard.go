package handler

import (
	"errors"
	"net/http"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/assignment"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/lab"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/middleware"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/stats"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"

	"github.com/gin-gonic/gin"
)

// DashboardHandler renders the student and faculty dashboards.
type DashboardHandler struct {
	Users       store.UserStore
	Stats       *stats.Service
	Assignments *assignment.Manager
	Cfg         *config.Config
}

func NewDashboardHandler(users store.UserStore, st *stats.Service, mgr *assignment.Manager, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{Users: users, Stats: st, Assignments: mgr, Cfg: cfg}
}

func (h *DashboardHandler) renderError(c *gin.Context, status int, title, msg string) {
	c.HTML(status, "error.html", gin.H{"title": title, "message": msg})
}

// Student renders /dashboard.
func (h *DashboardHandler) Student(c *gin.Context) {
	session := middleware.CurrentSession(c)

	user, err := h.Users.FindByUsername(session.Username)
	if err != nil {
		// the account was removed out-of-band after the session was issued
		if errors.Is(err, store.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	progress, err := h.Assignments.StatsForStudent(user.Username)
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	active, err := h.Assignments.Active()
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	type assignmentRow struct {
		models.Assignment
		Status string
	}
	var recent []assignmentRow
	for i, a := range active {
		if i >= 3 {
			break
		}
		row := assignmentRow{Assignment: a, Status: "pending"}
		if sub, err := h.Assignments.StudentSubmission(a.ID, user.Username); err == nil {
			row.Status = sub.Status
		}
		recent = append(recent, row)
	}

	type gradeRow struct {
		AssignmentTitle string
		Module          string
		Grade           int
	}
	var recentGrades []gradeRow
	subs, err := h.Assignments.StudentSubmissions(user.Username)
	if err == nil {
		for _, s := range subs {
			if s.Grade == nil {
				continue
			}
			if a, err := h.Assignments.Get(s.AssignmentID); err == nil {
				recentGrades = append(recentGrades, gradeRow{
					AssignmentTitle: a.Title, Module: a.LabModule, Grade: *s.Grade,
				})
			}
			if len(recentGrades) == 3 {
				break
			}
		}
	}

	c.HTML(http.StatusOK, "student_dashboard.html", gin.H{
		"title":             h.Cfg.App.Name + " - Student Dashboard",
		"user":              user,
		"stats":             progress,
		"recentAssignments": recent,
		"recentGrades":      recentGrades,
		"labModules":        lab.Modules(),
	})
}

// Faculty renders /faculty/dashboard.
func (h *DashboardHandler) Faculty(c *gin.Context) {
	session := middleware.CurrentSession(c)

	user, err := h.Users.FindByUsername(session.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, "/faculty/login")
			return
		}
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	overview, err := h.Stats.Faculty()
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	activities, err := h.Stats.RecentActivity(10)
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	students, err := h.Stats.StudentList()
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Server Error",
			"An error occurred loading the dashboard. Please try again.")
		return
	}

	c.HTML(http.StatusOK, "faculty_dashboard.html", gin.H{
		"title":            h.Cfg.App.Name + " - Faculty Dashboard",
		"user":             user,
		"stats":            overview,
		"recentActivities": activities,
		"labModules":       lab.Modules(),
		"studentList":      students,
		"quickActions":     stats.QuickActions(),
	})
}
