package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/assignment"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler produces the gradebook downloads for faculty.
type ExportHandler struct {
	DB      *gorm.DB
	Manager *assignment.Manager
}

func NewExportHandler(db *gorm.DB, mgr *assignment.Manager) *ExportHandler {
	return &ExportHandler{DB: db, Manager: mgr}
}

type gradebookRow struct {
	Student     string
	Assignment  string
	Module      string
	Points      int
	Status      string
	Grade       string
	SubmittedAt string
	GradedBy    string
}

func (h *ExportHandler) gradebook() ([]gradebookRow, error) {
	var subs []models.Submission
	if err := h.DB.Order("student, submitted_at").Find(&subs).Error; err != nil {
		return nil, err
	}

	rows := make([]gradebookRow, 0, len(subs))
	for _, s := range subs {
		a, err := h.Manager.Get(s.AssignmentID)
		if err != nil {
			continue // assignment removed; skip orphan rows
		}
		grade := ""
		if s.Grade != nil {
			grade = fmt.Sprintf("%d", *s.Grade)
		}
		rows = append(rows, gradebookRow{
			Student:     s.Student,
			Assignment:  a.Title,
			Module:      a.LabModule,
			Points:      a.Points,
			Status:      s.Status,
			Grade:       grade,
			SubmittedAt: s.SubmittedAt.Format("2006-01-02 15:04"),
			GradedBy:    s.GradedBy,
		})
	}
	return rows, nil
}

var gradebookHeader = []string{
	"Student", "Assignment", "Module", "Points", "Status", "Grade", "Submitted At", "Graded By",
}

// CSV streams the gradebook as CSV.
func (h *ExportHandler) CSV(c *gin.Context) {
	rows, err := h.gradebook()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"gradebook_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write(gradebookHeader)
	for _, r := range rows {
		_ = writer.Write([]string{
			r.Student, r.Assignment, r.Module, fmt.Sprintf("%d", r.Points),
			r.Status, r.Grade, r.SubmittedAt, r.GradedBy,
		})
	}
}

// XLSX streams the gradebook as an Excel workbook.
func (h *ExportHandler) XLSX(c *gin.Context) {
	rows, err := h.gradebook()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	f := excelize.NewFile()
	const sheet = "Gradebook"
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, title := range gradebookHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, r := range rows {
		values := []interface{}{
			r.Student, r.Assignment, r.Module, r.Points,
			r.Status, r.Grade, r.SubmittedAt, r.GradedBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"gradebook_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		// headers already sent; nothing sensible left to do but log
		_ = c.Error(err)
	}
}
