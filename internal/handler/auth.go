package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/auth"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login pages, login/logout actions and the
// feature-gated registration endpoint.
type AuthHandler struct {
	Authn    *auth.Authenticator
	Users    store.UserStore
	Registry *store.DBStore // nil unless registration is enabled
	Cfg      *config.Config
}

func NewAuthHandler(authn *auth.Authenticator, users store.UserStore, registry *store.DBStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Authn: authn, Users: users, Registry: registry, Cfg: cfg}
}

func (h *AuthHandler) secureCookies() bool {
	return h.Cfg.Server.Mode == "release"
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cfg.Session.CookieName, token,
		int(h.Cfg.Session.Timeout().Seconds()), "/", "", h.secureCookies(), true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cfg.Session.CookieName, "", -1, "/", "", h.secureCookies(), true)
}

func loginTemplate(role string) string {
	if role == models.RoleFaculty {
		return "faculty_login.html"
	}
	return "login.html"
}

func dashboardPath(role string) string {
	if role == models.RoleFaculty {
		return "/faculty/dashboard"
	}
	return "/dashboard"
}

// Home shows the login selection page, or forwards a live session to its
// dashboard.
func (h *AuthHandler) Home(c *gin.Context) {
	token, _ := c.Cookie(h.Cfg.Session.CookieName)
	if session, err := h.Authn.Resolve(c.Request.Context(), token); err == nil {
		c.Redirect(http.StatusSeeOther, dashboardPath(session.Role))
		return
	}
	c.HTML(http.StatusOK, "login_selection.html", gin.H{
		"title": h.Cfg.App.Name,
	})
}

// ShowLogin renders the login form for the given role.
func (h *AuthHandler) ShowLogin(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, loginTemplate(role), gin.H{
			"title": h.Cfg.App.Name + " - Login",
		})
	}
}

// Login handles the login form POST for the given role. The same generic
// failure message covers unknown users, wrong passwords, locked accounts and
// wrong-portal logins, so nothing leaks about which it was.
func (h *AuthHandler) Login(role string) gin.HandlerFunc {
	const failMsg = "Invalid username or password."

	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := strings.TrimSpace(c.PostForm("password"))

		renderFail := func(status int, msg string) {
			c.HTML(status, loginTemplate(role), gin.H{
				"title": h.Cfg.App.Name + " - Login",
				"error": msg,
			})
		}

		if err := util.ValidateUsername(username); err != nil {
			renderFail(http.StatusBadRequest, err.Error())
			return
		}
		if password == "" {
			renderFail(http.StatusBadRequest, "Password is required")
			return
		}
		username = util.SanitizeInput(username)

		priorToken, _ := c.Cookie(h.Cfg.Session.CookieName)
		client := auth.ClientInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}

		session, token, user, err := h.Authn.Login(c.Request.Context(), username, password, priorToken, client)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				renderFail(http.StatusUnauthorized, failMsg)
				return
			}
			// audit sink or storage failure: refuse to proceed unaudited
			c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
				"title":   "Service Unavailable",
				"message": "The service is temporarily unavailable. Please try again later.",
			})
			return
		}

		// a valid account on the wrong portal gets its fresh session revoked
		// and the same page as the other portal would show
		if user.Role != role {
			_, _ = h.Authn.Logout(c.Request.Context(), token, client)
			if role == models.RoleFaculty {
				renderFail(http.StatusUnauthorized, "Please use the student login for learner access.")
			} else {
				renderFail(http.StatusUnauthorized, "Please use the faculty login for instructor access.")
			}
			return
		}

		h.setSessionCookie(c, token)
		c.Redirect(http.StatusSeeOther, dashboardPath(session.Role))
	}
}

// Logout revokes the current session and clears the cookie. The user lands
// back on the login page their role uses.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.Cfg.Session.CookieName)
	client := auth.ClientInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}

	session, err := h.Authn.Logout(c.Request.Context(), token, client)
	h.clearSessionCookie(c)
	if err != nil {
		c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
			"title":   "Service Unavailable",
			"message": "The service is temporarily unavailable. Please try again later.",
		})
		return
	}

	if session != nil && session.Role == models.RoleFaculty {
		c.Redirect(http.StatusSeeOther, "/faculty/login")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

type registerReq struct {
	Username        string `json:"username" form:"username" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required"`
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
}

// Register creates a student account. The route only exists when
// features.registration_enabled is set; faculty accounts remain provisioned
// out-of-band.
func (h *AuthHandler) Register(c *gin.Context) {
	if h.Registry == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "registration is disabled")
		return
	}

	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePasswordStrength(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}
	if req.FullName != "" {
		if err := util.ValidateName(req.FullName); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	// provisioned accounts shadow database rows, so the name must be free
	// in the combined directory, not just the registration table
	if _, err := h.Users.FindByUsername(req.Username); err == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "could not create account")
		return
	}

	hash, err := util.HashPasswordBcrypt(req.Password, h.Cfg.Security.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "could not create account")
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		FullName:     util.SanitizeInput(req.FullName),
		Email:        util.SanitizeInput(req.Email),
	}
	if err := h.Registry.Create(user); err != nil {
		if errors.Is(err, store.ErrExists) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username already exists")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "could not create account")
		return
	}

	util.Success(c, util.Response{
		"message": "account created",
		"user": gin.H{
			"username":  user.Username,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}
