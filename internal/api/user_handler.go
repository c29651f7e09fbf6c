package api

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

type UserRequest struct {
	Name               string                    `json:"name" binding:"required"`
	Email              string                    `json:"email" binding:"required,email"`
	Mobile             string                    `json:"mobile"`
	JoinDate           string                    `json:"joinDate"` // YYYY-MM-DD or RFC 3339, defaults to today
	SubscriptionPlan   string                    `json:"subscriptionPlan"`
	SubscriptionStatus domain.SubscriptionStatus `json:"subscriptionStatus" binding:"omitempty,oneof=Active Inactive Cancelled"`
	AvatarURL          string                    `json:"avatarUrl" binding:"omitempty,url"`
}

func (r UserRequest) toInput() (service.UserInput, error) {
	joinDate, err := parseDate(r.JoinDate)
	if err != nil {
		return service.UserInput{}, err
	}
	return service.UserInput{
		Name:               r.Name,
		Email:              r.Email,
		Mobile:             r.Mobile,
		JoinDate:           joinDate,
		SubscriptionPlan:   r.SubscriptionPlan,
		SubscriptionStatus: r.SubscriptionStatus,
		AvatarURL:          r.AvatarURL,
	}, nil
}

type WorkoutRequest struct {
	WorkoutName     string `json:"workoutName" binding:"required"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration" binding:"required,min=1"`
	Notes           string `json:"notes"`
}

type ProgressResponse struct {
	WorkoutsThisMonth int                 `json:"workoutsThisMonth"`
	TotalHours        float64             `json:"totalHours"`
	Logs              []domain.WorkoutLog `json:"logs"`
}

// --- Handlers ---

// ListUsers godoc
// @Summary List members
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size, 0 for all"
// @Param sortBy query string false "name, email, joinDate or subscriptionStatus"
// @Param order query string false "asc or desc"
// @Success 200 {array} domain.User "without page/pageSize"
// @Success 200 {object} service.Page[domain.User] "with page or pageSize"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	page, err := h.userService.ListUsers(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	writeList(c, q, page)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProgress returns the member's workout summary, newest log first.
func (h *UserHandler) GetProgress(c *gin.Context) {
	profile, err := h.userService.GetUserProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProgressResponse{
		WorkoutsThisMonth: profile.Progress.WorkoutsThisMonth,
		TotalHours:        profile.Progress.TotalHours,
		Logs:              profile.Progress.Logs,
	})
}

func (h *UserHandler) LogWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.userService.LogWorkout(c.Request.Context(), c.Param("id"), service.WorkoutInput{
		WorkoutName:     req.WorkoutName,
		Date:            date,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}
