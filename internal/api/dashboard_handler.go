package api

import (
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/service"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

type ActivityResponse struct {
	Kind    dashboard.ActivityKind `json:"kind"`
	RefID   string                 `json:"refId,omitempty"`
	Subject string                 `json:"subject"`
	Detail  string                 `json:"detail,omitempty"`
	Date    time.Time              `json:"date"`
	TimeAgo string                 `json:"timeAgo"`
}

type DashboardResponse struct {
	TotalUsers          int                  `json:"totalUsers"`
	ActiveSubscriptions int                  `json:"activeSubscriptions"`
	MonthlyRevenue      float64              `json:"monthlyRevenue"` // Rounded to cents
	RecentActivity      []ActivityResponse   `json:"recentActivity"`
	UpcomingMeetings    []domain.ZoomMeeting `json:"upcomingMeetings"`
	ScheduledMeetings   []domain.ZoomMeeting `json:"scheduledMeetings"`
}

// GetDashboard godoc
// @Summary Admin overview
// @Description Member counts, estimated monthly revenue, recent activity and upcoming meetings.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	now := h.now()
	activity := make([]ActivityResponse, 0, len(overview.RecentActivity))
	for _, a := range overview.RecentActivity {
		activity = append(activity, ActivityResponse{
			Kind:    a.Kind,
			RefID:   a.RefID,
			Subject: a.Subject,
			Detail:  a.Detail,
			Date:    a.Date,
			TimeAgo: dashboard.TimeSince(a.Date, now),
		})
	}

	c.JSON(http.StatusOK, DashboardResponse{
		TotalUsers:          overview.TotalUsers,
		ActiveSubscriptions: overview.ActiveSubscriptions,
		MonthlyRevenue:      math.Round(overview.MonthlyRevenue*100) / 100,
		RecentActivity:      activity,
		UpcomingMeetings:    nonNil(overview.UpcomingMeetings),
		ScheduledMeetings:   nonNil(overview.ScheduledMeetings),
	})
}

func nonNil(m []domain.ZoomMeeting) []domain.ZoomMeeting {
	if m == nil {
		return []domain.ZoomMeeting{}
	}
	return m
}
