package api

import (
	"alcyxob/gym-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MeetingHandler struct {
	meetingService service.MeetingService
}

func NewMeetingHandler(meetingService service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

type MeetingRequest struct {
	Topic     string `json:"topic" binding:"required"`
	StartTime string `json:"startTime" binding:"required"` // RFC 3339
	Duration  int    `json:"duration" binding:"required,min=1"`
	Host      string `json:"host" binding:"required"`
}

func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	page, err := h.meetingService.ListMeetings(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	writeList(c, q, page)
}

func (h *MeetingHandler) UpcomingMeetings(c *gin.Context) {
	meetings, err := h.meetingService.UpcomingMeetings(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	m, err := h.meetingService.GetMeeting(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	var req MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	start, err := parseDate(req.StartTime)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.meetingService.CreateMeeting(c.Request.Context(), service.MeetingInput{
		Topic:     req.Topic,
		StartTime: start,
		Duration:  req.Duration,
		Host:      req.Host,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	if err := h.meetingService.DeleteMeeting(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
