package domain

import "time"

// ZoomMeeting is a scheduled live session.
type ZoomMeeting struct {
	ID         string    `bson:"_id" json:"id"`
	Topic      string    `bson:"topic" json:"topic"`
	StartTime  time.Time `bson:"startTime" json:"startTime"`
	Duration   int       `bson:"duration" json:"duration"` // Minutes
	Host       string    `bson:"host" json:"host"`
	MeetingURL string    `bson:"meetingUrl" json:"meetingUrl"`
}

// EndTime is StartTime plus the scheduled duration.
func (m *ZoomMeeting) EndTime() time.Time {
	return m.StartTime.Add(time.Duration(m.Duration) * time.Minute)
}
