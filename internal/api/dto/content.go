package dto

import "time"

// ContentView 返回给 BFF 的内容视图，聚合计数摊平到顶层
type ContentView struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Privacy     string     `json:"privacy"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Cover       *string    `json:"cover,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	GroupIDs  []string `json:"groupIds"`
	SeriesIDs []string `json:"seriesIds"`
	TagIDs    []string `json:"tagIds"`

	CommentsCount  int `json:"commentsCount"`
	TotalUsersSeen int `json:"totalUsersSeen"`
}
