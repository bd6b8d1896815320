package repository

import (
	"sort"

	"Trellis/internal/domain"
	"Trellis/internal/model"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

func contentToModel(c *domain.ContentAggregate) (*model.Content, error) {
	mediaJSON, err := json.Marshal(c.Media)
	if err != nil {
		return nil, err
	}
	m := &model.Content{
		ID:                 c.ID,
		Type:               string(c.Type),
		Status:             string(c.Status),
		Privacy:            string(c.Privacy),
		CreatedBy:          c.CreatedBy,
		UpdatedBy:          c.UpdatedBy,
		IsHidden:           c.IsHidden,
		IsReported:         c.IsReported,
		IsImportant:        c.Setting.IsImportant,
		ImportantExpiredAt: c.Setting.ImportantExpiredAt,
		CanComment:         c.Setting.CanComment,
		CanReact:           c.Setting.CanReact,
		CommentsCount:      c.Aggregation.CommentsCount,
		TotalUsersSeen:     c.Aggregation.TotalUsersSeen,
		Title:              c.Title,
		Summary:            c.Summary,
		Content:            c.Content,
		Cover:              c.Cover,
		WordCount:          c.WordCount,
		Media:              datatypes.JSON(mediaJSON),
		LinkPreviewID:      c.LinkPreviewID,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
		PublishedAt:        c.PublishedAt,
		ScheduledAt:        c.ScheduledAt,
	}
	return m, nil
}

func contentToDomain(m *model.Content) (*domain.ContentAggregate, error) {
	c := &domain.ContentAggregate{
		ID:        m.ID,
		Type:      domain.ContentType(m.Type),
		Status:    domain.ContentStatus(m.Status),
		Privacy:   domain.ContentPrivacy(m.Privacy),
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		IsHidden:  m.IsHidden,
		IsReported: m.IsReported,
		Setting: domain.ContentSetting{
			IsImportant:        m.IsImportant,
			ImportantExpiredAt: m.ImportantExpiredAt,
			CanComment:         m.CanComment,
			CanReact:           m.CanReact,
		},
		Aggregation: domain.ContentAggregation{
			CommentsCount:  m.CommentsCount,
			TotalUsersSeen: m.TotalUsersSeen,
		},
		Title:         m.Title,
		Summary:       m.Summary,
		Content:       m.Content,
		Cover:         m.Cover,
		WordCount:     m.WordCount,
		LinkPreviewID: m.LinkPreviewID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		PublishedAt:   m.PublishedAt,
		ScheduledAt:   m.ScheduledAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		c.DeletedAt = &t
	}
	if len(m.Media) > 0 {
		if err := json.Unmarshal(m.Media, &c.Media); err != nil {
			return nil, err
		}
	}
	for _, g := range m.Groups {
		c.GroupIDs = append(c.GroupIDs, g.GroupID)
	}
	for _, s := range m.Series {
		c.SeriesIDs = append(c.SeriesIDs, s.SeriesID)
	}
	for _, t := range m.Tags {
		c.TagIDs = append(c.TagIDs, t.TagID)
	}
	for _, cat := range m.Categories {
		c.CategoryIDs = append(c.CategoryIDs, cat.CategoryID)
	}
	if c.Type == domain.ContentTypeSeries {
		items := append([]model.ContentSeries(nil), m.Items...)
		sort.SliceStable(items, func(i, j int) bool { return items[i].Zindex < items[j].Zindex })
		for _, it := range items {
			c.Items = append(c.Items, domain.SeriesItem{ID: it.PostID, Zindex: it.Zindex})
		}
	}
	c.MarkLoaded()
	return c, nil
}
