package domain

// User 外部用户服务返回的精简视图，只用于补全响应，不参与领域决策
type User struct {
	ID       string
	Username string
	FullName string
	Avatar   string
}

// Group 外部群组服务返回的精简视图，Privacy 用于推导内容可见级别
type Group struct {
	ID         string
	Name       string
	Privacy    ContentPrivacy
	IsArchived bool
}

// ContentRelations 暴露给搜索索引批处理的关系视图，
// 本核心只提供数据，不负责组装搜索文档
type ContentRelations struct {
	ContentID string       `json:"contentId"`
	Type      ContentType  `json:"type"`
	GroupIDs  []string     `json:"groupIds"`
	TagIDs    []string     `json:"tagIds"`
	SeriesIDs []string     `json:"seriesIds"`
	Items     []SeriesItem `json:"items,omitempty"`
}
