package models

type VisitorDay struct {
	Date  string           `bson:"date" json:"date"`
	Total int64            `bson:"total" json:"total"`
	Pages map[string]int64 `bson:"pages,omitempty" json:"pages,omitempty"`
}

type VisitorReport struct {
	Days     []VisitorDay `json:"days"`
	Total    int64        `json:"total"`
	TopPages []PageCount  `json:"topPages"`
}

type PageCount struct {
	Page  string `bson:"_id" json:"page"`
	Count int64  `bson:"count" json:"count"`
}

type DashboardCounts struct {
	Artists        int64 `json:"artists"`
	Feedback       int64 `json:"feedback"`
	BlogPosts      int64 `json:"blogPosts"`
	Subscribers    int64 `json:"subscribers"`
	UnreadContacts int64 `json:"unreadContacts"`
	VisitorsToday  int64 `json:"visitorsToday"`
}

type VisitRequest struct {
	Page string `json:"page" validate:"omitempty,max=200"`
}
