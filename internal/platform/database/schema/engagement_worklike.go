package schema

// EngagementWorkLikeTable represents the 'engagement.worklike' table
type EngagementWorkLikeTable struct {
	Table     string
	WorkID    string
	UserID    string
	CreatedAt string
}

// EngagementWorkLike is the schema definition for engagement.worklike
var EngagementWorkLike = EngagementWorkLikeTable{
	Table:     "engagement.worklike",
	WorkID:    "workid",
	UserID:    "userid",
	CreatedAt: "createdat",
}

func (t EngagementWorkLikeTable) Columns() []string {
	return []string{t.WorkID, t.UserID, t.CreatedAt}
}
