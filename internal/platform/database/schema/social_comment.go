package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table      string
	ID         string
	WorkID     string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  string
	UpdatedAt  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:      "social.comment",
	ID:         "id",
	WorkID:     "workid",
	AuthorID:   "authorid",
	AuthorName: "authorname",
	Content:    "content",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.WorkID, t.AuthorID, t.AuthorName, t.Content, t.CreatedAt, t.UpdatedAt}
}
