package schema

// CoreWorkPageTable represents the 'core.workpage' table
type CoreWorkPageTable struct {
	Table      string
	ID         string
	WorkID     string
	PageNumber string
	Content    string
	CreatedAt  string
	UpdatedAt  string
}

// CoreWorkPage is the schema definition for core.workpage
var CoreWorkPage = CoreWorkPageTable{
	Table:      "core.workpage",
	ID:         "id",
	WorkID:     "workid",
	PageNumber: "pagenumber",
	Content:    "content",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CoreWorkPageTable) Columns() []string {
	return []string{t.ID, t.WorkID, t.PageNumber, t.Content, t.CreatedAt, t.UpdatedAt}
}
