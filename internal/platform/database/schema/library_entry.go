package schema

// LibraryEntryTable represents the 'library.entry' table
type LibraryEntryTable struct {
	Table     string
	UserID    string
	WorkID    string
	CreatedAt string
}

// LibraryEntry is the schema definition for library.entry
var LibraryEntry = LibraryEntryTable{
	Table:     "library.entry",
	UserID:    "userid",
	WorkID:    "workid",
	CreatedAt: "createdat",
}

func (t LibraryEntryTable) Columns() []string {
	return []string{t.UserID, t.WorkID, t.CreatedAt}
}
